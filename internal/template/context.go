package template

import (
	"maps"
	"regexp"
	"strings"
	"time"

	"wz-generator/internal/municipality"
)

// Context keys added to the merged records.
const (
	KeyMunicipality       = "gmina"
	KeyCaseNumber         = "case_number"
	KeyMunicipalityName   = "municipality_name"
	KeyMunicipalityHeader = "municipality_header"
	KeyMunicipalityIntro  = "municipality_intro"
	KeyMunicipalityFooter = "municipality_footer"
	KeyGeneratedAt        = "generated_at"
)

// DefaultBuildingType is printed on decisions that leave rodzaj_zabudowy
// blank.
const DefaultBuildingType = "zabudowa mieszkaniowa jednorodzinna"

// Input is everything a render needs besides the template.
type Input struct {
	Kind         Kind
	Municipality municipality.Entry
	// Name is the municipality printed on the document when it differs from
	// the entry, e.g. an unregistered municipality rendered with the
	// default entry's templates. Blank means Municipality.Name.
	Name         string
	CaseNumber   string
	Values       map[string]string
	Now          time.Time
}

// BuildContext returns the render context: the merged values plus the
// municipality texts, the case number and, for decisions, the date and
// building-type defaults.
func BuildContext(in Input) map[string]string {
	ctx := make(map[string]string, len(in.Values)+16)
	maps.Copy(ctx, in.Values)

	m := in.Municipality
	name := firstNonBlank(strings.TrimSpace(in.Name), m.Name)

	ctx[KeyMunicipality] = "Gmina " + name
	ctx[KeyCaseNumber] = in.CaseNumber
	ctx[KeyMunicipalityName] = name
	ctx[KeyMunicipalityHeader] = firstNonBlank(m.Header, "Analiza urbanistyczna")
	ctx[KeyMunicipalityIntro] = m.Intro
	ctx[KeyMunicipalityFooter] = m.Footer
	ctx[KeyGeneratedAt] = in.Now.Format("2006-01-02 15:04")

	if in.Kind == KindDecision {
		today := in.Now.Format("02.01.2006")

		setDefault(ctx, "data", today+" r.")
		setDefault(ctx, "data_wniosku", firstNonBlank(ctx["wniosek_data_zlozenia_wniosku"], today))
		setDefault(ctx, "data_uzupełnienia", firstNonBlank(ctx["wniosek_data_uzupelnienia_wniosku"], today))
		setDefault(ctx, "data_uzupelnienia", ctx["data_uzupełnienia"])
		setDefault(ctx, "rodzaj_zabudowy", DefaultBuildingType)
	}

	return ctx
}

func setDefault(ctx map[string]string, key, value string) {
	if strings.TrimSpace(ctx[key]) == "" {
		ctx[key] = value
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// Fill substitutes every {{key}} in s. Unknown keys become "".
func Fill(s string, ctx map[string]string) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		return ctx[placeholder.FindStringSubmatch(m)[1]]
	})
}

// Placeholders returns the distinct keys referenced in s, in order.
func Placeholders(s string) []string {
	var (
		keys []string
		seen = map[string]bool{}
	)

	for _, m := range placeholder.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}

	return keys
}
