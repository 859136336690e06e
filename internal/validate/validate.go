package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wz-generator/internal/diagnostic"
	"wz-generator/internal/form"
	"wz-generator/internal/record"
	"wz-generator/internal/schema"
	"wz-generator/internal/title"
)

// ErrInvalid is wrapped by errors reporting failed validation.
var ErrInvalid = errors.New("case is not valid")

// Diagnostic codes.
const (
	CodeRequired           = "required"
	CodeTitleMissing       = "title_missing"
	CodeSubmissionAfter    = "submission_after_analysis"
	CodeSupplementEarly    = "supplement_before_submission"
	CodeSupplementLate     = "supplement_after_analysis"
	CodeSupplementDecrease = "supplement_out_of_order"
	CodeDateFormat         = "date_format"
)

// Rules names the date fields checked against each other.
type Rules struct {
	SubmissionDate  string
	AnalysisDate    string
	SupplementDates string
}

// DefaultRules matches the built-in schema.
var DefaultRules = Rules{
	SubmissionDate:  "data_zlozenia_wniosku",
	AnalysisDate:    "data_wykonania_analizy",
	SupplementDates: "data_uzupelnienia_wniosku",
}

// Validator checks record pairs against a schema.
type Validator struct {
	Schema *schema.Schema
	Rules  Rules
}

// New returns a validator with the default date rules.
func New(s *schema.Schema) *Validator {
	if s == nil {
		s = schema.Default()
	}

	return &Validator{Schema: s, Rules: DefaultRules}
}

// Check validates the application record of pair.
func (v *Validator) Check(pair record.Pair) *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}
	app := pair.Application

	v.checkRequired(d, app)
	v.checkTitle(d, app)
	v.checkDates(d, app)

	return d
}

func (v *Validator) checkRequired(d *diagnostic.Diagnostics, app record.Record) {
	for _, f := range v.Schema.Required() {
		if strings.TrimSpace(app.Get(v.Schema.RecordKey(f.Key))) == "" {
			d.AddError(CodeRequired, fmt.Sprintf("Pole '%s' jest wymagane", f.Label), f.Key)
		}
	}
}

func (v *Validator) checkTitle(d *diagnostic.Diagnostics, app record.Record) {
	key := v.Schema.NominativeKey()
	if key == "" {
		return
	}

	honorific, name, _ := record.Split(v.Schema, app)
	if honorific == title.None && strings.TrimSpace(name) != "" {
		forms := make([]string, 0, 4)
		for _, t := range title.All() {
			forms = append(forms, t.Nominative())
		}

		d.AddError(CodeTitleMissing,
			fmt.Sprintf("Dla pola '%s' należy wybrać tytuł (%s)", v.Schema.Label(key), strings.Join(forms, "/")),
			key)
	}
}

func (v *Validator) checkDates(d *diagnostic.Diagnostics, app record.Record) {
	submitted, okSubmitted := v.date(d, app, v.Rules.SubmissionDate)
	analysed, okAnalysed := v.date(d, app, v.Rules.AnalysisDate)

	if okSubmitted && okAnalysed && submitted.After(analysed) {
		d.AddError(CodeSubmissionAfter,
			"Data złożenia wniosku nie może być późniejsza niż data wykonania analizy",
			v.Rules.SubmissionDate)
	}

	if v.Rules.SupplementDates == "" {
		return
	}

	key := v.Rules.SupplementDates

	var prev time.Time

	for i, text := range form.SplitJoined(app.Get(v.Schema.RecordKey(key))) {
		t, ok := form.ParseDate(text)
		if !ok {
			d.AddWarning(CodeDateFormat, fmt.Sprintf("Nieprawidłowa data uzupełnienia wniosku: %q", text), key)
			continue
		}

		if okSubmitted && okAnalysed {
			if t.Before(submitted) {
				d.AddError(CodeSupplementEarly,
					"Data uzupełnienia wniosku nie może być wcześniejsza niż data złożenia wniosku", key)
			}

			if t.After(analysed) {
				d.AddError(CodeSupplementLate,
					"Data uzupełnienia wniosku nie może być późniejsza niż data wykonania analizy", key)
			}

			if i > 0 && !prev.IsZero() && t.Before(prev) {
				d.AddError(CodeSupplementDecrease,
					"Data uzupełnienia wniosku nie może być wcześniejsza niż poprzednia data", key)
			}
		}

		prev = t
	}
}

// date reads a date field. Blank values are left to the required check;
// values that do not parse are reported as a warning.
func (v *Validator) date(d *diagnostic.Diagnostics, app record.Record, key string) (time.Time, bool) {
	if key == "" {
		return time.Time{}, false
	}

	text := strings.TrimSpace(app.Get(v.Schema.RecordKey(key)))
	if text == "" {
		return time.Time{}, false
	}

	t, ok := form.ParseDate(text)
	if !ok {
		d.AddWarning(CodeDateFormat,
			fmt.Sprintf("Pole '%s' nie zawiera poprawnej daty: %q", v.Schema.Label(key), text), key)
	}

	return t, ok
}

// Err returns nil when d has no errors, and an error wrapping ErrInvalid
// listing the failures otherwise.
func Err(d *diagnostic.Diagnostics) error {
	if d == nil || !d.HasErrors() {
		return nil
	}

	msgs := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		msgs[i] = e.Message
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
