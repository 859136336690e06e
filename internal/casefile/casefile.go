package casefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"wz-generator/internal/record"
	"wz-generator/internal/schema"
	"wz-generator/internal/template"
)

// ErrMalformed reports data that is not a JSON object.
var ErrMalformed = errors.New("malformed case file")

// DefaultBaseName names saved cases without a number.
const DefaultBaseName = "sprawa_WZ"

// Case is the persisted unit.
type Case struct {
	Municipality string        `json:"gmina"`
	Number       string        `json:"case_number"`
	Application  record.Record `json:"wniosek"`
	Analysis     record.Record `json:"analiza"`
}

// Pair returns the records of the case.
func (c Case) Pair() record.Pair {
	return record.Pair{Application: orEmpty(c.Application), Analysis: orEmpty(c.Analysis)}
}

// FileName returns the name a case is saved under.
func FileName(c Case) string {
	base := template.SanitizeCaseNumber(c.Number)
	if base == "" {
		base = DefaultBaseName
	}

	return base + ".json"
}

// Encode returns the indented JSON form of c. Non-ASCII text is written
// as UTF-8 and HTML characters are not escaped.
func Encode(c Case) ([]byte, error) {
	c.Application, c.Analysis = orEmpty(c.Application), orEmpty(c.Analysis)

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding case: %w", err)
	}

	return buf.Bytes(), nil
}

func orEmpty(r record.Record) record.Record {
	if r == nil {
		return record.Record{}
	}

	return r
}

// Option configures Decode.
type Option func(*decoder)

type decoder struct {
	schema *schema.Schema
}

// WithSchema keeps only record keys the schema knows. Bare keys of
// application-only fields and legacy aliases are moved to their current
// record key; an exact record key wins over a moved one.
func WithSchema(s *schema.Schema) Option {
	return func(d *decoder) { d.schema = s }
}

type rawCase struct {
	Municipality json.RawMessage `json:"gmina"`
	Number       json.RawMessage `json:"case_number"`
	Application  json.RawMessage `json:"wniosek"`
	Analysis     json.RawMessage `json:"analiza"`
	Left         json.RawMessage `json:"left"`
	Right        json.RawMessage `json:"right"`
}

// Decode parses a saved case. Unknown top-level keys are ignored, the
// left/right names of older files are accepted, and scalar values of any
// JSON type are read as text. Only data that is not a JSON object fails.
func Decode(data []byte, opts ...Option) (Case, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}

	var raw rawCase
	if err := json.Unmarshal(data, &raw); err != nil {
		return Case{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	app := decodeRecord(raw.Application)
	if len(app) == 0 {
		app = decodeRecord(raw.Left)
	}

	analysis := decodeRecord(raw.Analysis)
	if len(analysis) == 0 {
		analysis = decodeRecord(raw.Right)
	}

	c := Case{
		Number:       scalar(raw.Number),
		Municipality: scalar(raw.Municipality),
		Application:  app,
		Analysis:     analysis,
	}

	if d.schema != nil {
		c.Application = d.known(c.Application)
		c.Analysis = d.known(c.Analysis)
	}

	return c, nil
}

func decodeRecord(data json.RawMessage) record.Record {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return record.Record{}
	}

	r := make(record.Record, len(m))
	for k, v := range m {
		r[k] = scalar(v)
	}

	return r
}

// scalar renders a JSON value as text. Objects and arrays become "".
func scalar(data json.RawMessage) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return ""
	}

	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (d *decoder) known(r record.Record) record.Record {
	out := make(record.Record, len(r))

	keys := r.Keys()

	// exact record keys first, so they win over moved ones
	slices.SortStableFunc(keys, func(a, b string) int {
		return boolRank(d.exact(b)) - boolRank(d.exact(a))
	})

	for _, k := range keys {
		field, ok := d.schema.FieldKey(k)
		if !ok {
			continue
		}

		target := d.schema.RecordKey(field)
		if _, taken := out[target]; !taken {
			out[target] = r[k]
		}
	}

	return out
}

func (d *decoder) exact(key string) bool {
	field, ok := d.schema.FieldKey(key)
	return ok && d.schema.RecordKey(field) == key
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
