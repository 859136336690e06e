package engine

import (
	"io/fs"
	"time"

	"wz-generator/internal/casefile"
	"wz-generator/internal/diagnostic"
	"wz-generator/internal/discrepancy"
	"wz-generator/internal/export"
	"wz-generator/internal/form"
	"wz-generator/internal/logging"
	"wz-generator/internal/municipality"
	"wz-generator/internal/record"
	"wz-generator/internal/schema"
	"wz-generator/internal/template"
	"wz-generator/internal/validate"
)

// Options configures New. Zero values select the built-in schema and
// municipality configuration, no dedicated templates and no PDF export.
type Options struct {
	Schema         *schema.Schema
	Municipalities *municipality.Registry
	Templates      fs.FS
	Converter      export.Converter
	Logger         *logging.Logger
	Clock          func() time.Time
	// Compare options applied to discrepancy detection.
	Compare []discrepancy.Option
}

// Engine runs the merge, compare and render pipeline.
type Engine struct {
	Schema         *schema.Schema
	Municipalities *municipality.Registry
	Merger         *record.Merger
	Validator      *validate.Validator
	Selector       *template.Selector
	Renderer       *template.Renderer
	Converter      export.Converter
	Logger         *logging.Logger
	Clock          func() time.Time

	compare []discrepancy.Option
}

// New builds an engine.
func New(opts Options) *Engine {
	s := opts.Schema
	if s == nil {
		s = schema.Default()
	}

	reg := opts.Municipalities
	if reg == nil {
		reg = municipality.Default()
	}

	conv := opts.Converter
	if conv == nil {
		conv = export.Disabled{}
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	log := logging.OrNop(opts.Logger)

	return &Engine{
		Schema:         s,
		Municipalities: reg,
		Merger:         record.NewMerger(s, log),
		Validator:      validate.New(s),
		Selector:       template.NewSelector(reg, opts.Templates, log),
		Renderer:       template.NewRenderer(s, log),
		Converter:      conv,
		Logger:         log,
		Clock:          clock,
		compare:        opts.Compare,
	}
}

// Comparison is the review view of a case.
type Comparison struct {
	Case          casefile.Case             `json:"case"`
	Rows          []discrepancy.Row         `json:"rows"`
	Discrepancies []discrepancy.Discrepancy `json:"discrepancies"`
	// Validation never blocks a comparison; it is reported for display.
	Validation *diagnostic.Diagnostics `json:"validation"`
}

// Merge turns a form submission into a case.
func (e *Engine) Merge(sub form.Submission, municipalityName, caseNumber string) casefile.Case {
	pair := e.Merger.Merge(sub)

	return casefile.Case{
		Municipality: municipalityName,
		Number:       caseNumber,
		Application:  pair.Application,
		Analysis:     pair.Analysis,
	}
}

// Compare merges a submission and compares the resulting records.
func (e *Engine) Compare(sub form.Submission, municipalityName, caseNumber string) Comparison {
	return e.CompareCase(e.Merge(sub, municipalityName, caseNumber))
}

// CompareCase compares the records of a case.
func (e *Engine) CompareCase(c casefile.Case) Comparison {
	pair := c.Pair()

	cmp := Comparison{
		Case:          c,
		Rows:          discrepancy.Compare(e.Schema, pair, e.compare...),
		Discrepancies: discrepancy.Detect(e.Schema, pair, e.compare...),
		Validation:    e.Validator.Check(pair),
	}

	if cmp.Discrepancies == nil {
		cmp.Discrepancies = []discrepancy.Discrepancy{}
	}

	e.Logger.Debug("case compared",
		"case_number", c.Number,
		"discrepancies", len(cmp.Discrepancies),
		"validation_errors", len(cmp.Validation.Errors),
	)

	return cmp
}

// Validate checks a case without rendering it.
func (e *Engine) Validate(c casefile.Case) *diagnostic.Diagnostics {
	return e.Validator.Check(c.Pair())
}
