package engine

import (
	"wz-generator/internal/casefile"
	"wz-generator/internal/document"
	"wz-generator/internal/form"
	"wz-generator/internal/record"
)

// LoadedCase is a decoded case ready to be put back on the form.
type LoadedCase struct {
	Comparison
	// Form holds the wire values that reproduce the case when submitted.
	Form form.Submission `json:"form"`
}

// Load decodes a saved case, keeping only fields the schema knows, and
// projects it back onto the form. Validation is reported, never enforced.
func (e *Engine) Load(data []byte) (LoadedCase, error) {
	c, err := casefile.Decode(data, casefile.WithSchema(e.Schema))
	if err != nil {
		return LoadedCase{}, err
	}

	return e.Project(c), nil
}

// Project builds the comparison and form projection of a case.
func (e *Engine) Project(c casefile.Case) LoadedCase {
	cmp := e.CompareCase(c)

	if cmp.Validation.HasErrors() {
		e.Logger.Info("loaded case does not validate", "case_number", c.Number, "errors", cmp.Validation.Messages())
	}

	return LoadedCase{
		Comparison: cmp,
		Form:       record.Unmerge(e.Schema, c.Pair()),
	}
}

// Save serializes a case for download. Validation failures are logged and
// never block saving.
func (e *Engine) Save(c casefile.Case) (document.File, error) {
	if d := e.Validate(c); d.HasErrors() {
		e.Logger.Info("saving case that does not validate", "case_number", c.Number, "errors", d.Messages())
	}

	data, err := casefile.Encode(c)
	if err != nil {
		return document.File{}, err
	}

	return document.File{
		Name:      casefile.FileName(c),
		MediaType: "application/json",
		Content:   data,
	}, nil
}
