package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"wz-generator/internal/casefile"
	"wz-generator/internal/diagnostic"
	"wz-generator/internal/document"
	"wz-generator/internal/template"
	"wz-generator/internal/validate"
)

// ValidationError reports a case that failed the rules that block
// rendering. It unwraps to validate.ErrInvalid.
type ValidationError struct {
	Diagnostics *diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	if err := validate.Err(e.Diagnostics); err != nil {
		return err.Error()
	}

	return validate.ErrInvalid.Error()
}

func (e *ValidationError) Unwrap() error {
	return validate.ErrInvalid
}

// Messages lists the failed rules.
func (e *ValidationError) Messages() []string {
	return e.Diagnostics.Messages()
}

// GenerateRequest asks for one document.
type GenerateRequest struct {
	Case   casefile.Case
	Kind   template.Kind
	Format template.Format
}

// Artifact is a rendered document.
type Artifact struct {
	document.File

	Kind   template.Kind
	Format template.Format
	// Template is the source of the template used.
	Template  string
	Dedicated bool
	// Fallback explains why the dedicated template was not used.
	Fallback string
}

// Generate validates the case and renders one document. Validation errors
// are returned as *ValidationError and nothing is rendered.
//
// For PDF the document is rendered as DOCX and converted. When conversion
// fails the DOCX artifact is returned together with the error, which wraps
// export.ErrUnavailable if no converter could run.
func (e *Engine) Generate(ctx context.Context, req GenerateRequest) (*Artifact, error) {
	log := e.Logger.With("kind", string(req.Kind), "format", string(req.Format), "case_number", req.Case.Number)

	if d := e.Validate(req.Case); d.HasErrors() {
		log.Info("generation blocked by validation", "errors", len(d.Errors))
		return nil, &ValidationError{Diagnostics: d}
	}

	// An unregistered municipality borrows the default templates and texts
	// but keeps its own name on the document.
	name := ""

	entry, ok := e.Municipalities.Lookup(req.Case.Municipality)
	if !ok {
		entry = e.Municipalities.Default()
		name = req.Case.Municipality
		log.Warn("unknown municipality, using default", "municipality", req.Case.Municipality, "default", entry.ID)
	}

	sel, err := e.Selector.Resolve(entry.ID, req.Kind)
	if err != nil {
		return nil, err
	}

	now := e.Clock()

	ctxValues := template.BuildContext(template.Input{
		Kind:         req.Kind,
		Municipality: entry,
		Name:         name,
		CaseNumber:   req.Case.Number,
		Values:       req.Case.Pair().Context(),
		Now:          now,
	})

	doc := e.Renderer.Render(sel, ctxValues)
	doc.Created = now

	docx, err := document.DOCX(doc)
	if err != nil {
		return nil, fmt.Errorf("writing docx: %w", err)
	}

	art := &Artifact{
		File: document.File{
			Name:      template.FileName(req.Kind, template.FormatDOCX, req.Case.Number, now),
			MediaType: template.FormatDOCX.MediaType(),
			Content:   docx,
		},
		Kind:      req.Kind,
		Format:    template.FormatDOCX,
		Template:  sel.Source,
		Dedicated: sel.Dedicated,
		Fallback:  sel.Fallback,
	}

	if req.Format != template.FormatPDF {
		log.Info("document generated", "template", sel.Source, "bytes", len(docx))
		return art, nil
	}

	pdf, err := e.Converter.Convert(ctx, docx)
	if err != nil {
		log.Warn("pdf export failed, docx still available", "error", err)
		return art, fmt.Errorf("exporting %s to pdf: %w", art.Name, err)
	}

	art.File = document.File{
		Name:      template.FileName(req.Kind, template.FormatPDF, req.Case.Number, now),
		MediaType: template.FormatPDF.MediaType(),
		Content:   pdf,
	}
	art.Format = template.FormatPDF

	log.Info("document generated", "template", sel.Source, "bytes", len(pdf))

	return art, nil
}

// GenerateAll renders several kinds concurrently. Validation and template
// failures abort the whole call. Export failures do not: every kind still
// yields an artifact and the export errors are returned joined. Artifacts
// are returned in the order of kinds, with colliding file names
// disambiguated by the kind's base name.
func (e *Engine) GenerateAll(ctx context.Context, c casefile.Case, kinds []template.Kind, format template.Format) ([]*Artifact, error) {
	if len(kinds) == 0 {
		kinds = template.Kinds()
	}

	arts := make([]*Artifact, len(kinds))
	exportErrs := make([]error, len(kinds))

	g, gctx := errgroup.WithContext(ctx)

	for i, kind := range kinds {
		g.Go(func() error {
			art, err := e.Generate(gctx, GenerateRequest{Case: c, Kind: kind, Format: format})
			if err != nil && art == nil {
				return err
			}

			arts[i], exportErrs[i] = art, err

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	disambiguate(arts)

	return arts, errors.Join(exportErrs...)
}

func disambiguate(arts []*Artifact) {
	seen := map[string]bool{}

	for _, a := range arts {
		if seen[a.Name] && !strings.HasPrefix(a.Name, a.Kind.BaseName()) {
			a.Name = a.Kind.BaseName() + "_" + a.Name
		}

		seen[a.Name] = true
	}
}
