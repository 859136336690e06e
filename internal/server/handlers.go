package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wz-generator/internal/casefile"
	"wz-generator/internal/document"
	"wz-generator/internal/engine"
	"wz-generator/internal/export"
	"wz-generator/internal/form"
	"wz-generator/internal/schema"
	"wz-generator/internal/template"
)

// Response headers describing the template used for a document.
const (
	headerTemplate = "X-Template"
	headerFallback = "X-Template-Fallback"
)

func (s *Server) healthCheck(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) listMunicipalities(c *gin.Context) {
	reg := s.engine.Municipalities

	respondOK(c, gin.H{
		"default":        reg.Default().ID,
		"municipalities": reg.Entries(),
	})
}

type fieldView struct {
	Key             string   `json:"key"`
	Label           string   `json:"label"`
	Kind            string   `json:"kind"`
	Format          string   `json:"format,omitempty"`
	ElementFormat   string   `json:"element_format,omitempty"`
	Group           string   `json:"group,omitempty"`
	Required        bool     `json:"required,omitempty"`
	LongText        bool     `json:"long_text,omitempty"`
	ApplicationOnly bool     `json:"application_only,omitempty"`
	RecordKey       string   `json:"record_key"`
	WireKeys        []string `json:"wire_keys"`
}

func (s *Server) listFields(c *gin.Context) {
	sc := s.engine.Schema
	fields := make([]fieldView, 0, len(sc.Keys()))

	for _, f := range sc.Fields() {
		v := fieldView{
			Key:             f.Key,
			Label:           f.Label,
			Kind:            string(f.Kind),
			Format:          string(f.Format),
			ElementFormat:   string(f.ElementFormat),
			Group:           f.Group,
			Required:        f.Required,
			LongText:        f.LongText,
			ApplicationOnly: f.IsApplicationOnly(),
			RecordKey:       sc.RecordKey(f.Key),
		}

		switch {
		case f.Kind == schema.KindDerived:
			v.WireKeys = []string{}
		case f.IsApplicationOnly():
			v.WireKeys = []string{sc.ApplicationKey(f.Key)}
		default:
			v.WireKeys = []string{sc.ApplicationKey(f.Key), sc.AnalysisKey(f.Key)}
		}

		fields = append(fields, v)
	}

	respondOK(c, gin.H{
		"version":     sc.Version(),
		"title_field": sc.TitleWireKey(),
		"fields":      fields,
	})
}

// submissionRequest is the JSON form of a submission. Unlike an HTML form
// it keeps the order of the values. Fields accepts a plain key/value object
// (a serialized FormData) and is appended after Values.
type submissionRequest struct {
	Municipality string            `json:"gmina"`
	CaseNumber   string            `json:"case_number"`
	Values       []form.Value      `json:"values"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// submission reads a JSON submission or an HTML form. The form fields
// gmina and case_number carry the case metadata.
func (s *Server) submission(c *gin.Context) (casefile.Case, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req submissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return casefile.Case{}, fmt.Errorf("invalid submission: %w", err)
		}

		sub := form.NewSubmission(req.Values...)
		sub.Values = append(sub.Values, form.FromMap(req.Fields).Values...)

		return s.engine.Merge(sub, req.Municipality, req.CaseNumber), nil
	}

	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.Request.ParseMultipartForm(MaxBodyBytes); err != nil {
			return casefile.Case{}, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return casefile.Case{}, fmt.Errorf("invalid form: %w", err)
	}

	values := c.Request.PostForm

	return s.engine.Merge(form.FromURLValues(values), values.Get("gmina"), values.Get("case_number")), nil
}

func (s *Server) compare(c *gin.Context) {
	cs, err := s.submission(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	respondOK(c, s.engine.CompareCase(cs))
}

func (s *Server) generate(c *gin.Context) {
	kind, err := template.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, http.StatusNotFound, CodeUnknownKind, err, gin.H{"kinds": template.Kinds()})
		return
	}

	format, err := template.ParseFormat(c.Param("format"))
	if err != nil {
		respondError(c, http.StatusNotFound, CodeUnknownFormat, err, nil)
		return
	}

	cs, err := s.submission(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	art, err := s.engine.Generate(c.Request.Context(), engine.GenerateRequest{Case: cs, Kind: kind, Format: format})
	if err != nil {
		s.generationError(c, err, art)
		return
	}

	c.Header(headerTemplate, art.Template)
	if art.Fallback != "" {
		c.Header(headerFallback, art.Fallback)
	}

	respondFile(c, art.File)
}

func (s *Server) bundle(c *gin.Context) {
	format, err := template.ParseFormat(c.Param("format"))
	if err != nil {
		respondError(c, http.StatusNotFound, CodeUnknownFormat, err, nil)
		return
	}

	cs, err := s.submission(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	arts, err := s.engine.GenerateAll(c.Request.Context(), cs, nil, format)
	if err != nil {
		var first *engine.Artifact
		if len(arts) > 0 {
			first = arts[0]
		}

		s.generationError(c, err, first)

		return
	}

	files := make([]document.File, len(arts))
	for i, a := range arts {
		files[i] = a.File
	}

	data, err := document.Bundle(files, s.engine.Clock())
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err, nil)
		return
	}

	name := strings.TrimSuffix(casefile.FileName(cs), ".json") + ".zip"
	respondFile(c, document.File{Name: name, MediaType: "application/zip", Content: data})
}

// generationError maps a generation failure to a response. art is the DOCX
// still available after a failed export, if any.
func (s *Server) generationError(c *gin.Context, err error, art *engine.Artifact) {
	var verr *engine.ValidationError

	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, CodeValidation, err, gin.H{
			"messages":    verr.Messages(),
			"diagnostics": verr.Diagnostics,
		})
	case errors.Is(err, export.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, CodeExportUnavailable, err, docxDetails(art))
	case art != nil:
		respondError(c, http.StatusBadGateway, CodeExportFailed, err, docxDetails(art))
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, err, nil)
	}
}

func docxDetails(art *engine.Artifact) any {
	if art == nil {
		return nil
	}

	return gin.H{"docx": "/api/generate/" + string(art.Kind) + "/docx", "file": art.Name}
}

// caseBody reads a case from the case_json form field, an uploaded file
// field or the raw body, in that order.
func caseBody(c *gin.Context) ([]byte, error) {
	ct := c.ContentType()

	if strings.HasPrefix(ct, gin.MIMEMultipartPOSTForm) || strings.HasPrefix(ct, gin.MIMEPOSTForm) {
		if v := c.PostForm("case_json"); v != "" {
			return []byte(v), nil
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("expected a case_json field or a file upload: %w", err)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return io.ReadAll(f)
	}

	return io.ReadAll(c.Request.Body)
}

func (s *Server) saveCase(c *gin.Context) {
	data, err := caseBody(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	cs, err := casefile.Decode(data)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeMalformedCase, err, nil)
		return
	}

	file, err := s.engine.Save(cs)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err, nil)
		return
	}

	if s.store != nil {
		if _, err := s.store.Save(cs); err != nil {
			s.log.Error("failed to store case", "case_number", cs.Number, "error", err)
		}
	}

	respondFile(c, file)
}

func (s *Server) loadCase(c *gin.Context) {
	data, err := caseBody(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	loaded, err := s.engine.Load(data)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeMalformedCase, err, nil)
		return
	}

	respondOK(c, loaded)
}

// projectCase returns only the form values of a case held by the browser.
func (s *Server) projectCase(c *gin.Context) {
	data, err := caseBody(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err, nil)
		return
	}

	loaded, err := s.engine.Load(data)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeMalformedCase, err, nil)
		return
	}

	respondOK(c, gin.H{
		"gmina":       loaded.Case.Municipality,
		"case_number": loaded.Case.Number,
		"values":      loaded.Form.Values,
	})
}

func (s *Server) listCases(c *gin.Context) {
	names, err := s.store.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternal, err, nil)
		return
	}

	if names == nil {
		names = []string{}
	}

	respondOK(c, gin.H{"cases": names})
}

func (s *Server) getCase(c *gin.Context) {
	cs, err := s.store.Load(c.Param("name"))

	switch {
	case errors.Is(err, casefile.ErrNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, err, nil)
		return
	case err != nil:
		respondError(c, http.StatusBadRequest, CodeMalformedCase, err, nil)
		return
	}

	respondOK(c, s.engine.Project(cs))
}
