package server

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"wz-generator/internal/document"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes.
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_failed"
	CodeUnknownKind       = "unknown_kind"
	CodeUnknownFormat     = "unknown_format"
	CodeMalformedCase     = "malformed_case"
	CodeExportUnavailable = "export_unavailable"
	CodeExportFailed      = "export_failed"
	CodeNotFound          = "not_found"
	CodeInternal          = "internal"
)

func respondError(c *gin.Context, status int, code string, err error, details any) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: code, Details: details},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondFile sends f as a download.
func respondFile(c *gin.Context, f document.File) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	c.Data(http.StatusOK, f.MediaType, f.Content)
}
