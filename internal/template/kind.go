package template

import (
	"fmt"
	"strings"

	"wz-generator/internal/document"
)

// Kind is a document kind.
type Kind string

const (
	KindAnalysis Kind = "analysis"
	KindDecision Kind = "decision"
)

// Kinds lists the document kinds.
func Kinds() []Kind {
	return []Kind{KindAnalysis, KindDecision}
}

// ParseKind accepts the kind name or its Polish equivalent.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analysis", "analiza":
		return KindAnalysis, nil
	case "decision", "decyzja":
		return KindDecision, nil
	default:
		return "", fmt.Errorf("unknown document kind %q", s)
	}
}

// BaseName returns the file name stem used when no case number is known.
func (k Kind) BaseName() string {
	if k == KindDecision {
		return "decyzja"
	}

	return "analiza_urbanistyczna"
}

// Format is a physical output format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "docx", "":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// MediaType returns the MIME type of the format.
func (f Format) MediaType() string {
	if f == FormatPDF {
		return "application/pdf"
	}

	return document.MediaType
}
