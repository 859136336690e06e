package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotDOCX is returned by ExtractText for data that is not a .docx package.
var ErrNotDOCX = errors.New("not a docx package")

// ExtractText returns the text of a .docx body, one paragraph per line.
// Line breaks inside a paragraph become newlines too.
func ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotDOCX, err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		return bodyText(rc)
	}

	return "", fmt.Errorf("%w: word/document.xml missing", ErrNotDOCX)
}

func bodyText(r io.Reader) (string, error) {
	var (
		sb     strings.Builder
		inText bool
	)

	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}

		if err != nil {
			return "", fmt.Errorf("parsing document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
}
