// Package ingestion turns uploaded CV files into plain text.
package ingestion

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// ErrUnsupportedType is returned for documents that cannot be read.
var ErrUnsupportedType = errors.New("unsupported document type")

var extensions = map[string]string{
	".txt":  MIMEText,
	".md":   MIMEText,
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
	".png":  MIMEPNG,
	".jpg":  MIMEJPEG,
	".jpeg": MIMEJPEG,
}

// Document is an uploaded CV together with the text extracted from it.
type Document struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data []byte `json:"-"`
	Text string `json:"-"`
	// Links are link targets found outside the visible text, such as PDF link annotations.
	Links []string `json:"links"`
	Pages int      `json:"pages"`
}

// Visual reports whether the model can read the original document directly.
func (d *Document) Visual() bool {
	switch d.MIME {
	case MIMEPDF, MIMEPNG, MIMEJPEG:
		return true
	default:
		return false
	}
}

// DetectMIME resolves the document type from the file extension and falls back
// to content sniffing.
func DetectMIME(name string, data []byte) string {
	if mime, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}

	sniffed := http.DetectContentType(data)
	if idx := strings.Index(sniffed, ";"); idx != -1 {
		sniffed = sniffed[:idx]
	}

	// a docx file is a zip archive
	if sniffed == "application/zip" {
		return MIMEDOCX
	}

	return sniffed
}

// Extract reads the text of a document. The type is detected with DetectMIME.
// A PDF without a text layer is not an error: its Text is empty and the model
// reads the attachment instead.
func Extract(name string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("document %q is empty", name)
	}

	doc := &Document{
		Name:  name,
		MIME:  DetectMIME(name, data),
		Data:  data,
		Links: []string{},
	}

	switch doc.MIME {
	case MIMEText:
		doc.Text = string(data)
		doc.Pages = 1
	case MIMEPDF:
		if err := extractPDF(doc); err != nil {
			return nil, err
		}
	case MIMEDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return nil, err
		}
		doc.Text = text
		doc.Pages = 1
	case MIMEPNG, MIMEJPEG:
		doc.Pages = 1
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, doc.MIME)
	}

	doc.Text = strings.TrimSpace(doc.Text)
	return doc, nil
}
