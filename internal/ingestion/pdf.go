package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

func extractPDF(doc *Document) (err error) {
	// the reader panics on some malformed object trees
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}

	var text strings.Builder
	doc.Pages = reader.NumPage()
	for i := 1; i <= doc.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err == nil {
			text.WriteString(content)
		}

		// link targets are appended after the page text
		for _, uri := range pageLinks(page) {
			text.WriteString("\n")
			text.WriteString(uri)
			doc.Links = append(doc.Links, uri)
		}
		text.WriteString("\n")
	}

	doc.Text = text.String()
	return nil
}

func pageLinks(page pdf.Page) []string {
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	links := make([]string, 0, annots.Len())
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}

		action := annot.Key("A")
		if action.Key("S").Name() != "URI" {
			continue
		}

		if uri := strings.TrimSpace(action.Key("URI").RawString()); uri != "" {
			links = append(links, uri)
		}
	}

	return links
}
