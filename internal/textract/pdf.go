package textract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readTextLayer reads the embedded text of every page together with the URIs
// of link annotations. The pdf package panics on some malformed files.
func readTextLayer(data []byte) (text string, links []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err == nil {
			b.WriteString(content)
			b.WriteString("\n")
		}
		links = append(links, pageLinks(page)...)
	}

	return b.String(), links, nil
}

func pageLinks(page pdf.Page) []string {
	annots := page.V.Key("Annots")
	links := make([]string, 0, annots.Len())
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		uri := strings.TrimSpace(annot.Key("A").Key("URI").RawString())
		if uri != "" {
			links = append(links, uri)
		}
	}
	return links
}
