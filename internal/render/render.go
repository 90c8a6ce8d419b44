// Package render prepares document pages for vision prompts. Scanned annual
// reports arrive as PDFs; each requested page is trimmed to a single-page
// document and encoded as a data URI the model providers accept.
package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Pdf renders pages by trimming the source PDF. The zero value is ready to
// use and safe for concurrent use.
type Pdf struct{}

// NewPdf returns a PDF page renderer.
func NewPdf() *Pdf {
	return &Pdf{}
}

// RenderPages extracts each requested 1-based page as a standalone PDF and
// returns data URIs in page order. A page outside the document fails the
// whole call.
func (p *Pdf) RenderPages(ctx context.Context, content []byte, pages []int) ([]string, error) {
	uris := make([]string, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		err := api.Trim(bytes.NewReader(content), &buf, []string{strconv.Itoa(page)}, nil)
		if err != nil {
			return nil, fmt.Errorf("trim page %d: %w", page, err)
		}

		uris = append(uris, "data:application/pdf;base64,"+base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	return uris, nil
}

// PageCount reports the number of pages in a PDF document.
func PageCount(content []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(content), nil)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}
