// Package textract turns document bytes into plain text and hyperlink URIs.
package textract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/document"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"

	// DefaultMinTextLength is the shortest text accepted before falling back to
	// the next reader.
	DefaultMinTextLength = 50
	DefaultDPI           = 200
)

var (
	// ErrUnsupported reports a content type no reader handles.
	ErrUnsupported = errors.New("unsupported document type")
	// ErrNoText reports a document from which no reader produced text.
	ErrNoText = errors.New("no extractable text")
)

// Options configures an Extractor.
type Options struct {
	MinTextLength int
	OCR           bool
	DPI           int
	Runner        CommandRunner
	Logger        *zap.Logger
}

// Extractor reads PDF, DOCX and plain text documents. PDFs go through up to
// three readers: the text layer, an alternate converter and OCR.
type Extractor struct {
	minLen int
	ocr    bool
	logger *zap.Logger

	textLayer func(data []byte) (string, []string, error)
	alternate func(data []byte) (string, error)
	recognize func(ctx context.Context, data []byte) (string, error)
	docx      func(data []byte) (string, error)
}

func New(opts Options) *Extractor {
	minLen := opts.MinTextLength
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	ocr := &tesseractOCR{runner: runner, dpi: opts.DPI}
	if ocr.dpi <= 0 {
		ocr.dpi = DefaultDPI
	}

	return &Extractor{
		minLen:    minLen,
		ocr:       opts.OCR,
		logger:    logger,
		textLayer: readTextLayer,
		alternate: convertPDF,
		recognize: ocr.Recognize,
		docx:      convertDocx,
	}
}

// ExtractFile reads path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read document: %w", err)
	}
	return e.Extract(ctx, data)
}

// Extract returns the document text and its hyperlink URIs.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	mtype := mimetype.Detect(data)
	e.logger.Debug("document type detected", zap.String("mime", mtype.String()))

	var (
		text  string
		links []string
	)
	switch {
	case mtype.Is(MIMEPDF):
		text, links = e.extractPDF(ctx, data)
	case mtype.Is(MIMEDocx):
		var err error
		text, err = e.docx(data)
		if err != nil {
			e.logger.Debug("docx conversion failed", zap.Error(err))
		}
	case isText(mtype):
		text = string(data)
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}

	if strings.TrimSpace(text) == "" {
		return "", nil, ErrNoText
	}
	return text, document.NormalizeLinks(links), nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, []string) {
	text, links, err := e.textLayer(data)
	if err != nil {
		e.logger.Debug("pdf text layer failed", zap.Error(err))
	}

	if e.short(text) {
		alt, err := e.alternate(data)
		if err != nil {
			e.logger.Debug("alternate pdf reader failed", zap.Error(err))
		} else {
			text = alt
		}
	}

	if e.short(text) && e.ocr {
		recognized, err := e.recognize(ctx, data)
		if err != nil {
			e.logger.Debug("ocr failed", zap.Error(err))
		} else {
			text += "\n" + recognized
		}
	}

	e.logger.Debug("pdf text extracted",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.Int("links", len(links)),
	)
	return text, links
}

func (e *Extractor) short(text string) bool {
	return utf8.RuneCountInString(text) < e.minLen
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(MIMEText) {
			return true
		}
	}
	return false
}

func convertPDF(data []byte) (string, error) {
	body, _, err := docconv.ConvertPDF(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert pdf: %w", err)
	}
	return body, nil
}

func convertDocx(data []byte) (string, error) {
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return body, nil
}
