package textract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CommandRunner runs an external program and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output() // #nosec G204 -- fixed binaries
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// tesseractOCR renders pages with pdftoppm and reads them with tesseract.
type tesseractOCR struct {
	runner CommandRunner
	dpi    int
}

func (o *tesseractOCR) Recognize(ctx context.Context, data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "resume-ocr-")
	if err != nil {
		return "", fmt.Errorf("create ocr dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return "", fmt.Errorf("write ocr input: %w", err)
	}

	prefix := filepath.Join(dir, "page")
	if _, err := o.runner.Run(ctx, "pdftoppm", "-r", strconv.Itoa(o.dpi), "-png", input, prefix); err != nil {
		return "", fmt.Errorf("render pages: %w", err)
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", fmt.Errorf("list page images: %w", err)
	}
	if len(images) == 0 {
		return "", fmt.Errorf("render pages: no images produced")
	}
	sortPages(images)

	pages := make([]string, 0, len(images))
	for _, img := range images {
		out, err := o.runner.Run(ctx, "tesseract", img, "stdout")
		if err != nil {
			return "", fmt.Errorf("recognize %s: %w", filepath.Base(img), err)
		}
		pages = append(pages, strings.TrimSpace(string(out)))
	}

	return strings.Join(pages, "\n"), nil
}

// sortPages orders pdftoppm output ("page-1.png", "page-10.png") by page number.
func sortPages(images []string) {
	number := func(path string) int {
		base := strings.TrimSuffix(filepath.Base(path), ".png")
		idx := strings.LastIndex(base, "-")
		n, err := strconv.Atoi(base[idx+1:])
		if err != nil {
			return 0
		}
		return n
	}
	sort.SliceStable(images, func(i, j int) bool {
		return number(images[i]) < number(images[j])
	})
}
