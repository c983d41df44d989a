package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-ats/internal/logger"
)

const defaultConcurrency = 4

var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// BatchOptions configures a directory run.
type BatchOptions struct {
	Options
	InputDir    string
	Concurrency int
}

// ScanDir lists the supported documents of dir in name order.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// RunBatch processes every supported document of opts.InputDir. Documents are
// independent; one that fails is logged and left out of the results, which
// keep directory order.
func (p *Pipeline) RunBatch(ctx context.Context, opts BatchOptions) (*Batch, error) {
	paths, err := ScanDir(opts.InputDir)
	if err != nil {
		return nil, err
	}

	batch := &Batch{RunID: uuid.NewString(), GeneratedAt: p.now().UTC()}
	log := logger.WithFields(p.logger, zap.String(logger.FieldRunID, batch.RunID))
	log.Info("batch started", zap.String("input_dir", opts.InputDir), zap.Int("documents", len(paths)))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			res, err := p.Process(gctx, path, opts.Options)
			if err != nil {
				log.Warn("document skipped", zap.String(logger.FieldDocument, filepath.Base(path)), zap.Error(err))
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch.Results = make([]*Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			batch.Results = append(batch.Results, res)
		}
	}

	log.Info("batch finished",
		zap.Int("processed", len(batch.Results)),
		zap.Int("skipped", len(paths)-len(batch.Results)),
	)
	return batch, nil
}
