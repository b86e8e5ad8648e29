package fetcher

import (
	"context"
	"os"
	"path/filepath"

	"judgeman/internal/observability"
)

// FileFetcher reads a judgment page saved to disk ("Save page as…").
type FileFetcher struct {
	logger *observability.Logger
}

func NewFileFetcher(logger *observability.Logger) *FileFetcher {
	return &FileFetcher{logger: logger}
}

func (f *FileFetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, categorizeError(err, "fetch canceled")
	}

	markup, err := os.ReadFile(target)
	if err != nil {
		return nil, newError(ErrCodeRead, "failed to read "+target, err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	f.logger.Debug("Loaded page from file", "path", abs, "bytes", len(markup))

	return newStaticPage("file://"+filepath.ToSlash(abs), string(markup))
}
