package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"judgeman/internal/checksum"
	"judgeman/internal/config"
	"judgeman/internal/fetcher"
	"judgeman/internal/llm"
	"judgeman/internal/normalize"
	"judgeman/internal/observability"
	"judgeman/internal/render"
	"judgeman/internal/scraper"
)

var ErrSnapshotMismatch = errors.New("embedded snapshot does not match its hash")

type Orchestrator struct {
	cfg        *config.Config
	logger     *observability.Logger
	fetcher    fetcher.Fetcher
	scraper    *scraper.Scraper
	renderer   *render.Renderer
	markdown   *render.MarkdownRenderer
	normalizer *normalize.Normalizer
	checksum   *checksum.Generator
	llm        *llm.Client
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f fetcher.Fetcher,
	s *scraper.Scraper,
	r *render.Renderer,
	md *render.MarkdownRenderer,
	n *normalize.Normalizer,
	lc *llm.Client,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		fetcher:    f,
		scraper:    s,
		renderer:   r,
		markdown:   md,
		normalizer: n,
		checksum:   checksum.NewGenerator(),
		llm:        lc,
	}
}

// New wires the default components for cfg.
func New(cfg *config.Config, logger *observability.Logger) (*Orchestrator, error) {
	selectors, err := cfg.Selectors()
	if err != nil {
		return nil, fmt.Errorf("load selectors: %w", err)
	}

	f, err := fetcher.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	normalizer := normalize.NewNormalizer(normalize.Options{
		TrimNBSP:       cfg.Normalize.TrimNBSP,
		CollapseSpaces: cfg.Normalize.CollapseSpaces,
		PreviewChars:   cfg.Normalize.PreviewChars,
	})

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}
	markdown, err := render.NewMarkdownRenderer()
	if err != nil {
		return nil, err
	}

	return NewOrchestrator(
		cfg,
		logger,
		f,
		scraper.NewScraper(selectors, normalizer, logger),
		renderer,
		markdown,
		normalizer,
		llm.NewClient(&http.Client{Timeout: cfg.GetLLMTimeout()}),
	), nil
}

type ArchiveResult struct {
	Path         string
	Bytes        int
	SnapshotHash string
	Sections     int
	Paragraphs   int
}

// Archive fetches target, renders the toggleable report and writes it to
// output. Nothing is written unless every step succeeds.
func (o *Orchestrator) Archive(ctx context.Context, target, output string) (*ArchiveResult, error) {
	record, original, err := o.extract(ctx, target)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := o.renderer.Render(&buf, record, original); err != nil {
		return nil, err
	}

	digest, err := o.verifySnapshot(buf.Bytes())
	if err != nil {
		o.logger.Error("Snapshot check failed", "url", original.URL, "error", err.Error())
		return nil, err
	}

	if err := writeFileAtomic(output, buf.Bytes()); err != nil {
		o.logger.Error("Write failed", "path", output, "error", err.Error())
		return nil, err
	}

	result := &ArchiveResult{
		Path:         output,
		Bytes:        buf.Len(),
		SnapshotHash: digest,
		Sections:     record.Body.Len(),
		Paragraphs:   record.ParagraphCount(),
	}

	o.logger.Info("Report written",
		"path", result.Path,
		"bytes", result.Bytes,
		"sections", result.Sections,
		"paragraphs", result.Paragraphs,
		"snapshot_sha256", result.SnapshotHash,
	)

	return result, nil
}

// verifySnapshot reads the embedded snapshot back out of a rendered report and
// checks it against the recorded hash.
func (o *Orchestrator) verifySnapshot(report []byte) (string, error) {
	encoded, digest, err := render.ReadSnapshot(report)
	if err != nil {
		return "", err
	}
	ok, err := o.checksum.VerifySnapshot(digest, encoded)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSnapshotMismatch, digest)
	}
	return digest, nil
}

// Dump fetches target and prints the extracted record.
func (o *Orchestrator) Dump(ctx context.Context, target string, w io.Writer, asJSON bool) error {
	record, _, err := o.extract(ctx, target)
	if err != nil {
		return err
	}

	if asJSON {
		return render.DumpJSON(w, record)
	}
	return render.Dump(w, record)
}

// Markdown fetches target and writes the simplified view as Markdown.
func (o *Orchestrator) Markdown(ctx context.Context, target, output string) error {
	record, _, err := o.extract(ctx, target)
	if err != nil {
		return err
	}

	markdown, err := o.markdown.Render(record)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(output, []byte(markdown)); err != nil {
		o.logger.Error("Write failed", "path", output, "error", err.Error())
		return err
	}

	o.logger.Info("Markdown written", "path", output, "bytes", len(markdown))
	return nil
}

// Facts fetches target and prints a short model-written rundown of the case
// facts.
func (o *Orchestrator) Facts(ctx context.Context, target string, w io.Writer) error {
	text, err := o.ask(ctx, target, "facts", llm.FactsPrompt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

// Diagram fetches target and prints the case as a JSON graph of parties,
// courts, events, issues and outcomes.
func (o *Orchestrator) Diagram(ctx context.Context, target string, w io.Writer) error {
	text, err := o.ask(ctx, target, "diagram", llm.DiagramPrompt)
	if err != nil {
		return err
	}

	graph, err := llm.ParseGraph(text)
	if err != nil {
		o.logger.Error("Diagram rejected", "error", err.Error(), "reply", o.normalizer.TruncatePreview(text))
		return err
	}

	out, err := graph.JSON()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (o *Orchestrator) ask(ctx context.Context, target, kind string, prompt func(*scraper.CaseRecord) string) (string, error) {
	if err := o.cfg.ValidateLLM(); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}

	record, _, err := o.extract(ctx, target)
	if err != nil {
		return "", err
	}
	if _, ok := record.FactsSection(); !ok {
		o.logger.Warn("No facts section found, prompting with metadata only", "url", target)
	}

	started := time.Now()
	text, err := o.llm.Generate(ctx, prompt(record), llm.Params{
		APIKey:  o.cfg.GetLLMAPIKey(),
		Model:   o.cfg.LLM.Model,
		BaseURL: o.cfg.LLM.BaseURL,
	})
	if err != nil {
		o.logger.Error("Model request failed", "kind", kind, "model", o.cfg.LLM.Model, "error", err.Error())
		return "", err
	}

	o.logger.Info("Model replied",
		"kind", kind,
		"model", o.cfg.LLM.Model,
		"chars", len(text),
		"elapsed", time.Since(started).String(),
	)
	return text, nil
}

// extract loads the page, builds the record and releases the page before
// returning, whatever the outcome.
func (o *Orchestrator) extract(ctx context.Context, target string) (*scraper.CaseRecord, render.Original, error) {
	started := time.Now()
	o.logger.Info("Fetching", "url", target, "source", o.cfg.Source)

	page, err := o.fetcher.Fetch(ctx, target)
	if err != nil {
		o.logger.Error("Fetch failed", "url", target, "error", err.Error())
		return nil, render.Original{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			o.logger.Warn("Failed to close page", "error", closeErr.Error())
		}
	}()

	o.logger.Info("Page loaded",
		"url", page.URL,
		"bytes", len(page.HTML),
		"elapsed", time.Since(started).String(),
	)

	record, stats, err := o.scraper.Extract(page.Document)
	if err != nil {
		o.logger.Error("Extraction failed", "url", page.URL, "error", err.Error())
		return nil, render.Original{}, err
	}

	o.logger.Info("Extraction complete",
		"title", o.normalizer.TruncatePreview(record.Title),
		"legal_issues", len(record.LegalIssues),
		"sections", record.Body.Len(),
		"paragraphs_seen", stats.Paragraphs,
		"headings", stats.Headings,
		"accepted", stats.Accepted,
		"ignored", stats.Ignored,
		"orphaned", stats.Orphaned,
	)
	for _, section := range record.Sections() {
		o.logger.Debug("Section",
			"name", o.normalizer.TruncatePreview(section.Name),
			"paragraphs", len(section.Paragraphs),
		)
	}

	return record, render.Original{URL: page.URL, Markup: page.HTML}, nil
}
