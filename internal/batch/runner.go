// Package batch runs documents through the endpoint and writes one output
// file per document.
//
// Processing is strictly sequential: one document at a time, one chunk at a
// time. A failed chunk is logged and left out of the output; it never stops
// the batch.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-aidich/internal/chunk"
	"github.com/alnah/go-aidich/internal/format"
)

// Processor sends one piece of text and returns the processed result.
type Processor interface {
	Process(ctx context.Context, text string) (string, error)
}

// Mode selects how documents are sent.
type Mode int

const (
	// ModeChunked splits large documents and writes each result followed by a newline.
	ModeChunked Mode = iota
	// ModeSingle sends each document whole and writes the result as returned.
	ModeSingle
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeChunked:
		return "chunked"
	case ModeSingle:
		return "single"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// Runner processes documents into an output directory.
type Runner struct {
	proc      Processor
	outputDir string
	mode      Mode
	logger    *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMode sets the processing mode. Default is ModeChunked.
func WithMode(m Mode) Option {
	return func(r *Runner) {
		r.mode = m
	}
}

// WithLogger sets the progress logger. Default discards output.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner that sends text through proc and writes results
// under outputDir.
func NewRunner(proc Processor, outputDir string, opts ...Option) *Runner {
	r := &Runner{
		proc:      proc,
		outputDir: outputDir,
		mode:      ModeChunked,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes docs in order.
//
// The output directory is created first, even when docs is empty. Per-chunk
// and per-document failures are logged and skipped. Run only returns an error
// if the output directory cannot be created or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, docs []Document) error {
	if err := os.MkdirAll(r.outputDir, 0750); err != nil { // #nosec G301 -- user output dir
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	if len(docs) == 0 {
		r.logger.Warn("No input documents found")
		return nil
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// runDocument processes a single document and writes its output file.
// Only context cancellation is returned; everything else is logged.
func (r *Runner) runDocument(ctx context.Context, doc Document) error {
	logger := r.logger.With("file", doc.Name)

	content, err := doc.Load()
	if err != nil {
		logger.Error("Cannot read document", "err", err)
		return nil
	}

	chunks := r.plan(content)
	logger.Info("Processing document",
		"size", format.Size(int64(len(content))),
		"chars", utf8.RuneCountInString(content),
		"chunks", len(chunks))

	var out strings.Builder
	for i, text := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}

		part := fmt.Sprintf("%d/%d", i+1, len(chunks))
		if strings.TrimSpace(text) == "" {
			logger.Debug("Skipping blank chunk", "chunk", part)
			continue
		}

		logger.Debug("Sending chunk", "chunk", part, "chars", utf8.RuneCountInString(text))
		result, err := r.proc.Process(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Chunk failed", "chunk", part, "err", err)
			continue
		}

		out.WriteString(result)
		if r.mode == ModeChunked {
			out.WriteString("\n")
		}
		logger.Info("Processed chunk", "chunk", part)
	}

	path := filepath.Join(r.outputDir, filepath.Base(doc.Name))
	if err := writeFileAtomic(path, out.String()); err != nil {
		logger.Error("Cannot write output", "path", path, "err", err)
		return nil
	}
	logger.Info("Saved", "path", path)
	return nil
}

// plan returns the chunks to send for content in the runner's mode.
func (r *Runner) plan(content string) []string {
	if r.mode == ModeSingle {
		return []string{content}
	}
	return chunk.Plan(content)
}
