// Package report stores run artifacts on the local filesystem.
package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"SEOAgent/internal/ports"
)

const htmlShell = "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n%s</body></html>\n"

// FileSink writes each artifact as a file under dir. With renderHTML set,
// Markdown artifacts also get a sanitized .html sibling.
type FileSink struct {
	dir        string
	renderHTML bool
	policy     *bluemonday.Policy
	logger     *slog.Logger
}

var _ ports.ReportSink = (*FileSink)(nil)

// NewFileSink returns a sink rooted at dir; the directory is created lazily.
func NewFileSink(dir string, renderHTML bool, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &FileSink{dir: dir, renderHTML: renderHTML, policy: p, logger: logger}
}

// WriteArtifact stores content as dir/name. Names must not contain directories.
func (s *FileSink) WriteArtifact(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	s.logger.Info("artifact written", "path", target)

	if !s.renderHTML || filepath.Ext(name) != ".md" {
		return nil
	}

	page, err := s.RenderHTML(strings.TrimSuffix(name, ".md"), content)
	if err != nil {
		return err
	}
	htmlTarget := strings.TrimSuffix(target, ".md") + ".html"
	if err := os.WriteFile(htmlTarget, page, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlTarget, err)
	}
	s.logger.Info("artifact rendered", "path", htmlTarget)
	return nil
}

// RenderHTML converts Markdown into a standalone, sanitized HTML page.
func (s *FileSink) RenderHTML(title string, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	body := s.policy.SanitizeBytes(buf.Bytes())
	return fmt.Appendf(nil, htmlShell, s.policy.Sanitize(title), body), nil
}
