package competitor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SEOAgent/internal/domain"
)

const exportPreview = 10

// ExportMarkdown renders reports as a human-readable analysis document.
func ExportMarkdown(reports []domain.CompetitorReport, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Competitor SEO Analysis\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))
	if len(reports) == 0 {
		b.WriteString("No competitor could be analyzed in this run.\n")
		return b.String()
	}

	for _, r := range reports {
		fmt.Fprintf(&b, "## %s\n\n", r.CompetitorName)
		fmt.Fprintf(&b, "- Scraped at: %s\n", r.ScrapedAt.Format(time.RFC3339))
		fmt.Fprintf(&b, "- Articles: %d\n\n", len(r.Articles))

		b.WriteString("### Top keywords\n\n")
		for _, k := range head(r.TopKeywords, exportPreview) {
			fmt.Fprintf(&b, "- %s (%d)\n", k.Keyword, k.Count)
		}

		b.WriteString("\n### Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}

		b.WriteString("\n### Articles\n\n")
		for _, a := range head(r.Articles, exportPreview) {
			fmt.Fprintf(&b, "- [%s](%s)\n", escapeLinkText(a.Title), escapeLinkDest(a.SourceURL))
		}

		b.WriteString("\n---\n\n")
	}

	return b.String()
}

// ExportJSON renders reports as an indented JSON document.
func ExportJSON(reports []domain.CompetitorReport) ([]byte, error) {
	if reports == nil {
		reports = []domain.CompetitorReport{}
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal reports: %w", err)
	}
	return data, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func escapeLinkText(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

// escapeLinkDest percent-encodes the characters that end a Markdown link destination.
func escapeLinkDest(s string) string {
	return strings.NewReplacer("(", "%28", ")", "%29", " ", "%20", "<", "%3C", ">", "%3E").Replace(s)
}
