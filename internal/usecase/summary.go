package usecase

import (
	"fmt"
	"strings"

	"SEOAgent/internal/domain"
)

// Summarize renders a short plain-text digest of a run for chat delivery.
func Summarize(r *domain.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SEO agent run %s (%s): %s\n", r.ID, r.Mode, r.State)
	if r.Failure != "" {
		fmt.Fprintf(&b, "Aborted in %s: %s\n", r.FailedStage, r.Failure)
	}
	if r.Cancelled {
		b.WriteString("Run was cancelled before completion\n")
	}
	for _, s := range r.Stages {
		fmt.Fprintf(&b, "- %s: %s", s.Stage, s.Status)
		if s.Detail != "" {
			fmt.Fprintf(&b, " (%s)", s.Detail)
		}
		b.WriteString("\n")
	}
	for _, s := range r.Sites {
		fmt.Fprintf(&b, "%s: %d created, %d skipped, %d failed of %d\n", s.SiteName, s.Created, s.Skipped, s.Failed, s.Requested)
	}
	fmt.Fprintf(&b, "Total created: %d\n", r.TotalCreated)
	if r.Deploy != nil {
		fmt.Fprintf(&b, "Deploy success: %t\n", r.Deploy.Success)
	}
	if n := len(r.Errors); n > 0 {
		fmt.Fprintf(&b, "Errors: %d\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}
