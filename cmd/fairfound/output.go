package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
	"github.com/spf13/cobra"
)

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, "✗ "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, "⚠ "+fmt.Sprintf(format, args...))
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSession(w io.Writer, s pipeline.Session) {
	a := s.Analysis
	row := func(label, format string, args ...any) {
		fmt.Fprintf(w, "%-18s %s\n", label+":", fmt.Sprintf(format, args...))
	}
	row("Readiness", "%.0f/100", a.GlobalReadinessScore)
	row("Market percentile", "%.0f", a.MarketPercentile)
	row("Projected yearly", "$%.0f", a.ProjectedEarnings)
	row("Rate", "$%.2f -> $%.2f/h", a.PricingSuggestion.Current, a.PricingSuggestion.Recommended)
	if len(a.SkillGaps) > 0 {
		row("Skill gaps", "%s", strings.Join(a.SkillGaps, ", "))
	}
	fmt.Fprintln(w, "\nRoadmap:")
	for i, step := range s.Roadmap {
		fmt.Fprintf(w, "  %d. [%s] %s (%s, %s)\n", i+1, step.Status, step.Title, step.Type, step.Duration)
	}
}

func printPortfolio(w io.Writer, c *model.PortfolioContent) {
	fmt.Fprintln(w, c.Tagline)
	fmt.Fprintln(w)
	fmt.Fprintln(w, c.About)
	for _, p := range c.Projects {
		fmt.Fprintf(w, "\n- %s [%s]\n  %s\n", p.Title, strings.Join(p.Tags, ", "), p.Description)
	}
}
