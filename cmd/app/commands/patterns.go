package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/allisson/piiguard/internal/pii/catalog"
	piiDomain "github.com/allisson/piiguard/internal/pii/domain"
)

// patternView is the json shape of one listed pattern.
type patternView struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Priority          int      `json:"priority"`
	EffectivePriority int      `json:"effective_priority"`
	Confidence        float64  `json:"confidence"`
	Contexts          []string `json:"contexts,omitempty"`
}

// RunListPatterns writes the patterns enabled for contextName, highest effective
// priority first, followed by the context's default strategy.
func RunListPatterns(cat *catalog.Catalog, w io.Writer, contextName, format string) error {
	ctx, err := piiDomain.ParseContext(contextName)
	if err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}

	ranked := cat.PatternsFor(ctx)
	views := make([]patternView, 0, len(ranked))
	for _, p := range ranked {
		view := patternView{
			Name:              p.Name(),
			Category:          p.Category().String(),
			Priority:          p.Priority(),
			EffectivePriority: p.EffectivePriority,
			Confidence:        p.Confidence(),
		}
		for _, c := range p.Contexts() {
			view.Contexts = append(view.Contexts, c.String())
		}
		views = append(views, view)
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Context         string        `json:"context"`
			DefaultStrategy string        `json:"default_strategy"`
			Patterns        []patternView `json:"patterns"`
		}{
			Context:         ctx.String(),
			DefaultStrategy: cat.Profile(ctx).DefaultStrategy.String(),
			Patterns:        views,
		})
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tCATEGORY\tPRIORITY\tCONFIDENCE\tCONTEXTS")
		for _, v := range views {
			contexts := "*"
			if len(v.Contexts) > 0 {
				contexts = strings.Join(v.Contexts, ",")
			}
			_, _ = fmt.Fprintf(
				tw,
				"%s\t%s\t%d\t%.2f\t%s\n",
				v.Name,
				v.Category,
				v.EffectivePriority,
				v.Confidence,
				contexts,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n# context=%s default_strategy=%s\n", ctx, cat.Profile(ctx).DefaultStrategy)
		return err
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
