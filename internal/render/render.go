// Package render turns procedures, guidance and session status into terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/crisis-assistant/internal/assistant"
	"github.com/raphaelgruber/crisis-assistant/internal/catalog"
	"github.com/raphaelgruber/crisis-assistant/internal/classifier"
	"github.com/raphaelgruber/crisis-assistant/internal/metrics"
	"github.com/raphaelgruber/crisis-assistant/internal/models"
)

const (
	wideRule   = 80
	narrowRule = 60
	timeLayout = "2006-01-02 15:04:05"
)

// GuidanceExamples are suggested phrasings shown with the generic guidance.
var GuidanceExamples = []string{
	"Someone is bleeding heavily",
	"Person not breathing, need CPR steps",
	"Got burned by hot water",
	"Child choking on food",
	"Think my arm is broken",
	"Person in shock, pale and weak",
}

// Renderer formats output, optionally without colors.
type Renderer struct {
	theme Theme
	plain bool
}

// New creates a renderer. Plain renderers emit no ANSI styling.
func New(plain bool) *Renderer {
	return &Renderer{theme: defaultTheme, plain: plain}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func rule(width int, ch string) string {
	return strings.Repeat(ch, width)
}

// Outcome renders a processed query: the matched procedure or the generic guidance.
func (r *Renderer) Outcome(o assistant.Outcome) string {
	if o.Response.Fallback || o.Response.Procedure == nil {
		return r.Guidance()
	}
	return r.Procedure(*o.Response.Procedure, o.Query, o.Response.Classification.Confidence, o.At)
}

// Procedure renders a full procedure record for a query.
// An empty query, zero time or negative confidence omits that line.
func (r *Renderer) Procedure(p models.Procedure, query string, confidence float64, at time.Time) string {
	var b strings.Builder

	b.WriteString("\n" + rule(wideRule, "=") + "\n")
	b.WriteString(r.style(r.theme.titleStyle(), "EMERGENCY RESPONSE: "+strings.ToUpper(p.Title)) + "\n")
	b.WriteString(rule(wideRule, "=") + "\n")
	fmt.Fprintf(&b, "URGENCY LEVEL: %s", r.style(r.theme.urgencyStyle(p.Urgency), string(p.Urgency)))
	if p.TimeCritical {
		b.WriteString(" (TIME CRITICAL)")
	}
	b.WriteString("\n")
	if query != "" {
		fmt.Fprintf(&b, "QUERY:         %s\n", query)
	}
	if !at.IsZero() {
		fmt.Fprintf(&b, "TIME:          %s\n", at.Format(timeLayout))
	}
	if confidence >= 0 {
		fmt.Fprintf(&b, "CONFIDENCE:    %s\n", Percent(confidence))
	}
	fmt.Fprintf(&b, "SOURCE:        %s\n\n", p.Source)

	r.writeList(&b, "REQUIRED SUPPLIES:", p.Supplies, bullet)
	r.writeList(&b, "STEP-BY-STEP PROCEDURE:", p.Steps, numbered)
	r.writeList(&b, "CRITICAL WARNINGS:", p.Warnings, warning)
	r.writeList(&b, "SEEK IMMEDIATE MEDICAL HELP IF:", p.SeekHelpWhen, bullet)

	b.WriteString(r.style(r.theme.hintStyle(), "DISCLAIMER: This device provides emergency guidance only.\n"+
		"Seek professional medical help as soon as possible.") + "\n")
	b.WriteString(rule(wideRule, "=") + "\n")
	return b.String()
}

type marker func(i int) string

func bullet(int) string { return "•" }

func warning(int) string { return "!" }

func numbered(i int) string { return fmt.Sprintf("%d.", i+1) }

func (r *Renderer) writeList(b *strings.Builder, heading string, items []string, mark marker) {
	if len(items) == 0 {
		return
	}
	b.WriteString(r.style(r.theme.headingStyle(), heading) + "\n")
	for i, item := range items {
		fmt.Fprintf(b, "   %s %s\n", mark(i), item)
	}
	b.WriteString("\n")
}

// Guidance renders the generic guidance shown when no procedure matched.
func (r *Renderer) Guidance() string {
	var b strings.Builder

	b.WriteString("\n" + r.style(r.theme.titleStyle(), "GENERAL EMERGENCY GUIDANCE") + "\n")
	b.WriteString(rule(50, "=") + "\n")
	b.WriteString("If you're unsure about the emergency type, please be more specific.\n\n")

	r.writeList(&b, "IMMEDIATE ACTIONS:", []string{
		"Ensure scene safety first",
		"Check victim responsiveness",
		"Call for emergency services if possible",
		"Provide care within your training level",
	}, numbered)

	quoted := make([]string, len(GuidanceExamples))
	for i, ex := range GuidanceExamples {
		quoted[i] = "'" + ex + "'"
	}
	r.writeList(&b, "BE MORE SPECIFIC - Try asking about:", quoted, bullet)

	b.WriteString(r.style(r.theme.hintStyle(), "Stay calm and provide care within your abilities.") + "\n")
	b.WriteString(rule(50, "=") + "\n")
	return b.String()
}

// Status renders the system status and session statistics.
func (r *Renderer) Status(cat *catalog.Catalog, threshold float64, stats metrics.Snapshot) string {
	var b strings.Builder
	ok := r.style(r.theme.successStyle(), "✓")

	b.WriteString("\n" + r.style(r.theme.titleStyle(), "OFFLINE CRISIS ASSISTANT - SYSTEM STATUS") + "\n")
	b.WriteString(rule(narrowRule, "=") + "\n")
	fmt.Fprintf(&b, "%s System Mode: OFFLINE OPERATIONAL\n", ok)
	fmt.Fprintf(&b, "%s Knowledge Base: LOADED (%s)\n", ok, cat.Source())
	fmt.Fprintf(&b, "%s Emergency Procedures: %d PROCEDURES READY\n", ok, cat.Len())
	fmt.Fprintf(&b, "%s Fallback Threshold: %s\n", ok, Percent(threshold))
	if load := stats.CatalogLoad; load != nil {
		fmt.Fprintf(&b, "%s Catalog Load Time: %dµs (%d loads, avg %.1fµs)\n",
			ok, load.MaxTimeUs, load.Count, load.AvgTimeUs)
	}
	fmt.Fprintf(&b, "%s Network Dependency: NONE (FULLY OFFLINE)\n", ok)
	b.WriteString(rule(narrowRule, "=") + "\n\n")

	b.WriteString(r.ProcedureList(cat.Procedures()))

	if stats.Queries > 0 {
		b.WriteString("\n" + r.style(r.theme.headingStyle(), "SESSION:") + "\n")
		fmt.Fprintf(&b, "   Queries: %d (generic guidance: %d)\n", stats.Queries, stats.Fallbacks)
		if stats.Classify != nil {
			fmt.Fprintf(&b, "   Time: avg %.1fµs, min %dµs, max %dµs\n",
				stats.Classify.AvgTimeUs, stats.Classify.MinTimeUs, stats.Classify.MaxTimeUs)
		}
		for _, c := range stats.ByCategory {
			fmt.Fprintf(&b, "   %-12s %d\n", c.CategoryID, c.Count)
		}
	}
	return b.String()
}

// ProcedureList renders one line per procedure with its priority.
func (r *Renderer) ProcedureList(procs []models.Procedure) string {
	var b strings.Builder
	b.WriteString(r.style(r.theme.headingStyle(), "AVAILABLE EMERGENCY PROCEDURES:") + "\n")
	b.WriteString(rule(narrowRule, "-") + "\n")
	for _, p := range procs {
		fmt.Fprintf(&b, "• %-10s %s - %s PRIORITY\n", p.ID, p.Title,
			r.style(r.theme.urgencyStyle(p.Urgency), string(p.Urgency)))
	}
	b.WriteString(rule(narrowRule, "=") + "\n")
	return b.String()
}

// Scores renders the per-category score breakdown of a query.
func (r *Renderer) Scores(scores []classifier.CategoryScore) string {
	var b strings.Builder
	b.WriteString(r.style(r.theme.hintStyle(), "Category scores:") + "\n")
	for _, s := range scores {
		fmt.Fprintf(&b, "   %-12s %2d / %d\n", s.CategoryID, s.Score, s.Phrases*classifier.ExactWeight)
	}
	return b.String()
}

// Summary is the one-line classification report printed before the answer.
func (r *Renderer) Summary(o assistant.Outcome) string {
	c := o.Response.Classification
	return fmt.Sprintf("Emergency type identified: %s (%s confidence)", c.CategoryID, Percent(c.Confidence))
}

// Percent formats a ratio with one decimal, e.g. 0.0667 -> "6.7%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
