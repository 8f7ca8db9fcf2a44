// Package results renders a match report for the terminal. It is pure
// presentation over an immutable report: nothing here recomputes or reorders
// what the backend returned.
package results

import (
	"fmt"
	"strings"

	"github.com/alphadata/cvmatch/internal/hiring"
)

// Level is the qualitative bucket of a numeric score, used only for badge
// styling. The thresholds are fixed constants, not tunables.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

func (l Level) Icon() string {
	switch l {
	case LevelExcellent:
		return "🏆"
	case LevelGood:
		return "📈"
	default:
		return "✔"
	}
}

const (
	noMatchesPlaceholder = "No specific matches identified"
	noGapsPlaceholder    = "No significant gaps identified"

	scoreBarWidth = 20
)

var levelColors = map[Level]string{
	LevelExcellent: "\033[32m", // green
	LevelGood:      "\033[36m", // cyan
	LevelFair:      "\033[33m", // yellow
	LevelPoor:      "\033[31m", // red
}

const colorReset = "\033[0m"

// Renderer formats reports. Colored output is tied to the dark theme; it is
// purely visual and changes no content.
type Renderer struct {
	Colored bool
}

func (r *Renderer) badge(level Level, text string) string {
	if !r.Colored {
		return text
	}
	return levelColors[level] + text + colorReset
}

// Header renders the report summary line.
func (r *Renderer) Header(report *hiring.MatchReport) string {
	return fmt.Sprintf("Matched %d CVs against %s", report.TotalCVsMatched, report.JDName)
}

// Row renders one ranked result line.
func (r *Renderer) Row(rank int, result *hiring.MatchResult) string {
	level := LevelFor(result.Score)
	return fmt.Sprintf("#%-2d %s %s %s (%d/100) %s",
		rank,
		level.Icon(),
		result.CVName,
		r.badge(level, result.MatchLevel),
		result.Score,
		scoreBar(result.Score),
	)
}

// Report renders the full ranked listing. When expandedCVID matches a
// result, its detail block appears under that row; at most one row is ever
// expanded.
func (r *Renderer) Report(report *hiring.MatchReport, expandedCVID int) string {
	var b strings.Builder
	b.WriteString(r.Header(report))
	b.WriteString("\n\n")

	if report.Len() == 0 {
		b.WriteString("No matching results available\n")
		return b.String()
	}

	for i, result := range report.Results {
		b.WriteString(r.Row(i+1, result))
		b.WriteString("\n")
		if result.CVID == expandedCVID {
			b.WriteString(indent(r.Details(result), "    "))
		}
	}

	return b.String()
}

// Details renders the expanded block for one result.
func (r *Renderer) Details(result *hiring.MatchResult) string {
	var b strings.Builder

	b.WriteString("Key Matches:\n")
	if len(result.KeyMatches) == 0 {
		b.WriteString("  " + noMatchesPlaceholder + "\n")
	} else {
		for _, m := range result.KeyMatches {
			b.WriteString("  + " + m + "\n")
		}
	}

	b.WriteString("Gaps:\n")
	if len(result.Gaps) == 0 {
		b.WriteString("  " + noGapsPlaceholder + "\n")
	} else {
		for _, g := range result.Gaps {
			b.WriteString("  - " + g + "\n")
		}
	}

	if summary := strings.TrimSpace(result.Summary); summary != "" {
		b.WriteString("Summary:\n  " + summary + "\n")
	}

	return b.String()
}

func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * scoreBarWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled) + "]"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
