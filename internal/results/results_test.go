package results

import (
	"strings"
	"testing"

	"github.com/alphadata/cvmatch/internal/hiring"
)

func TestLevelForThresholds(t *testing.T) {
	tests := []struct {
		score  int
		expect Level
	}{
		{100, LevelExcellent},
		{80, LevelExcellent},
		{79, LevelGood},
		{60, LevelGood},
		{59, LevelFair},
		{40, LevelFair},
		{39, LevelPoor},
		{0, LevelPoor},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.expect {
			t.Fatalf("LevelFor(%d): expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func sampleReport() *hiring.MatchReport {
	return &hiring.MatchReport{
		JDName:          "Backend Engineer",
		TotalCVsMatched: 2,
		Results: []*hiring.MatchResult{
			{
				CVID: 1, CVName: "alice.pdf", Score: 85, MatchLevel: "Excellent",
				KeyMatches: []string{"Go", "Kubernetes"},
				Gaps:       []string{"GraphQL"},
				Summary:    "Strong backend profile",
			},
			{
				CVID: 2, CVName: "bob.docx", Score: 45, MatchLevel: "Fair",
			},
		},
	}
}

func TestReportRanksResults(t *testing.T) {
	r := &Renderer{}
	out := r.Report(sampleReport(), 0)

	if !strings.Contains(out, "Matched 2 CVs against Backend Engineer") {
		t.Fatalf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "#1") || !strings.Contains(out, "#2") {
		t.Fatalf("missing rank badges in:\n%s", out)
	}
	if strings.Index(out, "alice.pdf") > strings.Index(out, "bob.docx") {
		t.Fatalf("expected backend ordering preserved in:\n%s", out)
	}
}

func TestReportExpandsAtMostOneRow(t *testing.T) {
	r := &Renderer{}

	collapsed := r.Report(sampleReport(), 0)
	if strings.Contains(collapsed, "Key Matches:") {
		t.Fatalf("no row should be expanded:\n%s", collapsed)
	}

	expanded := r.Report(sampleReport(), 1)
	if !strings.Contains(expanded, "+ Go") || !strings.Contains(expanded, "- GraphQL") {
		t.Fatalf("expected alice's details in:\n%s", expanded)
	}
	if strings.Count(expanded, "Key Matches:") != 1 {
		t.Fatalf("expected exactly one expanded row in:\n%s", expanded)
	}
}

func TestDetailsPlaceholders(t *testing.T) {
	r := &Renderer{}
	out := r.Details(&hiring.MatchResult{CVName: "bob.docx", Score: 45})

	if !strings.Contains(out, "No specific matches identified") {
		t.Fatalf("missing key-matches placeholder in:\n%s", out)
	}
	if !strings.Contains(out, "No significant gaps identified") {
		t.Fatalf("missing gaps placeholder in:\n%s", out)
	}
	if strings.Contains(out, "Summary:") {
		t.Fatalf("empty summary must not render a summary section:\n%s", out)
	}
}

func TestReportEmpty(t *testing.T) {
	r := &Renderer{}
	out := r.Report(&hiring.MatchReport{JDName: "x"}, 0)

	if !strings.Contains(out, "No matching results available") {
		t.Fatalf("missing empty state in:\n%s", out)
	}
}

func TestColoredBadges(t *testing.T) {
	plain := &Renderer{}
	colored := &Renderer{Colored: true}
	result := sampleReport().Results[0]

	if strings.Contains(plain.Row(1, result), "\033[") {
		t.Fatalf("plain renderer must not emit escape codes")
	}
	if !strings.Contains(colored.Row(1, result), "\033[32m") {
		t.Fatalf("colored renderer should color an excellent badge green")
	}
}

func TestScoreBarBounds(t *testing.T) {
	if bar := scoreBar(100); strings.Contains(bar, "░") {
		t.Fatalf("full score should fill the bar: %s", bar)
	}
	if bar := scoreBar(0); strings.Contains(bar, "█") {
		t.Fatalf("zero score should leave the bar empty: %s", bar)
	}
	// Stale or malformed records must not break rendering.
	if bar := scoreBar(-10); strings.Contains(bar, "█") {
		t.Fatalf("negative score should clamp to empty: %s", bar)
	}
	if bar := scoreBar(250); strings.Contains(bar, "░") {
		t.Fatalf("overflowing score should clamp to full: %s", bar)
	}
}
