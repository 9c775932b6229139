package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetBatchFlags() {
	abOutDir, abSeasons, abTeams, abSampleRows, abKeepEmpty, abQuiet = "reports", nil, nil, 5, false, false
}

func TestAnalyzeBatch_WritesOnePerCombination(t *testing.T) {
	data := writeGames(t)
	outDir := filepath.Join(t.TempDir(), "reports")

	resetBatchFlags()
	mustRun(t, "analyze-batch", data, "-o", outDir, "--quiet")

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	// S2/TeamB has no rows and is skipped
	if len(entries) != 3 {
		t.Fatalf("reports = %d, want 3", len(entries))
	}
	body, err := os.ReadFile(filepath.Join(outDir, "s1__teama.summary.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(body), "Mean points: 10.00") {
		t.Fatalf("report body:\n%s", body)
	}

	// A second run must not overwrite
	resetBatchFlags()
	mustRun(t, "analyze-batch", data, "-o", outDir, "--quiet", "--seasons", "S1", "--teams", "TeamA", "--sample-rows", "0")
	second, err := os.ReadFile(filepath.Join(outDir, "s1__teama__2.summary.md"))
	if err != nil {
		t.Fatalf("missing collision-suffixed report: %v", err)
	}
	if strings.Contains(string(second), "[ROWS]") {
		t.Fatalf("--sample-rows 0 should suppress rows:\n%s", second)
	}
}

func TestAnalyzeBatch_KeepEmptyAndUnknown(t *testing.T) {
	data := writeGames(t)
	outDir := filepath.Join(t.TempDir(), "reports")

	resetBatchFlags()
	mustRun(t, "analyze-batch", data, "-o", outDir, "--quiet", "--keep-empty", "--seasons", "S2", "--teams", "TeamB")
	body, err := os.ReadFile(filepath.Join(outDir, "s2__teamb.summary.md"))
	if err != nil || !strings.Contains(string(body), "no data for this filter") {
		t.Fatalf("empty report = %q, %v", body, err)
	}

	resetBatchFlags()
	if _, err := runCmd(t, "analyze-batch", data, "-o", outDir, "--teams", "Nobody"); err == nil {
		t.Fatalf("expected unknown team error")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"2022-23":        "2022-23",
		"Boston Celtics": "boston-celtics",
		"  ":             "x",
		"A/B_c":          "a-b-c",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
