package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const gamesCSV = `SEASON,TEAM_NAME,GAME_ID,PTS,AST,REB,MIN
S1,TeamA,0001,10,5,7,5:30
S1,TeamB,0002,20,6,8,48:00
S2,TeamA,0003,30,7,9,abc
`

// runCmd is a helper to execute the root command with args and capture its output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset bound variables that persist across invocations
	cfgFile, dataFlag, debug = "", "", false
	anaSeason, anaTeam, anaOutputPath, anaSampleRows, anaJSON = "", "", "", 5, false
	expSeason, expTeam, expOutputPath = "", "", "stats_filtered.csv"
	choicesSeasons, choicesTeams = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

func writeGames(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "games.csv")
	if err := os.WriteFile(p, []byte(gamesCSV), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return p
}

func TestCLI_Choices(t *testing.T) {
	data := writeGames(t)
	out := mustRun(t, "choices", "--data", data)
	for _, want := range []string{"Seasons:", "- S1", "- S2", "Teams:", "- TeamA", "- TeamB"} {
		if !strings.Contains(out, want) {
			t.Errorf("choices output missing %q:\n%s", want, out)
		}
	}
	out = mustRun(t, "choices", data, "--teams")
	if strings.Contains(out, "Seasons:") {
		t.Errorf("--teams should hide seasons:\n%s", out)
	}
}

func TestCLI_AnalyzeMarkdownAndJSON(t *testing.T) {
	data := writeGames(t)
	out := mustRun(t, "analyze", data, "--season", "S1", "--team", "TeamA")
	if !strings.Contains(out, "Mean points: 10.00") || !strings.Contains(out, "[SELECTION]") {
		t.Fatalf("analyze output:\n%s", out)
	}

	out = mustRun(t, "summary", data, "-s", "S2", "-t", "TeamB", "--json")
	if !strings.Contains(out, `"summary": null`) || !strings.Contains(out, "no data for this filter") {
		t.Fatalf("empty json output:\n%s", out)
	}

	if _, err := runCmd(t, "analyze", data, "--team", "Nobody"); err == nil {
		t.Fatalf("expected error for unknown team")
	}
}

func TestCLI_Export(t *testing.T) {
	data := writeGames(t)
	outPath := filepath.Join(t.TempDir(), "out", "stats_filtered.csv")
	mustRun(t, "export", "--data", data, "-s", "S1", "-t", "TeamB", "-o", outPath)
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "S1,TeamB,0002,20,") {
		t.Fatalf("export = %q", b)
	}

	out := mustRun(t, "export", data, "-s", "S2", "-t", "TeamA", "-o", "-")
	if !strings.HasPrefix(out, "SEASON,TEAM_NAME") || !strings.Contains(out, "S2,TeamA,0003,30") {
		t.Fatalf("stdout export = %q", out)
	}
}

func TestCLI_MissingDataFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := runCmd(t, "choices", filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	mustRun(t, "--config", cfgPath, "config", "set", "preview_rows", "7")
	out := mustRun(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, "preview_rows: 7") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, err := runCmd(t, "--config", cfgPath, "config", "set", "delimiter", ";;"); err == nil {
		t.Fatalf("expected invalid delimiter error")
	}
	if _, err := runCmd(t, "--config", cfgPath, "config", "set", "log_format", "xml"); err == nil {
		t.Fatalf("expected invalid log_format error")
	}
}

func TestCLI_DataFlagIsNotSaved(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	mustRun(t, "--config", cfgPath, "--data", "other.csv", "config", "set", "addr", ":9000")
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(b), "other.csv") || !strings.Contains(string(b), "data_path: nba_games.csv") {
		t.Fatalf("--data leaked into saved config:\n%s", b)
	}
}

func TestCLI_FallbackConfigHasTimeouts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COURTSIDE_DELIMITER", "??")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	out := mustRun(t, "--config", cfgPath, "config", "show")
	for _, want := range []string{"read_timeout_sec: 15", "write_timeout_sec: 30", "log_format: text"} {
		if !strings.Contains(out, want) {
			t.Errorf("fallback config missing %q:\n%s", want, out)
		}
	}
}
