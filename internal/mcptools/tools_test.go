package mcptools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const gamesCSV = `SEASON,TEAM_NAME,GAME_ID,PTS,AST,REB,MIN
S1,TeamA,0001,10,5,7,5:30
S1,TeamA,0004,14,3,9,30:00
S1,TeamB,0002,20,6,8,48:00
S2,TeamA,0003,30,7,9,abc
`

func newTools(t *testing.T) *Tools {
	t.Helper()
	tbl, err := dataset.LoadReader(strings.NewReader(gamesCSV), ',')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tools, err := New(tbl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tools
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content len = %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func TestListChoices(t *testing.T) {
	res, _, err := newTools(t).ListChoices(context.Background(), nil, ListChoicesArgs{})
	if err != nil || res.IsError {
		t.Fatalf("ListChoices: %v", err)
	}
	var c dataset.Choices
	if err := json.Unmarshal([]byte(resultText(t, res)), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(c.Seasons, ",") != "S1,S2" || strings.Join(c.Teams, ",") != "TeamA,TeamB" {
		t.Fatalf("choices = %+v", c)
	}
}

func TestFilterGames(t *testing.T) {
	tools := newTools(t)
	res, _, err := tools.FilterGames(context.Background(), nil, FilterGamesArgs{Season: "S1", Team: "TeamA", Limit: 1})
	if err != nil || res.IsError {
		t.Fatalf("FilterGames: %v %s", err, resultText(t, res))
	}
	var out filterResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Rows != 2 || out.Returned != 1 || out.Data[0][2] != "0001" {
		t.Fatalf("unexpected result %+v", out)
	}
	if last := out.Data[0][len(out.Data[0])-1]; last != "5.5" {
		t.Fatalf("minutes rendered as %q, want 5.5", last)
	}

	res, _, _ = tools.FilterGames(context.Background(), nil, FilterGamesArgs{Season: "S9"})
	if !res.IsError || !strings.Contains(resultText(t, res), "unknown selection") {
		t.Fatalf("unknown season should be a tool error")
	}
}

func TestSummarize(t *testing.T) {
	tools := newTools(t)
	res, _, err := tools.Summarize(context.Background(), nil, SummarizeArgs{Season: "S1", Team: "TeamA"})
	if err != nil || res.IsError {
		t.Fatalf("Summarize: %v", err)
	}
	var out struct {
		Rows    int `json:"rows"`
		Summary struct {
			PointsMean float64 `json:"points_mean"`
			PointsSum  float64 `json:"points_sum"`
		} `json:"summary"`
		Boxes []struct {
			Team string `json:"team"`
			N    int    `json:"n"`
		} `json:"boxes"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Rows != 2 || out.Summary.PointsMean != 12 || out.Summary.PointsSum != 24 {
		t.Fatalf("unexpected summary %+v", out)
	}
	if len(out.Boxes) != 1 || out.Boxes[0].N != 2 {
		t.Fatalf("boxes = %+v", out.Boxes)
	}

	res, _, _ = tools.Summarize(context.Background(), nil, SummarizeArgs{Season: "S2", Team: "TeamB", Format: "markdown"})
	if res.IsError || !strings.Contains(resultText(t, res), "no data for this filter") {
		t.Fatalf("empty markdown = %s", resultText(t, res))
	}

	res, _, _ = tools.Summarize(context.Background(), nil, SummarizeArgs{Format: "xml"})
	if !res.IsError {
		t.Fatalf("unknown format should be a tool error")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	tbl, err := dataset.LoadReader(strings.NewReader(gamesCSV), ',')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	server, err := NewServer(tbl, "test")
	if err != nil || server == nil {
		t.Fatalf("NewServer: %v", err)
	}
	if HTTPHandler(server) == nil {
		t.Fatalf("nil http handler")
	}
}
