// Package mcptools exposes the filter and aggregation pipeline as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/KaramelBytes/courtside/internal/utils"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultRowLimit = 50

// ListChoicesArgs takes no input.
type ListChoicesArgs struct{}

// FilterGamesArgs selects a season and team; empty values pick the first choice.
type FilterGamesArgs struct {
	Season string `json:"season" jsonschema:"Season label (default: first season)"`
	Team   string `json:"team" jsonschema:"Team name (default: first team)"`
	Limit  int    `json:"limit" jsonschema:"Max rows returned (default 50, 0 = default)"`
}

// SummarizeArgs selects the view to summarize and the output format.
type SummarizeArgs struct {
	Season string `json:"season" jsonschema:"Season label (default: first season)"`
	Team   string `json:"team" jsonschema:"Team name (default: first team)"`
	Format string `json:"format" jsonschema:"json|markdown (default json)"`
}

type filterResult struct {
	Selection dataset.Selection `json:"selection"`
	Rows      int               `json:"rows"`
	Returned  int               `json:"returned"`
	Columns   []string          `json:"columns"`
	Data      [][]string        `json:"data"`
}

type summaryResult struct {
	analysis.ReportJSON
	Boxes []analysis.BoxJSON `json:"boxes"`
}

// Tools answers tool calls over one loaded table.
type Tools struct {
	table   *dataset.Table
	choices dataset.Choices
}

// New normalizes t and prepares the tool handlers.
func New(t *dataset.Table) (*Tools, error) {
	norm, err := dataset.Normalize(t)
	if err != nil {
		return nil, err
	}
	return &Tools{table: norm, choices: dataset.ChoicesOf(norm)}, nil
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(t *dataset.Table, version string) (*mcp.Server, error) {
	tools, err := New(t)
	if err != nil {
		return nil, err
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "courtside",
			Version: version,
		},
		nil,
	)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_choices",
		Description: "Seasons and teams available for filtering",
	}, tools.ListChoices)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_games",
		Description: "Game rows for one season and team",
	}, tools.FilterGames)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_selection",
		Description: "Points, assists, rebounds and stat correlations for one season and team",
	}, tools.Summarize)
	return server, nil
}

// HTTPHandler serves server over streamable HTTP with plain JSON responses.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// ListChoices returns the distinct seasons and teams.
func (t *Tools) ListChoices(ctx context.Context, req *mcp.CallToolRequest, args ListChoicesArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.choices), nil, nil
}

// FilterGames returns up to Limit rows of the selection and its total row count.
func (t *Tools) FilterGames(ctx context.Context, req *mcp.CallToolRequest, args FilterGamesArgs) (*mcp.CallToolResult, any, error) {
	sel, err := dataset.Resolve(t.choices, args.Season, args.Team)
	if err != nil {
		return toolError(err), nil, nil
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultRowLimit
	}
	sub := dataset.Filter(t.table, sel)
	rows := sub.Head(limit).Rows()
	if rows == nil {
		rows = [][]string{}
	}
	return toolJSON(filterResult{
		Selection: sel,
		Rows:      sub.Nrow(),
		Returned:  len(rows),
		Columns:   sub.Names(),
		Data:      rows,
	}), nil, nil
}

// Summarize returns the aggregate report of the selection as JSON or Markdown.
// Unknown selections and formats come back as tool errors.
func (t *Tools) Summarize(ctx context.Context, req *mcp.CallToolRequest, args SummarizeArgs) (*mcp.CallToolResult, any, error) {
	sel, err := dataset.Resolve(t.choices, args.Season, args.Team)
	if err != nil {
		return toolError(err), nil, nil
	}
	sub := dataset.Filter(t.table, sel)
	rep := analysis.NewReport(t.table, sub, sel, 0)
	switch args.Format {
	case "", "json":
	case "markdown", "md":
		return toolText(rep.Markdown()), nil, nil
	default:
		return toolError(fmt.Errorf("unknown format %q (use json or markdown)", args.Format)), nil, nil
	}
	out := summaryResult{ReportJSON: rep.JSON(), Boxes: []analysis.BoxJSON{}}
	if !sub.Empty() {
		out.Boxes = analysis.BoxesJSON(analysis.GroupBoxes(sub, dataset.ColTeam, dataset.ColPoints))
	}
	return toolJSON(out), nil, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return toolError(err)
	}
	return toolText(string(b))
}

func toolText(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
