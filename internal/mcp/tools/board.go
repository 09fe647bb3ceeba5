package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/filtrip/internal/domain"
	"github.com/honeycarbs/filtrip/internal/domain/board"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

const (
	toolListJobs     = "list_jobs"
	toolToggleFilter = "toggle_filter"
	toolRemoveFilter = "remove_filter"
)

// ListJobsParams defines the arguments for the list_jobs tool
type ListJobsParams struct{}

// FilterParams defines the arguments for toggle_filter and remove_filter
type FilterParams struct {
	Tag string `json:"tag" jsonschema:"Language or tool tag, matched exactly"`
}

type boardTools struct {
	sessions SessionStore
	postings []domain.Posting
	logger   *logging.Logger
}

// WithBoardTools registers list_jobs, toggle_filter and remove_filter
func WithBoardTools(sessions SessionStore, postings []domain.Posting, logger *logging.Logger) Option {
	return func(reg *registry) {
		h := boardTools{sessions: sessions, postings: postings, logger: orNop(logger)}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolListJobs,
			Description: "List job postings narrowed by the session's selected tags",
		}, h.listJobs)
		reg.add(toolListJobs)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolToggleFilter,
			Description: "Select a tag, or deselect it when already selected, and return the filtered board",
		}, h.toggleFilter)
		reg.add(toolToggleFilter)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolRemoveFilter,
			Description: "Remove a selected tag (no-op when absent) and return the filtered board",
		}, h.removeFilter)
		reg.add(toolRemoveFilter)
	}
}

func (h boardTools) board(ctx context.Context, req *sdkmcp.CallToolRequest) (*board.Board, error) {
	if h.sessions == nil {
		return nil, fmt.Errorf("session store not configured")
	}
	st, err := h.sessions.Get(ctx, sessionID(req))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return st.Board, nil
}

func (h boardTools) listJobs(ctx context.Context, req *sdkmcp.CallToolRequest, _ ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
	b, err := h.board(ctx, req)
	if err != nil {
		h.logger.Error("list_jobs: session unavailable", "err", err)
		return nil, nil, err
	}

	view := b.Render(h.postings)
	h.logger.Debug("list_jobs", "session", sessionID(req), "filters", view.Filters, "visible", len(view.Jobs))
	return textResult(formatBoard(toolListJobs, view)), view, nil
}

func (h boardTools) toggleFilter(ctx context.Context, req *sdkmcp.CallToolRequest, params FilterParams) (*sdkmcp.CallToolResult, any, error) {
	b, err := h.board(ctx, req)
	if err != nil {
		h.logger.Error("toggle_filter: session unavailable", "err", err)
		return nil, nil, err
	}

	filters := b.ToggleFilter(params.Tag)
	h.logger.Info("toggle_filter", "session", sessionID(req), "tag", params.Tag, "filters", filters)

	view := board.Project(h.postings, filters)
	return textResult(formatBoard(toolToggleFilter, view)), view, nil
}

func (h boardTools) removeFilter(ctx context.Context, req *sdkmcp.CallToolRequest, params FilterParams) (*sdkmcp.CallToolResult, any, error) {
	b, err := h.board(ctx, req)
	if err != nil {
		h.logger.Error("remove_filter: session unavailable", "err", err)
		return nil, nil, err
	}

	filters := b.RemoveFilter(params.Tag)
	h.logger.Info("remove_filter", "session", sessionID(req), "tag", params.Tag, "filters", filters)

	view := board.Project(h.postings, filters)
	return textResult(formatBoard(toolRemoveFilter, view)), view, nil
}

func formatBoard(tool string, view board.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d of %d job(s)", tool, len(view.Jobs), view.Total)
	if len(view.Filters) > 0 {
		fmt.Fprintf(&sb, " matching %s", strings.Join(view.Filters, " + "))
	}

	for _, c := range view.Jobs {
		tags := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			tags = append(tags, t.Name)
		}
		fmt.Fprintf(&sb, "\n• %s: %s (%s • %s • %s) [%s]",
			c.Company, c.Position, c.PostedAt, c.Contract, c.Location, strings.Join(tags, ", "))
	}
	return sb.String()
}
