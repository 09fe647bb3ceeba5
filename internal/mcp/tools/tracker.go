package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

const (
	toolLookupIP            = "lookup_ip"
	toolTrackerState        = "tracker_state"
	toolDismissNotification = "dismiss_notification"
	toolSetZoom             = "set_zoom"
)

// LookupIPParams defines the arguments for the lookup_ip tool
type LookupIPParams struct {
	Query string `json:"query" jsonschema:"IPv4 address or domain name; blank input is ignored"`
	Wait  bool   `json:"wait,omitempty" jsonschema:"Block until the lookup settles before answering"`
}

// TrackerStateParams defines the arguments for the tracker_state tool
type TrackerStateParams struct {
	Wait bool `json:"wait,omitempty" jsonschema:"Block until the in-flight lookup, if any, settles"`
}

// DismissParams defines the arguments for the dismiss_notification tool
type DismissParams struct {
	ID string `json:"id" jsonschema:"Notification identifier"`
}

// ZoomParams defines the arguments for the set_zoom tool
type ZoomParams struct {
	Zoom int `json:"zoom" jsonschema:"Map zoom level, clamped to 0-19"`
}

type trackerTools struct {
	sessions SessionStore
	logger   *logging.Logger
}

// WithTrackerTools registers lookup_ip, tracker_state, dismiss_notification
// and set_zoom
func WithTrackerTools(sessions SessionStore, logger *logging.Logger) Option {
	return func(reg *registry) {
		h := trackerTools{sessions: sessions, logger: orNop(logger)}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolLookupIP,
			Description: "Geolocate an IPv4 address or domain and update the session's tracker",
		}, h.lookupIP)
		reg.add(toolLookupIP)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolTrackerState,
			Description: "Return the tracker's result panel, map view and active notifications",
		}, h.trackerState)
		reg.add(toolTrackerState)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolDismissNotification,
			Description: "Dismiss a tracker notification before it expires",
		}, h.dismiss)
		reg.add(toolDismissNotification)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        toolSetZoom,
			Description: "Change the map zoom level, keeping the current center",
		}, h.setZoom)
		reg.add(toolSetZoom)
	}
}

func (h trackerTools) tracker(ctx context.Context, req *sdkmcp.CallToolRequest) (*tracker.Tracker, error) {
	if h.sessions == nil {
		return nil, fmt.Errorf("session store not configured")
	}
	st, err := h.sessions.Get(ctx, sessionID(req))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return st.Tracker, nil
}

func (h trackerTools) lookupIP(ctx context.Context, req *sdkmcp.CallToolRequest, params LookupIPParams) (*sdkmcp.CallToolResult, any, error) {
	tr, err := h.tracker(ctx, req)
	if err != nil {
		h.logger.Error("lookup_ip: session unavailable", "err", err)
		return nil, nil, err
	}

	pending := tr.Submit(ctx, params.Query)
	if pending == nil {
		h.logger.Debug("lookup_ip: blank query ignored", "session", sessionID(req))
		snap := tr.Snapshot()
		return textResult(formatSnapshot(toolLookupIP, snap, "blank query ignored")), snap, nil
	}

	h.logger.Info("lookup_ip request",
		"session", sessionID(req),
		"query", pending.Query.String(),
		"wait", params.Wait,
	)

	note := "lookup started for " + pending.Query.String()
	if params.Wait {
		note = h.await(ctx, pending)
	}

	snap := tr.Snapshot()
	return textResult(formatSnapshot(toolLookupIP, snap, note)), snap, nil
}

func (h trackerTools) trackerState(ctx context.Context, req *sdkmcp.CallToolRequest, params TrackerStateParams) (*sdkmcp.CallToolResult, any, error) {
	tr, err := h.tracker(ctx, req)
	if err != nil {
		h.logger.Error("tracker_state: session unavailable", "err", err)
		return nil, nil, err
	}

	if params.Wait {
		waitSettled(ctx, tr)
	}
	snap := tr.Snapshot()

	return textResult(formatSnapshot(toolTrackerState, snap, "")), snap, nil
}

func (h trackerTools) dismiss(ctx context.Context, req *sdkmcp.CallToolRequest, params DismissParams) (*sdkmcp.CallToolResult, any, error) {
	tr, err := h.tracker(ctx, req)
	if err != nil {
		h.logger.Error("dismiss_notification: session unavailable", "err", err)
		return nil, nil, err
	}

	note := "notification dismissed"
	if !tr.Dismiss(params.ID) {
		note = "notification not found or already expired"
	}

	snap := tr.Snapshot()
	return textResult(formatSnapshot(toolDismissNotification, snap, note)), snap, nil
}

func (h trackerTools) setZoom(ctx context.Context, req *sdkmcp.CallToolRequest, params ZoomParams) (*sdkmcp.CallToolResult, any, error) {
	tr, err := h.tracker(ctx, req)
	if err != nil {
		h.logger.Error("set_zoom: session unavailable", "err", err)
		return nil, nil, err
	}

	view := tr.Zoom(params.Zoom)
	h.logger.Debug("set_zoom", "session", sessionID(req), "zoom", view.Zoom)

	snap := tr.Snapshot()
	return textResult(formatSnapshot(toolSetZoom, snap, fmt.Sprintf("zoom set to %d", view.Zoom))), snap, nil
}

func (h trackerTools) await(ctx context.Context, pending *tracker.Request) string {
	err := pending.Wait(ctx)
	switch {
	case err == nil:
		return "lookup completed for " + pending.Query.String()
	case errors.Is(err, tracker.ErrSuperseded):
		return "lookup superseded by a newer one"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "still waiting for " + pending.Query.String()
	default:
		// already logged and surfaced as a notification by the tracker
		return tracker.FailureMessage
	}
}

// waitSettled blocks until no lookup is in flight, following supersessions,
// or until ctx ends.
func waitSettled(ctx context.Context, tr *tracker.Tracker) {
	for {
		cur := tr.Current()
		if cur == nil {
			return
		}
		if err := cur.Wait(ctx); err != nil && ctx.Err() != nil {
			return
		}
	}
}

func formatSnapshot(tool string, snap tracker.Snapshot, note string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] state=%s", tool, snap.State)
	if snap.Pending {
		sb.WriteString(" (lookup in flight)")
	}
	if note != "" {
		sb.WriteString(": " + note)
	}

	if r := snap.Result; r != nil {
		fmt.Fprintf(&sb, "\nIP Address: %s\nLocation: %s\nTimezone: UTC %s\nISP: %s",
			r.IP, r.Place(), r.Location.Timezone, r.ISP)
		fmt.Fprintf(&sb, "\nMap: %.5f, %.5f @ zoom %d", snap.Map.Center.Lat, snap.Map.Center.Lng, snap.Map.Zoom)
	}

	for _, n := range snap.Notifications {
		fmt.Fprintf(&sb, "\n! %s (%s)", n.Message, n.ID)
	}
	return sb.String()
}
