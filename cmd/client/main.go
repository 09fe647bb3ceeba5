package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pterm/pterm"

	"github.com/honeycarbs/filtrip/internal/domain/board"
	"github.com/honeycarbs/filtrip/internal/domain/tracker"
)

const helpText = `Commands:
  jobs                 show the board
  filter <tag>         select a tag, or deselect it when already selected
  remove <tag>         remove a selected tag
  clear                remove every selected tag
  ip [query]           look up an IPv4 address or domain (blank shows your own)
  where                show the tracker
  zoom <level>         change the map zoom
  dismiss <id>         close a notification
  help                 show this text
  quit | exit          end the session`

type Client struct {
	mcpSession *mcp.ClientSession
	filters    []string
}

func NewClient(ctx context.Context, mcpEndpoint string) (*Client, error) {
	mcpClient := mcp.NewClient(&mcp.Implementation{
		Name:    "filtrip-client",
		Version: "0.1.0",
	}, nil)

	pterm.Info.Printf("Connecting to MCP server at: %s\n", mcpEndpoint)

	session, err := mcpClient.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: mcpEndpoint,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server at %s: %w", mcpEndpoint, err)
	}

	pterm.Success.Printf("Connected (session ID: %s)\n", session.ID())
	return &Client{mcpSession: session}, nil
}

func (c *Client) Close() error {
	if c.mcpSession == nil {
		return nil
	}
	return c.mcpSession.Close()
}

// call runs a tool and decodes its structured content into out
func (c *Client) call(ctx context.Context, tool string, args map[string]any, out any) error {
	res, err := c.mcpSession.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	if res.IsError {
		return fmt.Errorf("%s: %s", tool, textOf(res))
	}

	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", tool, err)
	}
	return nil
}

func (c *Client) board(ctx context.Context, tool string, args map[string]any) error {
	var view board.View
	if err := c.call(ctx, tool, args, &view); err != nil {
		return err
	}
	c.filters = view.Filters
	renderBoard(view)
	return nil
}

func (c *Client) tracker(ctx context.Context, tool string, args map[string]any) error {
	var snap tracker.Snapshot
	if err := c.call(ctx, tool, args, &snap); err != nil {
		return err
	}
	renderTracker(snap)
	return nil
}

// Run dispatches one command line
func (c *Client) Run(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "", "help":
		fmt.Println(helpText)
		return nil
	case "jobs":
		return c.board(ctx, "list_jobs", map[string]any{})
	case "filter":
		if arg == "" {
			return fmt.Errorf("usage: filter <tag>")
		}
		return c.board(ctx, "toggle_filter", map[string]any{"tag": arg})
	case "remove":
		if arg == "" {
			return fmt.Errorf("usage: remove <tag>")
		}
		return c.board(ctx, "remove_filter", map[string]any{"tag": arg})
	case "clear":
		if len(c.filters) == 0 {
			return c.board(ctx, "list_jobs", map[string]any{})
		}
		for _, tag := range append([]string(nil), c.filters...) {
			if err := c.board(ctx, "remove_filter", map[string]any{"tag": tag}); err != nil {
				return err
			}
		}
		return nil
	case "ip":
		if arg == "" {
			return c.tracker(ctx, "tracker_state", map[string]any{"wait": true})
		}
		spinner, _ := pterm.DefaultSpinner.Start("Locating " + arg)
		err := c.tracker(ctx, "lookup_ip", map[string]any{"query": arg, "wait": true})
		if spinner != nil {
			_ = spinner.Stop()
		}
		return err
	case "where":
		return c.tracker(ctx, "tracker_state", map[string]any{})
	case "zoom":
		level, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("usage: zoom <level>")
		}
		return c.tracker(ctx, "set_zoom", map[string]any{"zoom": level})
	case "dismiss":
		if arg == "" {
			return fmt.Errorf("usage: dismiss <id>")
		}
		return c.tracker(ctx, "dismiss_notification", map[string]any{"id": arg})
	default:
		return fmt.Errorf("unknown command %q (type 'help')", cmd)
	}
}

func renderBoard(view board.View) {
	if len(view.Filters) > 0 {
		chips := make([]string, 0, len(view.Filters))
		for _, f := range view.Filters {
			chips = append(chips, pterm.BgCyan.Sprint(pterm.Black(" "+f+" ✕ ")))
		}
		pterm.Println(strings.Join(chips, " "))
	}

	data := pterm.TableData{{"Company", "Position", "Posted", "Contract", "Location", "Tags"}}
	for _, c := range view.Jobs {
		company := c.Company
		for _, b := range c.Badges {
			if b == board.BadgeNew {
				company += " " + pterm.Cyan(b)
			} else {
				company += " " + pterm.Gray(b)
			}
		}

		tags := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			if t.Selected {
				tags = append(tags, pterm.Cyan(t.Name))
			} else {
				tags = append(tags, t.Name)
			}
		}

		data = append(data, []string{company, c.Position, c.PostedAt, c.Contract, c.Location, strings.Join(tags, ", ")})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
	pterm.Info.Printf("%d of %d job(s)\n", len(view.Jobs), view.Total)
}

func renderTracker(snap tracker.Snapshot) {
	if r := snap.Result; r != nil {
		panel := fmt.Sprintf("IP Address  %s\nLocation    %s\nTimezone    UTC %s\nISP         %s",
			r.IP, r.Place(), r.Location.Timezone, r.ISP)
		if !r.FetchedAt.IsZero() {
			panel += "\nFetched     " + humanize.Time(r.FetchedAt)
		}
		pterm.DefaultBox.WithTitle("IP Address Tracker").Println(panel)

		m := snap.Map
		line := fmt.Sprintf("Map centered on %.5f, %.5f at zoom %d", m.Center.Lat, m.Center.Lng, m.Zoom)
		if m.TileURL != "" {
			line += "\n" + pterm.Gray(m.TileURL)
		}
		pterm.Println(line)
	} else {
		pterm.Info.Println("No location yet")
	}

	if snap.Pending {
		pterm.Info.Println("Lookup in flight")
	}

	for _, n := range snap.Notifications {
		msg := fmt.Sprintf("%s (expires %s) [%s]", n.Message, humanize.Time(n.ExpiresAt), n.ID)
		if n.Level == tracker.LevelError {
			pterm.Error.Println(msg)
		} else {
			pterm.Info.Println(msg)
		}
	}
}

func textOf(res *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(txt.Text)
		}
	}
	return sb.String()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down...")
		cancel()
		os.Exit(0)
	}()

	mcpEndpoint := os.Getenv("MCP_ENDPOINT")
	if mcpEndpoint == "" {
		mcpEndpoint = "http://localhost:8080/mcp/stream"
	}

	pterm.DefaultHeader.WithFullWidth().Println("FILTRIP CLIENT")

	client, err := NewClient(ctx, mcpEndpoint)
	if err != nil {
		pterm.Fatal.Printf("Failed to create client: %v\n", err)
	}
	defer func() {
		done := make(chan struct{})
		go func() {
			_ = client.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			pterm.Warning.Println("Client close timed out")
		}
	}()

	if len(os.Args) > 1 {
		if err := client.Run(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(helpText)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			fmt.Println("\n\nShutdown complete.")
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			fmt.Println("Goodbye!")
			return
		}

		if err := client.Run(ctx, line); err != nil {
			pterm.Error.Println(err)
		}
	}
}
