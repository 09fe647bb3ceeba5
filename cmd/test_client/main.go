package main

import (
	"context"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080/mcp/stream"
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "filtrip-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testBoard(ctx, session)
	testTracker(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testBoard(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job board")

	steps := []struct {
		label string
		tool  string
		args  map[string]any
	}{
		{"Test 1: Unfiltered board", "list_jobs", map[string]any{}},
		{"Test 2: Select JavaScript", "toggle_filter", map[string]any{"tag": "JavaScript"}},
		{"Test 3: Add Sass", "toggle_filter", map[string]any{"tag": "Sass"}},
		{"Test 4: Remove JavaScript", "remove_filter", map[string]any{"tag": "JavaScript"}},
		{"Test 5: Deselect Sass", "toggle_filter", map[string]any{"tag": "Sass"}},
	}

	for _, step := range steps {
		fmt.Printf("\n  %s\n", step.label)
		if !call(ctx, session, step.tool, step.args) {
			return
		}
	}

	fmt.Println("\njob board all tests passed")
}

func testTracker(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: IP tracker")

	// Test 1: Initial self lookup started when the session was created
	fmt.Println("\n  Test 1: Own address")
	if !call(ctx, session, "tracker_state", map[string]any{"wait": true}) {
		return
	}

	// Test 2: IPv4 address
	fmt.Println("\n  Test 2: Lookup 8.8.8.8")
	if !call(ctx, session, "lookup_ip", map[string]any{"query": "8.8.8.8", "wait": true}) {
		return
	}

	// Test 3: Domain name
	fmt.Println("\n  Test 3: Lookup example.com")
	if !call(ctx, session, "lookup_ip", map[string]any{"query": "example.com", "wait": true}) {
		return
	}

	// Test 4: Blank input is ignored
	fmt.Println("\n  Test 4: Blank query")
	if !call(ctx, session, "lookup_ip", map[string]any{"query": "  "}) {
		return
	}

	// Test 5: Zoom
	fmt.Println("\n  Test 5: Zoom out")
	if !call(ctx, session, "set_zoom", map[string]any{"zoom": 6}) {
		return
	}

	fmt.Println("\nIP tracker all tests passed")
}

func call(ctx context.Context, session *mcp.ClientSession, tool string, args map[string]any) bool {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		log.Printf("✗ %s failed: %v", tool, err)
		return false
	}
	if result.IsError {
		log.Printf("✗ %s returned an error", tool)
		printResult(result)
		return false
	}
	printResult(result)
	return true
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
