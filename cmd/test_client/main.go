package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", envOr("MCP_ENDPOINT", "http://localhost:8080/mcp/stream"), "MCP stream endpoint")
	userID := flag.String("user", os.Getenv("TEST_USER_ID"), "user id whose résumés drive the feed")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobfeed-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: *endpoint}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testSearchKeywords(ctx, session)

	if *userID == "" {
		fmt.Println("\nno user id given, skipping user-bound tools")
	} else {
		testExtractKeywords(ctx, session, *userID)
		testFetchJobs(ctx, session, *userID)
		testKeywordHistory(ctx, session, *userID)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

func testSearchKeywords(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: search_keywords")
	call(ctx, session, "search_keywords", map[string]any{
		"keywords": []string{"golang", "kubernetes"},
	})
}

func testExtractKeywords(ctx context.Context, session *mcp.ClientSession, userID string) {
	fmt.Println("\nTEST: extract_keywords")
	call(ctx, session, "extract_keywords", map[string]any{"user_id": userID})
}

func testFetchJobs(ctx context.Context, session *mcp.ClientSession, userID string) {
	fmt.Println("\nTEST: fetch_jobs")
	call(ctx, session, "fetch_jobs", map[string]any{"user_id": userID})
}

func testKeywordHistory(ctx context.Context, session *mcp.ClientSession, userID string) {
	fmt.Println("\nTEST: keyword_history")
	call(ctx, session, "keyword_history", map[string]any{"user_id": userID, "limit": 10})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}

	printResult(result)
	if result.IsError {
		fmt.Printf("%s returned a tool error\n", name)
		return
	}
	fmt.Printf("%s passed\n", name)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
