package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NovadaGames/squared-socketio/game/lobby"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Squared Lobby",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Squared Lobby - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The lobby pairs players into two-participant rooms, either by shared
room code or through a first-come first-served matchmaking queue. All
gameplay flows over WebSocket; these tools give read-only visibility
into the live server.

AVAILABLE TOOLS:
- server_stats: Connection, room and queue counters
- list_rooms: List all active rooms
- get_room: Details of one room by its 5-character code`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get live counters: open connections, active rooms, matchmade rooms and queued players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active rooms, oldest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get details of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code": map[string]interface{}{
					"type":        "string",
					"description": "The room's 5-character code",
				},
			},
			Required: []string{"code"},
		},
	}, c.handleGetRoom)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats lobby.Stats
	err := c.apiCall("GET", "/api/stats", nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Connections: %d\nRooms: %d (matchmade: %d)\nQueued players: %d\n",
		stats.Connections, stats.Rooms, stats.Matchmade, stats.Queued)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int              `json:"count"`
		Rooms []lobby.RoomInfo `json:"rooms"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Rooms (%d):\n\n", response.Count)
	for _, r := range response.Rooms {
		result += fmt.Sprintf("- %s (%d/2 players, %s, created %s)\n",
			r.Code, len(r.Participants), roomOrigin(r), r.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	code, _ := args["code"].(string)

	var info lobby.RoomInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", code), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRoomInfo(&info)
	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatRoomInfo(info *lobby.RoomInfo) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Room: %s\nOrigin: %s\nCreated: %s\n",
		info.Code, roomOrigin(*info), info.CreatedAt.Format("2006-01-02 15:04:05")))

	b.WriteString(fmt.Sprintf("Participants (%d/2):\n", len(info.Participants)))
	for _, conn := range info.Participants {
		name := info.Names[conn]
		if name == "" {
			name = "(unnamed)"
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", conn, name))
	}

	return b.String()
}

func roomOrigin(info lobby.RoomInfo) string {
	if info.Matchmade {
		return "matchmade"
	}
	return "code-created"
}
