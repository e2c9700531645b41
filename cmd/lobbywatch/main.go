// Command lobbywatch prints a quick, human-readable summary of a running
// lobby server. It polls the REST inspection API and reports connection and
// queue counters plus every active room with its participants.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/NovadaGames/squared-socketio/game/lobby"
)

var (
	addr     = flag.String("addr", "http://localhost:8080", "Base URL of the lobby server")
	interval = flag.Duration("interval", 0, "Polling interval (0 reports once and exits)")
)

func main() {
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}

	for {
		summary, err := fetchSummary(client, *addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(summary)

		if *interval <= 0 {
			return
		}
		time.Sleep(*interval)
	}
}

// fetchSummary pulls stats and rooms from the server and renders them.
func fetchSummary(client *http.Client, baseURL string) (string, error) {
	var stats lobby.Stats
	if err := getJSON(client, baseURL+"/api/stats", &stats); err != nil {
		return "", fmt.Errorf("fetching stats: %w", err)
	}

	var listed struct {
		Count int              `json:"count"`
		Rooms []lobby.RoomInfo `json:"rooms"`
	}
	if err := getJSON(client, baseURL+"/api/rooms", &listed); err != nil {
		return "", fmt.Errorf("fetching rooms: %w", err)
	}

	return formatSummary(stats, listed.Rooms), nil
}

func getJSON(client *http.Client, url string, v interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// formatSummary renders one report block.
func formatSummary(stats lobby.Stats, rooms []lobby.RoomInfo) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Lobby at %s ===\n", time.Now().Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Connections: %d | Rooms: %d (matchmade: %d) | Queued: %d\n",
		stats.Connections, stats.Rooms, stats.Matchmade, stats.Queued))

	if len(rooms) == 0 {
		b.WriteString("No active rooms\n")
		return b.String()
	}

	for _, r := range rooms {
		origin := "code"
		if r.Matchmade {
			origin = "queue"
		}
		b.WriteString(fmt.Sprintf("  %s [%s] %d/2", r.Code, origin, len(r.Participants)))
		for _, conn := range r.Participants {
			name := r.Names[conn]
			if name == "" {
				name = "(unnamed)"
			}
			b.WriteString(fmt.Sprintf(" %s", name))
		}
		b.WriteString(fmt.Sprintf(" age=%s\n", time.Since(r.CreatedAt).Round(time.Second)))
	}

	return b.String()
}
