package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go/internal/model"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <match-id>",
		Short: "Stream a match's events from a server",
		Long: `Connect to the match's event stream on the server and print events as
they happen.

Events include:
  - match_created, match_reset: A match began
  - ship_placed, fleet_ready: Placement progress
  - match_started: Battle began
  - shot_fired, ship_sunk: Shots by either side
  - match_over: A side lost its whole fleet

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Remote() {
				return errNoServer
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return streamEvents(ctx, NewClient(cfg.ServerURL), model.MatchID(args[0]), newOutput(cmd))
		},
	}
}

// streamEvent is the wire form of a match event
type streamEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Side      string          `json:"side,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func streamEvents(ctx context.Context, client *Client, id model.MatchID, out *Output) error {
	url := client.WebSocketURL(matchPath(id, "/events"))

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock the read loop on Ctrl+C
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if !out.JSON() {
		fmt.Fprintf(out.out, "Connected to match %s\n", id)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				if !out.JSON() {
					fmt.Fprintln(out.out, "Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printEvent(out.out, data, out.JSON())
	}
}

func printEvent(w io.Writer, data []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Fprintln(w, string(data))
		return
	}

	var evt streamEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		fmt.Fprintf(w, "unreadable event: %s\n", data)
		return
	}

	line := fmt.Sprintf("[%s] %s", evt.Timestamp.Format("15:04:05"), evt.Type)
	if evt.Side != "" {
		line += " (" + evt.Side + ")"
	}
	if len(evt.Payload) > 0 && string(evt.Payload) != "null" {
		line += " " + string(evt.Payload)
	}
	fmt.Fprintln(w, line)
}
