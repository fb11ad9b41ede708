package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/emoji-rain/emojirain/internal/app"
	"github.com/emoji-rain/emojirain/internal/client"
)

func main() {
	wsURL := flag.String("url", "ws://127.0.0.1:3000/ws", "WebSocket URL of the relay server")
	wallet := flag.String("wallet", "", "Wallet address to submit scores with (empty: play offline)")
	flag.Parse()

	// Derive the HTTP base URL from the WebSocket URL.
	httpBase := deriveHTTPBase(*wsURL)

	ws := client.NewWSClient(*wsURL)
	httpClient := client.NewHTTPClient(httpBase)
	reporter := client.NewReporter(httpClient, client.LogSubmitter{}, *wallet)

	m := app.New(ws, httpClient, reporter, *wallet)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deriveHTTPBase converts ws://host:port/ws → http://host:port
func deriveHTTPBase(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "http://127.0.0.1:3000"
	}
	scheme := "http"
	if strings.HasPrefix(u.Scheme, "wss") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
