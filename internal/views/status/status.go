// Package status renders the HUD line: countdown, score, perfects, relay
// connection, and how many players are online.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emoji-rain/emojirain/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Remaining float64
	Score     int
	Perfects  int
	Connected bool
	Players   int
	Wallet    string
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	timerColor := theme.ColorTimer
	if m.Remaining <= 5.0 {
		timerColor = theme.ColorTimerLow
	}
	timer := lipgloss.NewStyle().Foreground(timerColor).Bold(true).
		Render(fmt.Sprintf("⏱ %4.1f", m.Remaining))

	score := lipgloss.NewStyle().Foreground(theme.ColorScore).
		Render(fmt.Sprintf("score %d", m.Score))
	perfects := lipgloss.NewStyle().Foreground(theme.ColorPerfect).
		Render(fmt.Sprintf("perfect %d", m.Perfects))

	var conn string
	if m.Connected {
		conn = lipgloss.NewStyle().Foreground(theme.ColorConnected).
			Render(fmt.Sprintf("● %d online", m.Players))
	} else {
		conn = lipgloss.NewStyle().Foreground(theme.ColorOffline).
			Render("○ offline")
	}

	wallet := theme.StyleDimmed.Render("no wallet")
	if m.Wallet != "" {
		short := m.Wallet
		if len(short) > 10 {
			short = short[:6] + "…" + short[len(short)-4:]
		}
		wallet = theme.StyleDimmed.Render("wallet " + short)
	}

	return strings.Join([]string{timer, score, perfects, conn, wallet}, "  ")
}
