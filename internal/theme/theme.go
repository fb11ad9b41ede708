// Package theme provides the Lip Gloss color palette and reusable styles
// for the Emoji Rain TUI. It is a leaf package with no internal imports.
package theme

import "github.com/charmbracelet/lipgloss"

// Item colors.
var (
	ColorLogo  = lipgloss.Color("#a855f7")
	ColorEmoji = lipgloss.Color("#f9fafb")
	ColorPop   = lipgloss.Color("#f59e0b")
)

// HUD colors.
var (
	ColorTimer     = lipgloss.Color("#06b6d4")
	ColorTimerLow  = lipgloss.Color("#dc2626") // final seconds
	ColorScore     = lipgloss.Color("#22c55e")
	ColorPerfect   = lipgloss.Color("#f59e0b")
	ColorConnected = lipgloss.Color("#22c55e")
	ColorOffline   = lipgloss.Color("#dc2626")
)

// UI chrome colors.
var (
	ColorBorder = lipgloss.Color("#4b5563")
	ColorDimmed = lipgloss.Color("#6b7280")
	ColorBright = lipgloss.Color("#f9fafb")
)

// Shared styles.
var (
	StyleLogo    = lipgloss.NewStyle().Foreground(ColorLogo).Bold(true)
	StylePop     = lipgloss.NewStyle().Foreground(ColorPop).Bold(true)
	StyleDimmed  = lipgloss.NewStyle().Foreground(ColorDimmed)
	StyleHeader  = lipgloss.NewStyle().Foreground(ColorBright).Bold(true)
	StyleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)
)
