// Package results renders the end-of-session overlay: the score message band
// and the proving outcome, springing into view from the top of the screen.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/emoji-rain/emojirain/internal/client"
	"github.com/emoji-rain/emojirain/internal/theme"
)

const fps = 60

// Model holds the overlay state. The spring animates the overlay's vertical
// offset; Step advances it one frame.
type Model struct {
	Visible bool

	spring   harmonica.Spring
	pos      float64
	vel      float64
	target   float64
	rendered string

	score   int
	band    string
	outcome *client.ReportOutcome
	pending bool
}

// New creates a hidden overlay.
func New() Model {
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.7),
	}
}

// Open shows the overlay for a finished session. The report outcome arrives
// later via SetOutcome; until then the overlay shows a pending line.
func (m *Model) Open(score int, band string, targetRow int) {
	m.Visible = true
	m.score = score
	m.band = band
	m.outcome = nil
	m.pending = true
	m.pos = float64(-12)
	m.vel = 0
	m.target = float64(targetRow)
	m.render()
}

// Close hides the overlay.
func (m *Model) Close() {
	m.Visible = false
}

// SetOutcome records the submission result once reporting finishes.
func (m *Model) SetOutcome(outcome client.ReportOutcome) {
	m.outcome = &outcome
	m.pending = false
	m.render()
}

// Step advances the spring one frame. It returns false once the overlay has
// settled and no more animation frames are needed.
func (m *Model) Step() bool {
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
	settled := abs(m.pos-m.target) < 0.05 && abs(m.vel) < 0.05
	return !settled
}

// FPS is the overlay's animation frame rate.
func FPS() int { return fps }

func (m *Model) render() {
	var md strings.Builder
	md.WriteString("# Time's up!\n\n")
	fmt.Fprintf(&md, "**Score: %d** — %s\n\n", m.score, m.band)

	switch {
	case m.pending:
		md.WriteString("_Submitting score..._\n")
	case m.outcome != nil:
		md.WriteString(m.outcome.Message + "\n")
		if r := m.outcome.Result; r != nil {
			fmt.Fprintf(&md, "\n| IQ | Consistency | Avg reaction | Rounds |\n")
			fmt.Fprintf(&md, "|---:|---:|---:|---:|\n")
			fmt.Fprintf(&md, "| %d | %d%% | %.0fms | %d |\n",
				r.IQScore, r.Consistency, r.AvgReaction, r.Rounds)
		}
	}
	md.WriteString("\nPress `r` to play again.\n")

	out, err := glamour.Render(md.String(), "dark")
	if err != nil {
		out = md.String()
	}
	m.rendered = strings.TrimRight(out, "\n")
}

// View renders the overlay at its current spring offset.
func (m Model) View() string {
	if !m.Visible {
		return ""
	}

	box := theme.StyleOverlay.Render(m.rendered)

	offset := int(m.pos)
	if offset < 0 {
		// Still above the screen: clip the top of the box.
		lines := strings.Split(box, "\n")
		if -offset >= len(lines) {
			return ""
		}
		return strings.Join(lines[-offset:], "\n")
	}
	return strings.Repeat("\n", offset) + box
}

// Align centers the overlay horizontally in the given width.
func (m Model) Align(width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, m.View())
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
