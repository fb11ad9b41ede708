// Package app holds the root Bubble Tea model: it drives the session engine
// from three tick commands (countdown, spawn, fall), routes click and key
// activations into it, and runs the end-of-session reporting flow.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/emoji-rain/emojirain/internal/client"
	"github.com/emoji-rain/emojirain/internal/game"
	"github.com/emoji-rain/emojirain/internal/theme"
	"github.com/emoji-rain/emojirain/internal/views/arena"
	"github.com/emoji-rain/emojirain/internal/views/results"
	"github.com/emoji-rain/emojirain/internal/views/status"
	"github.com/emoji-rain/emojirain/internal/wire"
)

const feedLines = 3

// Tick messages carry the epoch they were armed in. A tick whose epoch no
// longer matches the model's was scheduled before a stop or restart and is
// discarded; that is the guard against the cancellation race window.
type countdownTickMsg struct{ epoch int }
type spawnTickMsg struct{ epoch int }
type fallTickMsg struct{ epoch int }
type clearMsg struct{ epoch int }
type popExpireMsg struct {
	epoch int
	id    int
}
type overlayFrameMsg struct{}
type reportDoneMsg struct{ outcome client.ReportOutcome }
type healthMsg struct{ info *client.HealthInfo }

// Model is the root Bubble Tea model.
type Model struct {
	ws       *client.WSClient
	httpc    *client.HTTPClient
	reporter *client.Reporter
	ctx      context.Context
	cancel   context.CancelFunc

	keys   KeyMap
	width  int
	height int

	sess  *game.Session
	epoch int
	pops  map[int]arena.Pop

	arena   arena.Model
	status  status.Model
	results results.Model

	players   map[string]wire.PlayerState
	feed      []string
	connected bool
	wallet    string
	started   bool
}

// New creates the root model.
func New(ws *client.WSClient, httpc *client.HTTPClient, reporter *client.Reporter, wallet string) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ws:       ws,
		httpc:    httpc,
		reporter: reporter,
		ctx:      ctx,
		cancel:   cancel,
		keys:     DefaultKeyMap(),
		sess:     game.New(time.Now().UnixNano()),
		pops:     make(map[int]arena.Pop),
		arena:    arena.New(),
		status:   status.New(),
		results:  results.New(),
		players:  make(map[string]wire.PlayerState),
		wallet:   wallet,
	}
}

// Init starts the relay connection and a one-shot health check. The game
// itself starts once the first window size arrives and the arena has
// dimensions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ws.Listen(m.ctx), m.healthCmd())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.Width = msg.Width
		m.arena.Resize(msg.Width, msg.Height-3)
		if !m.started {
			m.started = true
			return m.startSession()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// Arena starts one row below the status bar.
			return m.activateAt(msg.X, msg.Y-1)
		}
		return m, nil

	case countdownTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if m.sess.CountdownTick() {
			return m.endSession()
		}
		return m, m.countdownCmd()

	case spawnTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.sess.Spawn(time.Now(), m.arena.Width)
		return m, m.spawnCmd()

	case fallTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		for _, id := range m.sess.AdvanceFalls(float64(m.arena.Height)) {
			delete(m.pops, id)
		}
		return m, m.fallCmd()

	case clearMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.sess.Clear()
		m.pops = make(map[int]arena.Pop)
		return m, nil

	case popExpireMsg:
		if msg.epoch == m.epoch {
			delete(m.pops, msg.id)
		}
		return m, nil

	case overlayFrameMsg:
		if !m.results.Visible {
			return m, nil
		}
		if m.results.Step() {
			return m, overlayFrame()
		}
		return m, nil

	case reportDoneMsg:
		m.results.SetOutcome(msg.outcome)
		return m, nil

	case healthMsg:
		m.pushFeed(fmt.Sprintf("relay up %s, %d online",
			(time.Duration(msg.info.UptimeSeconds) * time.Second).String(),
			msg.info.Players))
		return m, nil

	case client.ConnectedMsg:
		m.connected = true
		return m, m.ws.ReadLoop(m.ctx)

	case client.DisconnectedMsg:
		m.connected = false
		m.players = make(map[string]wire.PlayerState)
		return m, m.ws.Listen(m.ctx)

	case client.PlayersMsg:
		m.players = msg.Players
		return m, m.ws.ReadLoop(m.ctx)

	case client.PuzzleMsg:
		m.pushFeed(fmt.Sprintf("%s finished: score %d (%d perfect)",
			msg.Update.PlayerID, msg.Update.Score, msg.Update.Perfects))
		return m, m.ws.ReadLoop(m.ctx)

	case client.NodeMsg:
		m.pushFeed("a node was placed nearby")
		return m, m.ws.ReadLoop(m.ctx)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		// Always available once a round has ended, whatever the reporting
		// flow did.
		if m.started && !m.sess.Running() {
			return m.startSession()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pop):
		if id, ok := arena.Lowest(m.sess.Items()); ok {
			return m.activate(id)
		}
		return m, nil
	}

	return m, nil
}

// startSession begins a fresh round, discarding everything from the previous
// one. Bumping the epoch orphans any timer still in flight.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	m.epoch++
	m.sess.Start(time.Now())
	m.pops = make(map[int]arena.Pop)
	m.results.Close()
	return m, tea.Batch(m.countdownCmd(), m.spawnCmd(), m.fallCmd())
}

// endSession runs when the countdown crosses zero: stop all timers (epoch
// bump), open the results overlay, announce the finish, and kick off the
// reporting flow without blocking the loop.
func (m Model) endSession() (tea.Model, tea.Cmd) {
	m.epoch++

	score := m.sess.Score()
	m.results.Open(score, game.ResultMessage(score), 1)

	if m.connected {
		if err := m.ws.SendPuzzleComplete(score, m.sess.Perfects()); err != nil {
			m.pushFeed("could not announce finish")
		}
	}

	summary := m.sess.Summary()
	report := func() tea.Msg {
		return reportDoneMsg{outcome: m.reporter.Report(m.ctx, summary)}
	}

	return m, tea.Batch(m.clearCmd(), report, overlayFrame())
}

// activateAt resolves a click on the arena to an item activation.
func (m Model) activateAt(x, y int) (tea.Model, tea.Cmd) {
	id, ok := m.arena.HitTest(m.sess.Items(), x, y)
	if !ok {
		return m, nil
	}
	return m.activate(id)
}

// activate records a hit on the item. A stale id (item already fallen out or
// popped by the other input source) is silently ignored.
func (m Model) activate(id int) (tea.Model, tea.Cmd) {
	var at arena.Pop
	for _, item := range m.sess.Items() {
		if item.ID == id {
			at = arena.Pop{Column: item.Column, Row: int(item.Y)}
		}
	}

	if _, ok := m.sess.Activate(id, time.Now()); !ok {
		return m, nil
	}

	m.pops[id] = at
	cmds := []tea.Cmd{m.popExpireCmd(id)}
	if m.connected {
		// The position write goes out as a command: a stalled socket must
		// not stall Update.
		ws := m.ws
		state := wire.PlayerState{
			X: float64(m.sess.Score()),
			Y: 1,
			Z: m.sess.Remaining(),
		}
		cmds = append(cmds, func() tea.Msg {
			ws.SendPosition(state)
			return nil
		})
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) pushFeed(line string) {
	m.feed = append(m.feed, line)
	if len(m.feed) > feedLines {
		m.feed = m.feed[len(m.feed)-feedLines:]
	}
}

// --- timer commands ---

func (m Model) countdownCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(game.CountdownInterval, func(time.Time) tea.Msg {
		return countdownTickMsg{epoch: epoch}
	})
}

func (m Model) spawnCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(game.SpawnInterval, func(time.Time) tea.Msg {
		return spawnTickMsg{epoch: epoch}
	})
}

func (m Model) fallCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(game.FallInterval, func(time.Time) tea.Msg {
		return fallTickMsg{epoch: epoch}
	})
}

func (m Model) clearCmd() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(game.ClearGrace, func(time.Time) tea.Msg {
		return clearMsg{epoch: epoch}
	})
}

func (m Model) popExpireCmd(id int) tea.Cmd {
	epoch := m.epoch
	return tea.Tick(game.PopDelay, func(time.Time) tea.Msg {
		return popExpireMsg{epoch: epoch, id: id}
	})
}

// healthCmd fetches the relay's health snapshot once; a failure (offline
// play, relay still starting) is silent.
func (m Model) healthCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := m.httpc.Health()
		if err != nil {
			return nil
		}
		return healthMsg{info: info}
	}
}

func overlayFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(results.FPS()), func(time.Time) tea.Msg {
		return overlayFrameMsg{}
	})
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	st := m.status
	st.Remaining = m.sess.Remaining()
	st.Score = m.sess.Score()
	st.Perfects = m.sess.Perfects()
	st.Connected = m.connected
	st.Players = len(m.players)
	st.Wallet = m.wallet

	var body string
	if m.results.Visible {
		body = m.results.Align(m.width)
	} else {
		pops := make([]arena.Pop, 0, len(m.pops))
		for _, p := range m.pops {
			pops = append(pops, p)
		}
		body = m.arena.View(m.sess.Items(), pops)
	}

	var feed string
	for _, line := range m.feed {
		feed += theme.StyleDimmed.Render("· "+line) + "\n"
	}
	help := theme.StyleDimmed.Render("  click/space:pop  r:restart  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left, st.View(), body, feed+help)
}
