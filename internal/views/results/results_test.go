package results

import (
	"strings"
	"testing"

	"github.com/emoji-rain/emojirain/internal/client"
)

func TestSpringSettles(t *testing.T) {
	m := New()
	m.Open(12, "Nice! You're quick!", 2)

	steps := 0
	for m.Step() {
		steps++
		if steps > 10*fps {
			t.Fatal("overlay spring never settled")
		}
	}
	if steps == 0 {
		t.Error("overlay settled without animating")
	}
}

func TestHiddenOverlayRendersNothing(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Error("hidden overlay produced output")
	}
}

func TestOutcomeReplacesPendingLine(t *testing.T) {
	m := New()
	m.Open(12, "Nice! You're quick!", 2)

	if !strings.Contains(m.rendered, "Submitting") {
		t.Error("pending line missing before outcome")
	}

	m.SetOutcome(client.ReportOutcome{Message: "Connect wallet to submit score."})
	if strings.Contains(m.rendered, "Submitting") {
		t.Error("pending line survived the outcome")
	}
	if !strings.Contains(m.rendered, "Connect wallet") {
		t.Error("outcome message missing from render")
	}
}
