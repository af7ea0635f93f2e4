// Package tui provides the Bubble Tea host for Screamy Ball.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/screamy-ball/internal/voice"
)

// TickMsg is sent to trigger a game simulation tick. Ticks from an earlier
// run carry a stale generation and are dropped.
type TickMsg struct {
	Time time.Time
	gen  int
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}

// VoiceMsg carries a recognized voice command into the update loop.
type VoiceMsg struct {
	Command voice.Command
}

// waitForVoice blocks on the voice channel and delivers the next command.
// The model re-arms it after every VoiceMsg. A nil or closed channel ends
// the subscription.
func waitForVoice(ch <-chan voice.Command) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return VoiceMsg{Command: c}
	}
}
