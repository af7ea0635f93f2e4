// Package voice turns spoken phrases into game actions. Speech recognition
// happens outside the game: a recognizer (or anything else that can open a
// WebSocket) streams transcribed text to the Server, which parses it into
// Commands.
package voice

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/screamy-ball/internal/core"
)

// Command is a recognized voice command.
type Command int

const (
	CommandNone Command = iota
	CommandJump
	CommandDuck
	CommandStand
	CommandPause
	CommandRestart
)

// String returns the canonical keyword for the command.
func (c Command) String() string {
	switch c {
	case CommandJump:
		return "jump"
	case CommandDuck:
		return "duck"
	case CommandStand:
		return "stand"
	case CommandPause:
		return "pause"
	case CommandRestart:
		return "restart"
	default:
		return "none"
	}
}

// Action maps the command onto the platform action it triggers.
func (c Command) Action() core.Action {
	switch c {
	case CommandJump:
		return core.ActionJump
	case CommandDuck:
		return core.ActionDuck
	case CommandStand:
		return core.ActionStand
	case CommandPause:
		return core.ActionPause
	case CommandRestart:
		return core.ActionRestart
	default:
		return core.ActionNone
	}
}

var keywords = map[string]Command{
	"jump":    CommandJump,
	"up":      CommandJump,
	"hop":     CommandJump,
	"scream":  CommandJump,
	"duck":    CommandDuck,
	"down":    CommandDuck,
	"crouch":  CommandDuck,
	"low":     CommandDuck,
	"stand":   CommandStand,
	"roll":    CommandStand,
	"pause":   CommandPause,
	"stop":    CommandPause,
	"wait":    CommandPause,
	"restart": CommandRestart,
	"again":   CommandRestart,
	"retry":   CommandRestart,
}

// Parse finds the first command keyword in a phrase. Matching is
// case-insensitive and ignores punctuation.
func Parse(text string) (Command, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for i, w := range words {
		if w == "up" && i+1 < len(words) && words[i+1] == "straight" {
			return CommandStand, true
		}
		if c, ok := keywords[w]; ok {
			return c, true
		}
		if isScream(w) {
			return CommandJump, true
		}
	}
	return CommandNone, false
}

// isScream matches wordless yells like "ah", "aaah" or "aaaahhh".
func isScream(w string) bool {
	if len(w) < 2 || w[0] != 'a' {
		return false
	}
	i := 0
	for i < len(w) && w[i] == 'a' {
		i++
	}
	if i == len(w) {
		return len(w) >= 3
	}
	for ; i < len(w); i++ {
		if w[i] != 'h' {
			return false
		}
	}
	return true
}
