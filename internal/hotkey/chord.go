// Package hotkey listens for the system-wide key chord that silences the
// reminder.
package hotkey

import "strings"

// KeyEvent is a single key transition with the modifiers held at the time.
type KeyEvent struct {
	Key       string
	Down      bool
	Modifiers map[string]bool
}

// Chord matches a key pressed while any one of a set of modifiers is held.
type Chord struct {
	Key       string
	Modifiers []string
}

// StopChord is Alt+F, with either Alt key.
var StopChord = Chord{Key: "F", Modifiers: []string{"alt", "altleft", "altright"}}

// Matches reports whether ev is a key-down of the chord.
func (c Chord) Matches(ev KeyEvent) bool {
	if !ev.Down || !strings.EqualFold(ev.Key, c.Key) {
		return false
	}
	for _, mod := range c.Modifiers {
		if ev.Modifiers[mod] {
			return true
		}
	}
	return false
}

func (c Chord) String() string {
	key := strings.ToUpper(c.Key)
	if len(c.Modifiers) == 0 {
		return key
	}
	mod := c.Modifiers[0]
	return strings.ToUpper(mod[:1]) + mod[1:] + "+" + key
}
