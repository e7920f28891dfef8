package hotkey

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.design/x/hotkey"
)

// Listener delivers system-wide key events for one chord.
type Listener struct {
	chord  Chord
	logger *log.Logger
}

// NewListener returns a listener for chord.
func NewListener(chord Chord, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Listener{chord: chord, logger: logger}
}

// Listen registers the chord with the OS and calls onChord for every match
// until ctx is cancelled. It returns an error only if registration fails.
func (l *Listener) Listen(ctx context.Context, onChord func()) error {
	key, ok := keyCodes[strings.ToUpper(l.chord.Key)]
	if !ok {
		return fmt.Errorf("register %s: unsupported key %q", l.chord, l.chord.Key)
	}
	hk := hotkey.New([]hotkey.Modifier{altModifier}, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", l.chord, err)
	}
	defer func() {
		if err := hk.Unregister(); err != nil {
			l.logger.Printf("hotkey: unregister %s: %v", l.chord, err)
		}
	}()

	l.logger.Printf("hotkey: listening for %s", l.chord)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-hk.Keydown():
			if !ok {
				return nil
			}
			if l.chord.Matches(l.keydownEvent()) {
				onChord()
			}
		}
	}
}

// keydownEvent describes what the OS reports for a registered chord press.
func (l *Listener) keydownEvent() KeyEvent {
	mods := make(map[string]bool, len(l.chord.Modifiers))
	for _, mod := range l.chord.Modifiers {
		mods[mod] = true
	}
	return KeyEvent{Key: l.chord.Key, Down: true, Modifiers: mods}
}

var keyCodes = map[string]hotkey.Key{
	"F": hotkey.KeyF,
	"S": hotkey.KeyS,
	"Q": hotkey.KeyQ,
}
