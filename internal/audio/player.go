// Package audio launches the external player that sounds the reminder.
package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// Player starts playback of the reminder sound.
type Player interface {
	Play() (Handle, error)
}

// Handle is one running playback.
type Handle interface {
	// Stop terminates playback. Stopping a finished playback is a no-op.
	Stop() error
	// Done is closed once playback has ended, naturally or not.
	Done() <-chan struct{}
}

// LaunchError reports that the player process could not be started.
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// StopError reports that a running player could not be terminated.
type StopError struct {
	Pid int
	Err error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("stop player pid %d: %v", e.Pid, e.Err)
}

func (e *StopError) Unwrap() error { return e.Err }

// CommandPlayer plays File with an ffplay-compatible binary, with no window
// and automatic exit at end of file.
type CommandPlayer struct {
	Binary string
	File   string
}

// NewCommandPlayer returns a player for the given binary and sound file.
func NewCommandPlayer(binary, file string) *CommandPlayer {
	return &CommandPlayer{Binary: binary, File: file}
}

// Args returns the player command line arguments.
func (p *CommandPlayer) Args() []string {
	return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", p.File}
}

// Play starts the player in the background with its output discarded.
func (p *CommandPlayer) Play() (Handle, error) {
	cmd := exec.Command(p.Binary, p.Args()...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Binary: p.Binary, Err: err}
	}

	h := &processHandle{cmd: cmd, done: make(chan struct{})}
	go h.wait()
	return h, nil
}

type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func (h *processHandle) wait() {
	_ = h.cmd.Wait()
	h.once.Do(func() { close(h.done) })
}

func (h *processHandle) Done() <-chan struct{} {
	return h.done
}

func (h *processHandle) Stop() error {
	select {
	case <-h.done:
		return nil
	default:
	}

	err := h.cmd.Process.Kill()
	if err == nil || errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return &StopError{Pid: h.cmd.Process.Pid, Err: err}
}
