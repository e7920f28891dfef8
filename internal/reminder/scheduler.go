// Package reminder owns the single daily reminder job and the sound it plays.
package reminder

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pathakanu/dailychime/internal/audio"
)

// State describes the scheduler lifecycle.
type State int

const (
	// Idle means no job is scheduled.
	Idle State = iota
	// Armed means a job is scheduled and nothing is playing.
	Armed
	// Sounding means a job is scheduled and the reminder sound is playing.
	Sounding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Sounding:
		return "sounding"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scheduler runs at most one repeating job and at most one playback.
type Scheduler struct {
	cron   *cron.Cron
	player audio.Player
	logger *log.Logger

	mu    sync.Mutex
	entry cron.EntryID
	expr  string
	sound audio.Handle
}

// New creates a Scheduler that evaluates expressions in loc.
func New(player audio.Player, loc *time.Location, logger *log.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cronLogger := cron.PrintfLogger(logger)
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
	)
	return &Scheduler{
		cron:   c,
		player: player,
		logger: logger,
	}
}

// Arm schedules expr, replacing any existing job. On error the previous job
// is left in place.
func (s *Scheduler) Arm(expr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(expr, s.ring)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", expr, err)
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
	}
	s.entry = id
	s.expr = expr
	s.cron.Start()

	s.logger.Printf("reminder: armed %q", expr)
	return nil
}

// Silence stops the playing reminder sound. It reports whether anything was
// playing; with nothing playing it is a no-op. The job stays scheduled.
func (s *Scheduler) Silence() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sound == nil {
		return false, nil
	}
	h := s.sound
	s.sound = nil
	if err := h.Stop(); err != nil {
		return true, err
	}
	return true, nil
}

// Close stops the job runner and any playing sound.
func (s *Scheduler) Close() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if _, err := s.Silence(); err != nil {
		s.logger.Printf("reminder: %v", err)
	}
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.entry == 0:
		return Idle
	case s.sound != nil:
		return Sounding
	default:
		return Armed
	}
}

// Expression returns the scheduled expression, or "" when idle.
func (s *Scheduler) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expr
}

// NextRun returns the next occurrence, or the zero time when idle or when
// the runner has not computed it yet.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entry
	s.mu.Unlock()

	if id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// ring is the occurrence callback.
func (s *Scheduler) ring() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sound != nil {
		if err := s.sound.Stop(); err != nil {
			s.logger.Printf("reminder: stale sound: %v", err)
		}
		s.sound = nil
	}

	h, err := s.player.Play()
	if err != nil {
		s.logger.Printf("reminder: %v", err)
		return
	}
	s.sound = h
	s.logger.Printf("reminder: time's up, press Alt+F to silence")
	go s.release(h)
}

// release clears h once playback ends on its own.
func (s *Scheduler) release(h audio.Handle) {
	<-h.Done()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sound == h {
		s.sound = nil
	}
}
