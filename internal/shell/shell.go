// Package shell is the interactive menu that manages the daily reminder.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/adhocore/gronx"

	"github.com/pathakanu/dailychime/internal/clocktime"
	"github.com/pathakanu/dailychime/internal/model"
	"github.com/pathakanu/dailychime/internal/settings"
)

// Scheduler is the part of the reminder scheduler the shell drives.
type Scheduler interface {
	Arm(expr string) error
	Silence() (bool, error)
	NextRun() time.Time
}

// Shell coordinates settings, the scheduler and the user.
type Shell struct {
	in     LineInput
	out    io.Writer
	store  *settings.Store
	sched  Scheduler
	logger *log.Logger

	outMu   sync.Mutex
	current model.ReminderConfig
}

// New creates a Shell.
func New(in LineInput, out io.Writer, store *settings.Store, sched Scheduler, logger *log.Logger) *Shell {
	return &Shell{
		in:     in,
		out:    out,
		store:  store,
		sched:  sched,
		logger: logger,
	}
}

// Current returns the active reminder configuration.
func (s *Shell) Current() model.ReminderConfig {
	return s.current
}

// Start loads the stored settings and arms the scheduler. Without stored
// settings it asks the user for a time first.
func (s *Shell) Start() error {
	cfg, err := s.store.Load()
	switch {
	case errors.Is(err, settings.ErrNotFound):
		return s.firstRun()
	case err != nil:
		s.logger.Printf("settings: %v; using default %s", err, model.DefaultReminderConfig().Time)
		cfg = model.DefaultReminderConfig()
	}

	if err := s.sched.Arm(cfg.CronExpression); err != nil {
		s.logger.Printf("settings: stored schedule rejected: %v; using default", err)
		cfg = model.DefaultReminderConfig()
		if err := s.sched.Arm(cfg.CronExpression); err != nil {
			return err
		}
	}
	s.current = cfg
	return nil
}

func (s *Shell) firstRun() error {
	s.println(titleStyle.Render("Welcome to dailychime"))
	cfg, err := s.askTime()
	if err != nil {
		return err
	}

	if err := s.store.Save(cfg); err != nil {
		s.logger.Printf("settings: %v", err)
		s.println(errorStyle.Render(fmt.Sprintf("Could not save settings: %v", err)))
		s.println("The reminder is set for this session only.")
	}
	if err := s.sched.Arm(cfg.CronExpression); err != nil {
		return err
	}
	s.current = cfg
	s.println(okStyle.Render(fmt.Sprintf("Reminder set for %s every day.", cfg.Time)))
	return nil
}

// Run shows the menu until the user exits or closes the input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		s.println("")
		s.println(titleStyle.Render("dailychime"))
		s.println("1. Settings")
		s.println("2. Exit")
		choice, err := s.in.ReadLine("Choose an option: ")
		if err != nil {
			if IsQuit(err) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.settingsMenu(); err != nil {
				if IsQuit(err) {
					return nil
				}
				return err
			}
		case "2":
			s.println("Goodbye.")
			return nil
		default:
			s.println("Please choose 1 or 2.")
		}
	}
}

func (s *Shell) settingsMenu() error {
	s.println("")
	s.println(titleStyle.Render("Settings"))
	s.println(labelStyle.Render("Reminder time:") + " " + s.current.Time)
	s.println(labelStyle.Render("Schedule:") + " " + s.current.CronExpression)
	if next := s.nextRun(); !next.IsZero() {
		s.println(labelStyle.Render("Next reminder:") + " " + next.Format("Mon Jan 2 15:04"))
	}

	answer, err := s.in.ReadLine("Change reminder time? (Y/N): ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		return nil
	}

	cfg, err := s.askTime()
	if err != nil {
		return err
	}
	if err := s.store.Save(cfg); err != nil {
		s.logger.Printf("settings: %v", err)
		s.println(errorStyle.Render(fmt.Sprintf("Could not save settings: %v", err)))
		s.println("Keeping the reminder at " + s.current.Time + ".")
		return nil
	}
	if err := s.sched.Arm(cfg.CronExpression); err != nil {
		s.logger.Printf("reminder: %v", err)
		s.println(errorStyle.Render(fmt.Sprintf("Could not schedule reminder: %v", err)))
		return nil
	}
	s.current = cfg
	s.println(okStyle.Render(fmt.Sprintf("Reminder set for %s every day.", cfg.Time)))
	return nil
}

// askTime prompts until the user enters a valid clock time.
func (s *Shell) askTime() (model.ReminderConfig, error) {
	for {
		line, err := s.in.ReadLine("What time should I remind you each day? (e.g. 8:00 PM): ")
		if err != nil {
			return model.ReminderConfig{}, err
		}
		human := strings.TrimSpace(line)
		expr, err := clocktime.ToCron(human)
		if err != nil {
			s.println(errorStyle.Render(fmt.Sprintf("%v. Try something like 8:00 PM or 20:00.", err)))
			continue
		}
		return model.ReminderConfig{Time: human, CronExpression: expr}, nil
	}
}

// Silence handles the stop chord.
func (s *Shell) Silence() {
	stopped, err := s.sched.Silence()
	switch {
	case err != nil:
		s.logger.Printf("reminder: %v", err)
	case stopped:
		s.println(okStyle.Render("Reminder silenced."))
	}
}

func (s *Shell) nextRun() time.Time {
	if next := s.sched.NextRun(); !next.IsZero() {
		return next
	}
	if s.current.CronExpression == "" {
		return time.Time{}
	}
	next, err := gronx.NextTick(s.current.CronExpression, false)
	if err != nil {
		return time.Time{}
	}
	return next
}

func (s *Shell) println(line string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, line)
}
