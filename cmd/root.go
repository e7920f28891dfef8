// Package cmd provides the dailychime command line entrypoint.
package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pathakanu/dailychime/internal/audio"
	"github.com/pathakanu/dailychime/internal/config"
	"github.com/pathakanu/dailychime/internal/hotkey"
	"github.com/pathakanu/dailychime/internal/reminder"
	"github.com/pathakanu/dailychime/internal/settings"
	"github.com/pathakanu/dailychime/internal/shell"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "dailychime",
	Short: "Play a sound at the same time every day",
	Long: `dailychime asks for a daily reminder time, remembers it and plays an
alarm sound at that time every day. Press Alt+F anywhere to silence it.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("dailychime: %v", err)
		return err
	}
	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	logger := log.New(os.Stdout, "[dailychime] ", log.LstdFlags)
	cfg := config.Load()

	store := settings.New(afero.NewOsFs(), cfg.SettingsPath)
	player := audio.NewCommandPlayer(cfg.PlayerBinary, cfg.SoundFile)
	sched := reminder.New(player, cfg.LocalTimezone, logger)
	defer sched.Close()

	in := shell.NewLineInput()
	defer in.Close()
	sh := shell.New(in, cmd.OutOrStdout(), store, sched, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := hotkey.NewListener(hotkey.StopChord, logger)
	go func() {
		if err := listener.Listen(ctx, sh.Silence); err != nil {
			logger.Printf("hotkey: %v", err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		if err := sh.Start(); err != nil {
			done <- err
			return
		}
		done <- sh.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Println("shutting down...")
		return nil
	case err := <-done:
		if err != nil && !shell.IsQuit(err) {
			return err
		}
		return nil
	}
}
