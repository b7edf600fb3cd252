package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"playkit/internal/config"
	"playkit/internal/engine/beepengine"
	"playkit/internal/events"
	"playkit/internal/logging"
	"playkit/internal/playback"
	"playkit/internal/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "playkit",
		Short:         "Normalized playback layer over pluggable media engines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level (debug, info, warn, error)")

	root.AddCommand(newPlayCmd(&logLevel))
	root.AddCommand(newProbeCmd())
	return root
}

func newPlayCmd(logLevel *string) *cobra.Command {
	var mime string

	cmd := &cobra.Command{
		Use:   "play <uri>",
		Short: "Play a media source and print its normalized event stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			level := cfg.Log.Level
			if *logLevel != "" {
				level = *logLevel
			}
			log, err := logging.New(logging.Options{Level: level, Format: cfg.Log.Format})
			if err != nil {
				return err
			}

			return runPlay(args[0], mime, cfg, log)
		},
	}
	cmd.Flags().StringVar(&mime, "mime", "", "MIME type hint for content-type inference")
	return cmd
}

func runPlay(uri, mime string, cfg *config.Config, log *slog.Logger) error {
	p := playback.New(uri, mime, beepengine.Factory, playback.Options{
		ProgressInterval: cfg.ProgressInterval(),
		Logger:           log,
	})
	defer p.Close()

	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	p.On(events.Ready, func(events.Event) {
		fmt.Println("ready")
	})
	p.On(events.Playing, func(events.Event) {
		fmt.Println("playing")
	})
	p.On(events.Stalled, func(events.Event) {
		fmt.Println("stalled")
	})
	p.On(events.DidPause, func(events.Event) {
		fmt.Println("paused")
	})
	p.On(events.PositionUpdate, func(e events.Event) {
		pr := e.Payload.(events.Progress)
		fmt.Printf("\rposition %6.2f%%  %s", pr.Percentage, pr.Position.Truncate(time.Second))
	})
	p.On(events.DidComplete, func(events.Event) {
		fmt.Println("\ncompleted")
		finish(nil)
	})
	p.On(events.Error, func(e events.Event) {
		msg := e.Payload.(events.ErrorInfo).Message
		if msg == "" {
			msg = "engine reported an error"
		}
		finish(fmt.Errorf("playback: %s", msg))
	})

	if !p.Play() {
		return fmt.Errorf("unable to start playback of %q", uri)
	}
	return <-done
}

func newProbeCmd() *cobra.Command {
	var mime string

	cmd := &cobra.Command{
		Use:   "probe <uri>",
		Short: "Print the inferred content type for a media locator",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			media, err := source.Resolve(args[0], mime)
			if err != nil {
				if errors.Is(err, source.ErrUnsupportedSourceType) {
					return fmt.Errorf("cannot determine content type for %q", args[0])
				}
				return err
			}
			fmt.Println(media.Type.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&mime, "mime", "", "MIME type hint for content-type inference")
	return cmd
}
