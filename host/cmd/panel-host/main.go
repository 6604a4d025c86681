package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"panelfw/host/panel"
	"panelfw/host/serial"
)

type options struct {
	Device   string
	Baud     int
	LogLevel string
	Busy     time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "panel-host",
		Short:         "Host side tools for the four button panel",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.Device, "device", "d", "", "Serial device path (default: autodetect)")
	root.PersistentFlags().IntVar(&opts.Baud, "baud", 9600, "Baud rate (ignored for USB CDC)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	monitor := &cobra.Command{
		Use:   "monitor",
		Short: "Print button events and track channel selection and captures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd.Context(), opts)
		},
	}
	monitor.Flags().DurationVar(&opts.Busy, "busy", 0, "Keep the panel disabled this long after each capture")

	disable := &cobra.Command{
		Use:   "disable",
		Short: "Disable the panel buttons and start the alert blink",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetDisabled(opts, true)
		},
	}

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Enable the panel buttons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetDisabled(opts, false)
		},
	}

	ports := &cobra.Command{
		Use:   "ports",
		Short: "List serial ports, likely panel devices first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := serial.ListPorts()
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	root.AddCommand(monitor, disable, enable, ports)
	return root
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

func openClient(opts *options, logger zerolog.Logger) (*panel.Client, error) {
	device := opts.Device
	if device == "" {
		detected, err := serial.DetectDevice()
		if err != nil {
			return nil, err
		}
		device = detected
	}

	cfg := serial.DefaultConfig(device)
	cfg.Baud = opts.Baud

	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("device", device).Msg("Connected to panel")
	return panel.NewClient(port, logger), nil
}

func runSetDisabled(opts *options, disabled bool) error {
	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	client, err := openClient(opts, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.SetDisabled(disabled)
}

func runMonitor(ctx context.Context, opts *options) error {
	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.With().Str("module", "monitor").Logger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := openClient(opts, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	client.Start(ctx)

	var session panel.Session
	for ev := range client.Events() {
		tr := session.Handle(ev)
		logger.Info().
			Int("button", ev.Button).
			Int("state", ev.State).
			Str("transition", tr.Kind.String()).
			Int("channel", tr.Channel).
			Msg("Button event")

		if tr.Kind == panel.CaptureStopped && opts.Busy > 0 {
			if err := holdDisabled(ctx, client, opts.Busy, logger); err != nil {
				return err
			}
		}
	}

	logger.Info().Msg("Done")
	return nil
}

// holdDisabled disables the panel for d, then enables it again
func holdDisabled(ctx context.Context, client *panel.Client, d time.Duration, logger zerolog.Logger) error {
	if err := client.SetDisabled(true); err != nil {
		return err
	}
	logger.Info().Dur("busy", d).Msg("Panel disabled")

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}

	if err := client.SetDisabled(false); err != nil {
		return err
	}
	logger.Info().Msg("Panel enabled")
	return nil
}
