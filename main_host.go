//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"clockface/app"
	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/config/configfile"
	"clockface/face/engine"
	"clockface/face/metrics"
	"clockface/hal"
	"clockface/internal/buildinfo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runOptions struct {
	config      string
	headless    bool
	hz          int
	ticks       uint64
	width       int
	height      int
	metricsAddr string
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func loadFace(path string) (*component.ClockConfig, error) {
	if path == "" {
		return configfile.Default()
	}
	return configfile.ReadFile(path)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool
	var opts runOptions

	root := &cobra.Command{
		Use:           "clockface",
		Short:         "Render a configurable clock face",
		Version:       buildinfo.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFace(cmd.Context(), newLogger(stderr, verbose), stderr, opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(buildinfo.Long())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the clock in a window or headless",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFace(cmd.Context(), newLogger(stderr, verbose), stderr, opts)
		},
	}
	for _, c := range []*cobra.Command{root, run} {
		f := c.Flags()
		f.StringVarP(&opts.config, "config", "c", "", "face file (.json, .yaml, .toml); embedded default when empty")
		f.BoolVar(&opts.headless, "headless", false, "run without a window")
		f.IntVar(&opts.hz, "hz", 100, "loop rate in headless mode")
		f.Uint64Var(&opts.ticks, "ticks", 0, "stop after N iterations in headless mode (0 = run forever)")
		f.IntVar(&opts.width, "width", 128, "panel width in pixels")
		f.IntVar(&opts.height, "height", 160, "panel height in pixels")
		f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	}

	root.AddCommand(run, newValidateCmd(stdout), newPreviewCmd(stdout, stderr, &verbose))
	return root
}

func runFace(ctx context.Context, logger *log.Logger, logOut io.Writer, opts runOptions) error {
	face, err := loadFace(opts.config)
	if err != nil {
		return err
	}
	logger.Info("face loaded", "components", len(face.Components), "orientation", face.Orientation, "version", buildinfo.Short())

	var em engine.Metrics
	if opts.metricsAddr != "" {
		m := metrics.New()
		em = m
		go func() {
			if err := app.ServeMetrics(ctx, opts.metricsAddr, app.MetricsRouter(m), logger); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	newApp := func(h hal.HAL) (func() error, error) {
		return app.New(h, app.Config{Face: face, Logger: logger, Metrics: em})
	}
	host := hal.HostConfig{Width: opts.width, Height: opts.height, Log: logOut}

	if opts.headless {
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      opts.hz,
			Ticks:   opts.ticks,
			Host:    host,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return hal.RunWindow(newApp, host)
}

func newValidateCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a face file and report the first problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			face, err := configfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			static := 0
			for _, c := range face.Components {
				if component.IsStatic(c) {
					static++
				}
			}
			fmt.Fprintf(stdout, "%s: ok (%d components, %d static)\n", args[0], len(face.Components), static)
			return nil
		},
	}
}

func newPreviewCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	var (
		config string
		at     string
		out    string
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a single frame to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			face, err := loadFace(config)
			if err != nil {
				return err
			}
			instant := time.Now()
			if at != "" {
				dt, err := clockmath.ParseDateTime(at)
				if err != nil {
					return err
				}
				instant = time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, 0, time.Local)
			}

			fb := hal.NewMemoryFramebuffer(width, height)
			if err := app.RenderFrame(face, fb, instant, newLogger(stderr, *verbose)); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := png.Encode(f, hal.ToRGBA(fb)); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", out, width, height)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&config, "config", "c", "", "face file; embedded default when empty")
	f.StringVar(&at, "at", "", "instant to render as YYYY-MM-DDTHH:MM:SS local time (default now)")
	f.StringVarP(&out, "out", "o", "face.png", "output PNG path")
	f.IntVar(&width, "width", 128, "panel width in pixels")
	f.IntVar(&height, "height", 160, "panel height in pixels")
	return cmd
}
