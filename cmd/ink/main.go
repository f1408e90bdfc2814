package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"example.com/ink/internal/app"
	"example.com/ink/internal/plain"
	"example.com/ink/pkg/config"
	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/logs"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, builds the editor and hands it to a frontend. Input that
// is not a terminal is processed in batch mode.
func run(ctx context.Context, args []string, stdin, stdout *os.File, stderr io.Writer) int {
	fs := flag.NewFlagSet("ink", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to a YAML or TOML config file")
	usePlain := fs.Bool("plain", false, "use the raw ANSI frontend instead of tcell")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ink [-config path] [-plain] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	var (
		cfg *config.Config
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		fmt.Fprintf(stderr, "ink: %v\n", err)
		return 2
	}
	opts, err := editor.OptionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "ink: %v\n", err)
		return 2
	}

	logger := logs.NewFromEnv()
	defer logger.Close()
	opts.Logger = logger

	ed := editor.New(opts)
	if fs.NArg() == 1 {
		// failures are already on the status line
		_ = ed.LoadFile(fs.Arg(0))
	}

	if !term.IsTerminal(int(stdin.Fd())) {
		l := &plain.Loop{Editor: ed, In: stdin, Logger: logger}
		if err := l.Run(ctx); err != nil {
			fmt.Fprintf(stderr, "ink: %v\n", err)
			return 1
		}
		return 0
	}

	if *usePlain {
		err = runPlain(ctx, ed, cfg, stdin, stdout, logger)
	} else {
		r := app.New(ed, logger)
		r.Watch = cfg.Watch
		r.AutosaveEvery = cfg.AutosaveEvery
		err = r.Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ink: %v\n", err)
		return 1
	}
	return 0
}

func runPlain(ctx context.Context, ed *editor.Editor, cfg *config.Config, stdin, stdout *os.File, logger *logs.Logger) error {
	restore, err := plain.RawMode(int(stdin.Fd()))
	if err != nil {
		return err
	}
	w, h := plain.Size(int(stdout.Fd()))
	p := &plain.Painter{W: stdout, Width: w, Height: h}
	defer func() {
		p.Clear()
		restore()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go ed.Autosave(ctx, cfg.AutosaveEvery, nil)

	l := &plain.Loop{Editor: ed, In: stdin, Painter: p, Logger: logger}
	return l.Run(ctx)
}
