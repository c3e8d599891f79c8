package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/thyrook/boardscan/internal/board"
	"github.com/thyrook/boardscan/internal/config"
	"github.com/thyrook/boardscan/internal/data"
	"github.com/thyrook/boardscan/internal/editor"
	"github.com/thyrook/boardscan/internal/export"
	"github.com/thyrook/boardscan/internal/iface"
	"github.com/thyrook/boardscan/internal/tui"
	"github.com/thyrook/boardscan/internal/vision"
)

type options struct {
	configPath string
	mode       string
	imagePath  string
	screen     bool
	videoPath  string
	frame      int
	fen        string
	pgnPath    string
	ply        int
	copy       bool
	verbose    bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "boardscan.yaml", "Path to configuration file (.json, .yaml or .yml)")
	flag.StringVar(&opts.mode, "mode", "edit", "Mode: edit, scan, fen, url")
	flag.StringVar(&opts.imagePath, "image", "", "Board image file or base64 data URL to analyze")
	flag.BoolVar(&opts.screen, "screen", false, "Analyze the configured screen region")
	flag.StringVar(&opts.videoPath, "video", "", "Recording to take the board image from")
	flag.IntVar(&opts.frame, "frame", -1, "Frame of -video to analyze; negative counts from the end")
	flag.StringVar(&opts.fen, "fen", "", "Position in FEN for fen and url modes")
	flag.StringVar(&opts.pgnPath, "pgn", "", "Take the position from the first game in a PGN file")
	flag.IntVar(&opts.ply, "ply", -1, "Half-move of the PGN game to use; negative means the final position")
	flag.BoolVar(&opts.copy, "copy", false, "Copy the resulting FEN to the clipboard")
	flag.BoolVar(&opts.verbose, "verbose", false, "Verbose output")
	flag.Parse()

	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config %s: %v\n", opts.configPath, err)
		os.Exit(1)
	}
	if opts.verbose {
		cfg.Interface.LogLevel = "debug"
	}
	if err := config.LoadEnv(cfg.Interface.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", cfg.Interface.EnvFile, err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// The full-screen editor owns the terminal; log to file only.
	logger, err := iface.NewLogger(cfg.Interface.LogPath, cfg.Interface.LogLevel, opts.verbose && opts.mode != "edit")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	cli := iface.NewCLI(false)

	if opts.pgnPath != "" {
		fen, err := data.NewPGNParser(opts.pgnPath).LoadPosition(opts.ply)
		if err != nil {
			cli.PrintError(err)
			os.Exit(1)
		}
		logger.Info("Position read from PGN", zap.String("path", opts.pgnPath), zap.String("fen", fen))
		opts.fen = fen
	}

	switch opts.mode {
	case "edit":
		err = runEdit(cfg, opts, logger.GetZapLogger())
	case "scan":
		err = runScan(cfg, opts, cli, logger.GetZapLogger())
	case "fen":
		err = runFEN(cfg, opts, cli)
	case "url":
		err = runURL(cfg, opts, cli)
	default:
		err = fmt.Errorf("unknown mode %q", opts.mode)
	}

	if err != nil {
		logger.Error("Command failed", zap.String("mode", opts.mode), zap.Error(err))
		cli.PrintError(err)
		os.Exit(1)
	}
}

func newController(cfg *config.Config, logger *zap.Logger) *editor.Controller {
	logger.Debug("Configuration loaded", zap.Stringer("vision", &cfg.Vision))

	var analyzer vision.Analyzer
	gemini := vision.NewGeminiAnalyzer(&cfg.Vision, cfg.Vision.APIKey(), logger)
	if gemini.Available() {
		logger.Info("Analyzer ready", zap.String("model", gemini.Model()))
		analyzer = gemini
	} else {
		logger.Warn("No API key configured; scanning disabled", zap.String("env", cfg.Vision.APIKeyEnv))
	}

	return editor.NewController(analyzer,
		editor.WithLogger(logger),
		editor.WithColorStrategy(editor.ParseColorStrategy(cfg.Vision.ColorInference)),
		editor.WithInitialFEN(cfg.Editor.InitialFEN),
	)
}

// imageSource picks an image file, then a recording, then the screen
func imageSource(cfg *config.Config, opts options, logger *zap.Logger) (tui.Source, error) {
	prep := vision.NewPreprocessor(&cfg.Vision)
	switch {
	case strings.HasPrefix(opts.imagePath, "data:"):
		url := opts.imagePath
		return func() (vision.Image, error) {
			return prep.PrepareDataURL(url)
		}, nil
	case opts.imagePath != "":
		path := opts.imagePath
		return func() (vision.Image, error) {
			return prep.LoadFile(path)
		}, nil
	case opts.videoPath != "":
		video, err := vision.NewVideoSource(opts.videoPath, opts.frame, prep)
		if err != nil {
			return nil, err
		}
		logger.Info("Video opened",
			zap.String("path", opts.videoPath),
			zap.Stringer("info", video.Info()),
			zap.Int("frame", video.FrameIndex()),
		)
		return video.Capture, nil
	}
	capturer := vision.NewCapturer(&cfg.Vision, prep)
	logger.Info("Screen source", zap.Stringer("region", capturer.Region()))
	return func() (vision.Image, error) {
		img, err := capturer.Capture()
		if err != nil {
			return vision.Image{}, err
		}
		logger.Debug("Screen captured", zap.Time("at", capturer.LastCapture()))
		return img, nil
	}, nil
}

func runEdit(cfg *config.Config, opts options, logger *zap.Logger) error {
	ctrl := newController(cfg, logger)
	if opts.fen != "" {
		ctrl.Dispatch(editor.Import{FEN: opts.fen})
	}
	if cfg.Editor.Flipped {
		ctrl.Dispatch(editor.Flip{})
	}

	src, err := imageSource(cfg, opts, logger)
	if err != nil {
		return err
	}

	appOpts := []tui.AppOption{
		tui.WithLogger(logger),
		tui.WithSource(src),
		tui.WithAnalysisBase(cfg.Export.AnalysisBaseURL),
	}
	if sq, err := board.ParseSquare(cfg.Editor.StartSquare); err == nil {
		appOpts = append(appOpts, tui.WithStartSquare(sq))
	}
	app := tui.NewApp(ctrl, appOpts...)

	logger.Info("Editor started", zap.Bool("scan_available", ctrl.Available()))
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func runScan(cfg *config.Config, opts options, cli *iface.CLI, logger *zap.Logger) error {
	if opts.imagePath == "" && opts.videoPath == "" && !opts.screen {
		return errors.New("scan mode needs -image, -video or -screen")
	}

	cli.PrintBanner()
	cli.PrintModeHeader("scan")

	ctrl := newController(cfg, logger)
	if !ctrl.Available() {
		return fmt.Errorf("%w: set %s", vision.ErrUnavailable, cfg.Vision.APIKeyEnv)
	}

	src, err := imageSource(cfg, opts, logger)
	if err != nil {
		return err
	}

	img, err := src()
	if err != nil {
		ctrl.Fail(err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.PrintStatus("Analyzing position...", "info")
	if err := ctrl.Scan(ctx, img); err != nil {
		cli.PrintStatus(ctrl.State().Err, "error")
		return err
	}

	s := ctrl.State()
	cli.PrintStatus("Position loaded", "success")
	cli.PrintBoard(s)
	cli.PrintURL(export.AnalysisURL(cfg.Export.AnalysisBaseURL, s.FEN()))
	cli.PrintScanStats(ctrl.Stats())

	if opts.copy {
		if err := export.NewClipboard().Copy(s.FEN()); err != nil {
			cli.PrintWarning(err.Error())
		} else {
			cli.PrintStatus("FEN copied to clipboard", "success")
		}
	}
	return nil
}

func runFEN(cfg *config.Config, opts options, cli *iface.CLI) error {
	if opts.fen == "" {
		return errors.New("fen mode needs -fen")
	}

	cli.PrintModeHeader("fen")
	strategy := editor.ParseColorStrategy(cfg.Vision.ColorInference)
	cli.PrintPosition(board.Decode(opts.fen), strategy.Resolve(opts.fen))
	return nil
}

func runURL(cfg *config.Config, opts options, cli *iface.CLI) error {
	fen := opts.fen
	if fen == "" {
		fen = board.InitialFEN
	}

	strategy := editor.ParseColorStrategy(cfg.Vision.ColorInference)
	normalized := board.Encode(board.Decode(fen), strategy.Resolve(fen))
	cli.PrintURL(export.AnalysisURL(cfg.Export.AnalysisBaseURL, normalized))
	return nil
}
