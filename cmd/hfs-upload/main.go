package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/ytget/hfs-uploader/internal/cli"
	"github.com/ytget/hfs-uploader/internal/config"
	"github.com/ytget/hfs-uploader/internal/model"
	"github.com/ytget/hfs-uploader/internal/platform"
	"github.com/ytget/hfs-uploader/internal/transport"
	"github.com/ytget/hfs-uploader/internal/upload"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// options holds parsed command line state
type options struct {
	configPath string
	saveConfig bool
	deletePath string
	plain      bool
	showVer    bool
	file       *config.File
	paths      []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts.showVer {
		fmt.Fprintf(stdout, "hfs-upload v%s\n", version)
		return exitOK
	}

	cfg := opts.file
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if opts.saveConfig {
		if err := cfg.Save(opts.configPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailed
		}
		logger.Info("config saved", "path", opts.configPath)
	}

	target, err := cfg.UploadURL()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.ShowQR {
		fmt.Fprintf(stdout, "Scan to open %s\n", target)
		cli.PrintQR(stdout, target)
	}

	if opts.deletePath != "" {
		deleteRemote(ctx, target, opts.deletePath, stdout, logger)
	}

	if len(opts.paths) == 0 {
		if opts.deletePath != "" || opts.saveConfig || cfg.ShowQR {
			return exitOK
		}
		fmt.Fprintln(stderr, "Error: no files given")
		return exitUsage
	}

	return uploadFiles(ctx, target, cfg, opts, stdout, logger)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("hfs-upload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: hfs-upload [flags] file-or-dir...")
		fs.PrintDefaults()
	}

	opts := &options{}
	var (
		target, dir, logLevel       string
		advance, strict, hidden, qr bool
	)
	fs.StringVar(&opts.configPath, "config", config.DefaultFilePath(), "Path to the TOML config file")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "Write the effective settings back to the config file")
	fs.StringVar(&target, "target", "", "Server URL to upload to")
	fs.StringVar(&dir, "dir", "", "Remote directory below the target")
	fs.BoolVar(&advance, "advance", false, "Continue with the next file after a failure")
	fs.BoolVar(&strict, "strict", false, "Treat responses with status >= 400 as failures")
	fs.BoolVar(&hidden, "hidden", false, "Include hidden files when a directory is given")
	fs.BoolVar(&qr, "qr", false, "Print the target URL as a QR code")
	fs.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.deletePath, "delete", "", "Delete a remote file, relative to the target")
	fs.BoolVar(&opts.plain, "plain", false, "Disable colors and progress redraws")
	fs.BoolVar(&opts.showVer, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, err
	}

	// explicit flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target":
			cfg.Target = target
		case "dir":
			cfg.Dir = dir
		case "advance":
			cfg.AdvanceOnFailure = advance
		case "strict":
			cfg.StrictStatus = strict
		case "hidden":
			cfg.IncludeHidden = hidden
		case "qr":
			cfg.ShowQR = qr
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts.file = cfg
	opts.paths = fs.Args()
	return opts, nil
}

func deleteRemote(ctx context.Context, target, path string, stdout io.Writer, logger *slog.Logger) {
	deleter, err := transport.NewDeleter(target, func(p string) {
		fmt.Fprintf(stdout, "Deleted %s\n", p)
	}, transport.WithLogger(logger))
	if err != nil {
		logger.Error("delete setup failed", "err", err)
		return
	}
	deleter.Delete(ctx, path)
	deleter.Wait()
}

func uploadFiles(ctx context.Context, target string, cfg *config.File, opts *options, stdout io.Writer, logger *slog.Logger) int {
	files, err := platform.CollectFiles(opts.paths, cfg.IncludeHidden)
	if err != nil {
		logger.Error("collect files", "err", err)
		return exitFailed
	}

	tr, err := transport.NewHTTPTransport(target,
		transport.WithStrictStatus(cfg.StrictStatus),
		transport.WithLogger(logger),
	)
	if err != nil {
		logger.Error("create transport", "err", err)
		return exitUsage
	}

	interactive := !opts.plain && isTerminal(stdout)
	termOpts := []cli.Option{cli.WithInteractive(interactive)}
	if !interactive {
		termOpts = append(termOpts, cli.WithStyles(cli.PlainStyles()))
	}
	term := cli.NewTerminal(stdout, termOpts...)

	observer := upload.MultiObserver{term, cli.NewProgressLogger(logger, cli.DefaultLogStep)}
	queue := upload.NewQueue(tr, observer,
		upload.WithLogger(logger),
		upload.WithAdvanceOnFailure(cfg.AdvanceOnFailure),
	)
	queue.Select(files...)

	if err := queue.Upload(ctx); err != nil {
		if errors.Is(err, upload.ErrNothingToUpload) {
			logger.Warn("nothing to upload")
			return exitOK
		}
		logger.Error("upload", "err", err)
		return exitFailed
	}
	queue.Wait()

	if queue.State() == upload.StateHalted {
		if failed, ok := lastFailed(queue.Tasks()); ok {
			term.Halted(failed)
		}
		return exitFailed
	}
	if term.Summary().Failed > 0 {
		return exitFailed
	}
	return exitOK
}

func lastFailed(tasks []model.UploadTask) (model.UploadTask, bool) {
	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Status == model.TaskStatusFailed {
			return tasks[i], true
		}
	}
	return model.UploadTask{}, false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
