package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/dmitrijs2005/s3share/internal/logging"
	"github.com/dmitrijs2005/s3share/internal/share"
	"github.com/dmitrijs2005/s3share/internal/storage"
)

var ErrUsage = errors.New("invalid usage")

// openStore is a test seam for storage.New.
var openStore = storage.New

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
}

func NewApp(c *config.Config, l logging.Logger, out io.Writer) *App {
	return &App{config: c, logger: l.With("module", "cli"), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "key":
		return a.key(rest)
	case "download":
		return a.download(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		a.usage()
		return ErrUsage
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage:")
	fmt.Fprintln(a.out, "  key -email <email> [-secret <secret>] -file <name>")
	fmt.Fprintln(a.out, "  download -email <owner email> [-secret <secret-ext>] [-out <path>]")
}

func (a *App) service(ctx context.Context) (*share.Service, error) {
	store, err := openStore(ctx, a.config)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	return share.NewService(store, a.logger, nil, 0), nil
}
