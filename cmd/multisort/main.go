package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/metal-stack/multisort/pkg/commands"
	"github.com/metal-stack/multisort/pkg/commands/types"
	"github.com/metal-stack/multisort/zapup"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log := zapup.MustRootLogger()
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &types.Config{
		Fs:  afero.NewOsFs(),
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}

	err := commands.NewRootCmd(c).ExecuteContext(zapup.PutLogger(ctx, log))
	if err != nil {
		log.Debug("command failed", zap.Error(err))
	}

	return err
}
