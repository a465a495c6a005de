package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-classic/internal/config"
	"github.com/rocketscienceinc/tictactoe-classic/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-classic/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-classic/transport/terminal"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	strategy := tictactoe.NewStrategy(nil)
	gameManager := usecase.NewGameManager(logger, conf.Game, strategy)

	log.Info("Starting terminal", "mode", conf.Game.Mode, "think_time", conf.Game.ComputerThinkTime)

	ui := terminal.New(logger, gameManager, conf.Game)
	if err := ui.Start(ctx); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	log.Info("Application stopped")

	return nil
}
