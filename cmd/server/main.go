package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alexandria-server/internal/config"
	"alexandria-server/internal/handler"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	displayAppname("alexandria")

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Close()

	logger := container.GetLogger()
	cfg := container.GetConfig()

	intakeHandler := handler.NewIntakeHandler(container.IntakeService, logger, cfg.GetMaxFileSize())
	authHandler := handler.NewAuthHandler(container.AuthService, logger)
	graphHandler := handler.NewGraphHandler(container.GraphService, logger)
	authMiddleware := handler.NewAuthMiddleware(container.AuthService, logger)

	// Router
	router := handler.NewRouter(
		intakeHandler,
		authHandler,
		graphHandler,
		authMiddleware.Middleware,
		cfg.GetCORSAllowedOrigins(),
		logger,
	)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server exited")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
