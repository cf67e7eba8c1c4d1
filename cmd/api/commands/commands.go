package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/learningjournal/core/internal/adapters/repository"
	"github.com/learningjournal/core/internal/application/services"
	"github.com/learningjournal/core/internal/infrastructure/config"
	"github.com/learningjournal/core/internal/infrastructure/datastore"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/infrastructure/metrics"
	"github.com/learningjournal/core/internal/infrastructure/server"
)

// Set at build time with -ldflags "-X .../commands.Version=..."
var (
	Version   = "dev"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Seed missing collections, then serve the API and the client application until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write seed data for collections that do not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Learning Journal %s\n", Version)
			cmd.Printf("Git Commit: %s\n", GitCommit)
		},
	}
}

type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	store   *datastore.Store
	repos   *repository.Set
	metrics *metrics.Metrics
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := datastore.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	opts := []repository.CollectionOption{
		repository.WithLogger(appLogger),
		repository.WithFileMode(store.FileMode()),
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		opts = append(opts, repository.WithObserver(m))
	}

	repos := repository.NewSet(store.Fs, store.ReflectionsPath(), store.ProjectsPath(), opts...)

	return &app{
		cfg:     cfg,
		logger:  appLogger,
		store:   store,
		repos:   repos,
		metrics: m,
	}, nil
}

func (rt *app) seed(ctx context.Context) (services.SeedResult, error) {
	seeder := services.NewSeedService(rt.repos.Reflections, rt.repos.Projects, rt.cfg.Seed.AuthorName, rt.logger)
	return seeder.EnsureSeeded(ctx)
}

func runServer(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	if rt.cfg.Seed.Enabled {
		if _, err := rt.seed(ctx); err != nil {
			rt.logger.WithError(err).Errorw("Failed to seed collections")
			return err
		}
	}

	srv, err := server.New(rt.cfg, rt.store, rt.repos, rt.metrics, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Infow("Starting Learning Journal API server",
			"address", rt.cfg.Server.Address(),
			"environment", rt.cfg.App.Environment,
			"data_dir", rt.store.Dir(),
		)
		errCh <- srv.Start(rt.cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.WithError(err).Errorw("Server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Infow("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.logger.WithError(err).Errorw("Server forced to shutdown")
		return err
	}

	rt.logger.Infow("Server exited gracefully")
	return nil
}

func runSeed(ctx context.Context, cmd *cobra.Command) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	result, err := rt.seed(ctx)
	if err != nil {
		return err
	}

	report := func(name, path string, seeded bool) {
		if seeded {
			cmd.Printf("%s: seeded %s\n", name, path)
		} else {
			cmd.Printf("%s: %s already exists, left unchanged\n", name, path)
		}
	}
	report("reflections", rt.store.ReflectionsPath(), result.Reflections)
	report("projects", rt.store.ProjectsPath(), result.Projects)
	return nil
}
