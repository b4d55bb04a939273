package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	v1 "github.com/callsoso/callsoso/api/v1"
	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/lib/feeds"
	"github.com/callsoso/callsoso/lib/mail"
	"github.com/callsoso/callsoso/routes"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/spf13/cobra"
)

const appName = "callsoso"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Call Soso marketplace and content API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := bootstrap()
				return err
			},
		},
		copyDataCmd(),
		createAdminCmd(),
		importFeedCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, v1.Version)
			},
		},
	)
	return cmd
}

// bootstrap loads the configuration, sets up logging and connects to the
// database
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	if err := database.Initialize(cfg); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func serve() error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	utils.RegisterValidation()

	mailer, err := mail.New(cfg.Email)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := events.Connect(cfg.NATSURL, appName+".")
		if err != nil {
			return err
		}
		publisher = nc
	}
	defer publisher.Close()

	authService := services.NewAuthService(cfg.SecretKey)
	listingService := services.NewListingService(publisher)
	deps := v1.Dependencies{
		Config:   cfg,
		Auth:     authService,
		Listings: listingService,
		Matches:  services.NewMatchService(mailer, publisher, cfg.Email.From),
		Content:  services.NewContentService(),
		Site:     services.NewSiteService(mailer, publisher, cfg.Email.From, cfg.Email.Contact),
		Feeds:    services.NewFeedService(feeds.NewFetcher(services.DefaultFeedTimeout)),
	}
	router := routes.SetupRouter(deps, slog.Default())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("debug", cfg.Debug))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func copyDataCmd() *cobra.Command {
	source := config.DatabaseConfig{}

	cmd := &cobra.Command{
		Use:   "copy-data",
		Short: "Copy every row from a source database into the configured one",
		Long: `Copies all rows, keeping primary keys, from the source database into
the configured database. The target schema is migrated first and must be
empty. Typically used to move the development SQLite file onto PostgreSQL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}

			sourceDB, err := database.NewDBConnection("source", source)
			if err != nil {
				return err
			}
			targetDB, err := database.NewDBConnection("target", cfg.Database)
			if err != nil {
				return err
			}
			if err := targetDB.Migrate(); err != nil {
				return err
			}
			if err := database.CopyData(sourceDB, targetDB); err != nil {
				return fmt.Errorf("copy data: %w", err)
			}
			slog.Info("Data copy completed")
			return nil
		},
	}

	cmd.Flags().StringVar(&source.Engine, "source-engine", config.GetEnv("SOURCE_DB_ENGINE", config.EngineSQLite), "Source database engine (sqlite, postgres)")
	cmd.Flags().StringVar(&source.URL, "source-url", config.GetEnv("SOURCE_DATABASE_URL", ""), "Source PostgreSQL DSN")
	cmd.Flags().StringVar(&source.Name, "source-name", config.GetEnv("SOURCE_DB_NAME", "db.sqlite3"), "Source SQLite file")
	return cmd
}

func createAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			generated := password == ""
			if generated {
				if password, err = utils.GenerateSecurePassword(16); err != nil {
					return err
				}
			}

			user, err := services.NewAuthService(cfg.SecretKey).CreateAdmin(username, email, password)
			if err != nil {
				return err
			}
			slog.Info("Admin created", slog.String("username", user.Username), slog.Uint64("id", uint64(user.ID)))
			if generated {
				fmt.Printf("Generated password for %s: %s\n", user.Username, password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", config.GetEnv("ADMIN_PASSWORD", ""), "Password (generated when empty)")
	return cmd
}

func importFeedCmd() *cobra.Command {
	var (
		limit   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import-feed URL",
		Short: "Import popular articles from an RSS or Atom feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrap(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := services.NewFeedService(feeds.NewFetcher(timeout)).Import(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("import feed: %w", err)
			}
			slog.Info("Feed imported",
				slog.Int("fetched", result.Fetched),
				slog.Int("created", result.Created),
				slog.Int("existing", result.Existing))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of items to import")
	cmd.Flags().DurationVar(&timeout, "timeout", services.DefaultFeedTimeout, "Fetch timeout")
	return cmd
}
