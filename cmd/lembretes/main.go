package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/joaobosco/lembretes/internal/config"
	"github.com/joaobosco/lembretes/internal/dataclient"
	"github.com/joaobosco/lembretes/internal/db"
	"github.com/joaobosco/lembretes/internal/handler"
	"github.com/joaobosco/lembretes/internal/repo"
	"github.com/joaobosco/lembretes/internal/service"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	var (
		configPath string
		port       int
		email      string
		plainPass  string
	)

	rootCmd := &cobra.Command{
		Use:   "lembretes",
		Short: "lembretes REST API",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			return runServer(cfg)
		},
	}
	runCmd.Flags().IntVar(&port, "port", 0, "listen port, overrides config and PORT")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs the postgres driver, got %s", cfg.Database.Driver)
			}
			ctx := context.Background()
			conn, err := db.Open(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer conn.Close()
			if err := db.ApplyMigrations(ctx, conn); err != nil {
				return err
			}
			logutil.GetLogger(ctx).Info("migrations applied")
			return nil
		},
	}

	passwdCmd := &cobra.Command{
		Use:   "passwd",
		Short: "set the login password of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			client, err := dataclient.New(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("init data client: %w", err)
			}
			defer client.Close()
			tokens, err := service.NewTokenService(cfg.JWT)
			if err != nil {
				return err
			}
			auth := service.NewAuthService(repo.NewUserRepo(client), tokens)
			if err := auth.SetPassword(ctx, email, plainPass); err != nil {
				return err
			}
			logutil.GetLogger(ctx).Info("password updated", zap.String("email", email))
			return nil
		},
	}
	passwdCmd.Flags().StringVar(&email, "email", "", "user email")
	passwdCmd.Flags().StringVar(&plainPass, "password", "", "new password")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (optional, env overrides)")
	rootCmd.AddCommand(runCmd, migrateCmd, passwdCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded",
		zap.String("config", path),
		zap.String("driver", cfg.Database.Driver),
	)
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := dataclient.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init data client: %w", err)
	}
	defer client.Close()

	tokens, err := service.NewTokenService(cfg.JWT)
	if err != nil {
		return err
	}
	userRepo := repo.NewUserRepo(client)
	reminderRepo := repo.NewReminderRepo(client)

	userService := service.NewUserService(userRepo)
	reminderService := service.NewReminderService(reminderRepo, userRepo)
	authService := service.NewAuthService(userRepo, tokens)

	gin.SetMode(gin.ReleaseMode)
	engine, err := handler.NewRouter(handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Reminders: handler.NewReminderHandler(reminderService),
		System:    handler.NewSystemHandler(version),
		Tokens:    tokens,
		Docs:      cfg.Docs,
		CORS:      cfg.CORS.AllowOrigins,
		BodyLimit: cfg.BodyLimit,
	})
	if err != nil {
		return fmt.Errorf("init router: %w", err)
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logutil.GetLogger(ctx).Info("http server listening",
			zap.String("addr", addr),
			zap.String("docs", cfg.Docs.ServerURL+"/docs"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
