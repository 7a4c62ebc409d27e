// Package server wires configuration, storage, services and both transports
// together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/cryptox"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
	"github.com/dmitrijs2005/coursehub/internal/server/httpapi"
	"github.com/dmitrijs2005/coursehub/internal/server/notify"
	"github.com/dmitrijs2005/coursehub/internal/server/objectstore"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coursehub/internal/server/services"

	gs "github.com/dmitrijs2005/coursehub/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	identity *services.IdentityService
	admin    *services.AdminService
	avatars  *services.AvatarService
	gate     *authz.Gate
	metrics  *httpapi.Metrics
}

// OpenStore connects to the configured database and applies migrations.
// With config.MemoryDSN it returns a nil *sql.DB and the in-memory manager.
func OpenStore(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	if dsn == config.MemoryDSN {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	return db, m, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.Development)

	db, repos, err := OpenStore(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if db == nil {
		logger.Warn(ctx, "using in-memory account store, data will not survive a restart")
	}

	sender, err := notify.NewSender(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("mail sender init error: %w", err)
	}
	mailer := notify.NewMailer(sender, c.PublicBaseURL)

	hasher := cryptox.NewPasswordHasher(cryptox.DefaultArgon2Params(), int64(runtime.NumCPU()))
	creds := services.NewCredentialStore(hasher, c.MinPasswordLength, logger)
	issuer := auth.NewIssuer([]byte(c.AccessTokenSecret), []byte(c.RefreshTokenSecret), c.AccessTokenTTL, c.RefreshTokenTTL)

	identity := services.NewIdentityService(db, repos, creds, issuer, mailer, services.IdentityOptions{
		VerificationTokenTTL: c.VerificationTokenTTL,
		ResetTokenTTL:        c.ResetTokenTTL,
	}, logger)

	bucket, err := objectstore.NewS3Store(ctx, objectstore.Options{
		Bucket:   c.AvatarBucket,
		Region:   c.S3Region,
		Endpoint: c.S3Endpoint,
		User:     c.S3User,
		Password: c.S3Password,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}
	avatars := services.NewAvatarService(db, repos, bucket, services.AvatarOptions{
		UploadTTL:   c.AvatarUploadTTL,
		DownloadTTL: c.AvatarURLTTL,
		MaxBytes:    c.AvatarMaxBytes,
	}, logger)
	admin := services.NewAdminService(db, repos, creds, logger).WithAvatarStore(bucket)
	gate := authz.NewGate(issuer, repos.Accounts(db), logger)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		identity: identity,
		admin:    admin,
		avatars:  avatars,
		gate:     gate,
		metrics:  httpapi.NewMetrics(),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.identity, app.admin, app.avatars, app.gate, gs.Options{
		AccessTokenTTL: app.config.AccessTokenTTL,
		Development:    app.config.Development,
	})

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(httpapi.Config{
		AccessTokenTTL:  app.config.AccessTokenTTL,
		RefreshTokenTTL: app.config.RefreshTokenTTL,
		CookieSecure:    app.config.CookieSecure,
		Development:     app.config.Development,
	}, app.identity, app.admin, app.avatars, app.gate, app.metrics, app.logger)

	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives, or
// either server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
