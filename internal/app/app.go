package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/proxx/internal/config"
	"github.com/vancomm/proxx/internal/database"
	"github.com/vancomm/proxx/internal/handlers"
	"github.com/vancomm/proxx/internal/middleware"
	"github.com/vancomm/proxx/internal/repository"
	"github.com/vancomm/proxx/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log     *logrus.Logger
	config  config.Config
	router  *http.ServeMux
	store   *session.Store
	jwt     *config.JWT
	cookies *config.Cookies
	ws      *config.WebSocket
	db      *pgxpool.Pool
	records handlers.RecordStore
}

func New(log *logrus.Logger, c config.Config) (*App, error) {
	if c.SessionTTL.Duration <= 0 || c.SweepInterval.Duration <= 0 {
		return nil, fmt.Errorf(
			"session_ttl and sweep_interval must be positive, got %s and %s",
			c.SessionTTL, c.SweepInterval,
		)
	}
	jwt, err := config.NewJWT(c.JWT.Secret, c.JWT.TokenLifetime.Duration)
	if err != nil {
		return nil, err
	}

	app := &App{
		log:     log,
		config:  c,
		router:  http.NewServeMux(),
		store:   session.NewStore(createRand(), c.SessionTTL.Duration, log),
		jwt:     jwt,
		cookies: config.NewCookies(c, jwt),
		ws:      config.NewWebSocket(c),
	}
	return app, nil
}

// Handler is the full middleware-wrapped router.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.cookies),
		middleware.Logging(a.log),
		middleware.Cors(a.origins()...),
	)
}

func (a *App) origins() []string {
	if a.config.Development() {
		return nil
	}
	return []string{"https://" + a.config.Domain}
}

func (a *App) connectRecords(ctx context.Context) error {
	if !a.config.Postgres.Enabled() {
		a.log.Warn("no database configured, records are disabled")
		return nil
	}
	db, err := database.ConnectAndMigrate(ctx, a.config.Postgres.DatabaseURL())
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.records = repository.New(db)
	return nil
}

// Start serves until ctx is done or the listener fails.
func (a *App) Start(ctx context.Context) error {
	if err := a.connectRecords(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.loadRoutes()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.config.SweepInterval.Duration)
	})

	return g.Wait()
}
