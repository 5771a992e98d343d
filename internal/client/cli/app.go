package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/authsession/internal/client/config"
	"github.com/dmitrijs2005/authsession/internal/client/models"
	"github.com/dmitrijs2005/authsession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authsession/internal/client/session"
	"github.com/dmitrijs2005/authsession/internal/client/storage"
	"github.com/dmitrijs2005/authsession/internal/client/token"
	"github.com/dmitrijs2005/authsession/internal/logging"
	"github.com/dmitrijs2005/authsession/internal/metrics"
)

type App struct {
	config *config.Config
	store  *session.Store
	tokens *token.Issuer
	log    logging.Logger
	db     *sql.DB
	rdb    *redis.Client

	registry *prometheus.Registry

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires logging, metrics, the session storage and the session store.
// A RedisURL selects Redis; otherwise an empty DatabasePath keeps the
// session in memory for this run only.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var (
		repo metadata.Repository
		db   *sql.DB
		rdb  *redis.Client
	)
	switch {
	case c.RedisURL != "":
		rdb, err = openRedis(ctx, c.RedisURL)
		if err != nil {
			logger.Error(ctx, "error connecting to redis", "error", err)
			return nil, err
		}
		repo = metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix)
	case c.DatabasePath == "":
		logger.Warn(ctx, "no database path configured, session will not survive a restart")
		repo = metadata.NewMemoryRepository()
	default:
		db, err = storage.Open(ctx, c.DatabasePath)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			return nil, err
		}
		repo = metadata.NewSQLiteRepository(db)
	}

	registry := prometheus.NewRegistry()

	tokens := token.NewIssuer([]byte(c.TokenSigningKey), c.TokenTTL)
	store := session.NewStore(repo, session.Options{
		Latency:            c.LatencySimulation,
		SerializeMutations: c.SerializeMutations,
		Tokens:             tokens,
		Logger:             logger,
		Metrics:            metrics.New(registry),
	})

	return &App{
		config:   c,
		store:    store,
		tokens:   tokens,
		log:      logger,
		db:       db,
		rdb:      rdb,
		registry: registry,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Run restores the previous session, then serves commands until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx = session.NewContext(ctx, a.store)

	updates, stop := a.store.Subscribe()
	defer stop()
	go a.watchSession(ctx, updates)

	go a.store.Restore(ctx)

	fmt.Fprintln(a.out, "Loading...")
	if err := a.store.WaitRestored(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}

// Close releases the session storage connections that are open.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return session.FromContext(ctx).Snapshot().IsAuthenticated
}

func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	switch {
	case snap.IsLoading:
		return "(busy) "
	case snap.User != nil:
		return fmt.Sprintf("(%s) ", snap.User.Email)
	default:
		return ""
	}
}

// watchSession logs every sign-in and sign-out seen on updates.
func (a *App) watchSession(ctx context.Context, updates <-chan models.Snapshot) {
	var signedIn bool
	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if snap.IsLoading || snap.IsAuthenticated == signedIn {
				continue
			}
			signedIn = snap.IsAuthenticated
			if signedIn {
				a.log.Debug(ctx, "switched to main screens", "user_id", snap.User.ID)
			} else {
				a.log.Debug(ctx, "switched to auth screens")
			}
		case <-ctx.Done():
			return
		}
	}
}
