package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/authsession/internal/client/config"
	"github.com/dmitrijs2005/authsession/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authsession/internal/client/session"
	"github.com/dmitrijs2005/authsession/internal/client/token"
	"github.com/dmitrijs2005/authsession/internal/metrics"
)

// pipedInput makes GetPassword read from the app reader instead of the terminal.
func pipedInput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testApp struct {
	*App
	ctx  context.Context
	repo *metadata.MemoryRepository
	buf  *bytes.Buffer
}

func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	pipedInput(t)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.LatencySimulation = 0

	repo := metadata.NewMemoryRepository()
	tokens := token.NewIssuer([]byte("test-key"), time.Hour)
	registry := prometheus.NewRegistry()
	store := session.NewStore(repo, session.Options{Tokens: tokens, Metrics: metrics.New(registry)})
	store.Restore(context.Background())

	var buf bytes.Buffer
	app := &App{
		config:   cfg,
		store:    store,
		tokens:   tokens,
		registry: registry,
		reader:   readerFromLines(lines...),
		out:      &buf,
	}
	return &testApp{
		App:  app,
		ctx:  session.NewContext(context.Background(), store),
		repo: repo,
		buf:  &buf,
	}
}
