package server

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gs "github.com/dmitrijs2005/eventhub/internal/server/grpc"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	return c
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewApp_DBErrors(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })

	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	_, err := NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "db init error")

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()
	openDB = func(string) (*sql.DB, error) { return db, nil }

	_, err = NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLimiter(t *testing.T) {
	c := testConfig()

	l, err := newLimiter(context.Background(), c, logging.Nop())
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.MemoryLimiter{}, l)

	mr := miniredis.RunT(t)
	c.RedisAddr = mr.Addr()
	l, err = newLimiter(context.Background(), c, logging.Nop())
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.RedisLimiter{}, l)
	assert.NoError(t, l.Close())
}

func TestApp_RunServesMetricsAndStops(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	c := testConfig()
	c.EndpointAddrGRPC = freeAddr(t)
	c.MetricsAddr = freeAddr(t)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	app := &App{
		config:   c,
		logger:   logging.Nop(),
		db:       db,
		limiter:  ratelimit.Unlimited{},
		server:   gs.NewGRPCServer(c.EndpointAddrGRPC, logging.Nop(), gs.Services{}, c.SecretKey, gs.NewMetrics(registry)),
		registry: registry,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + c.MetricsAddr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
	assert.Contains(t, body, "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
