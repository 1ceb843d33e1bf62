package logger

import (
	"Inkwell/internal/pkg/consts"
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	gormlogger "gorm.io/gorm/logger"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })
	var buf bytes.Buffer
	log.SetDefault(log.New(log.NewTextHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug})))
	return &buf
}

func TestRedisArgs(t *testing.T) {
	ctx := context.Background()

	blacklist := redis.NewStatusCmd(ctx, "set", consts.TokenBlacklistKey+"secret-signature", true)
	assert.NotContains(t, redisArgs(blacklist), "secret-signature")
	assert.Contains(t, redisArgs(blacklist), "[PROTECTED]")

	normal := redis.NewIntCmd(ctx, "sadd", consts.PostDirtyKey, "65f0")
	assert.Contains(t, redisArgs(normal), "65f0")

	assert.Equal(t, "[PROTECTED]", redisArgs(redis.NewStatusCmd(ctx, "auth", "pwd")))
}

func TestMongoCommandHelpers(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "update", Value: "users"},
		{Key: "updates", Value: bson.A{bson.M{"password": "$2a$10$hash"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "users", commandCollection(raw))
	redacted := redactMongoCommand(bson.Raw(raw).String())
	assert.NotContains(t, redacted, "$2a$10$hash")
	assert.Contains(t, redacted, "[PROTECTED]")

	assert.Equal(t, "", commandCollection(bson.Raw{}))
}

func TestGormTraceSlowThreshold(t *testing.T) {
	buf := captureDefault(t)
	l := NewGormLogger(50 * time.Millisecond)
	ctx := context.Background()

	l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) { return "insert into post_metrics", 1 }, nil)
	assert.Contains(t, buf.String(), "MySQL INSERT Slow")

	buf.Reset()
	l.Trace(ctx, time.Now(), func() (string, int64) { return "select 1", 1 }, nil)
	assert.Contains(t, buf.String(), "MySQL SELECT")
	assert.NotContains(t, buf.String(), "Slow")

	buf.Reset()
	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now(), func() (string, int64) { return "select 1", 1 }, nil)
	assert.Empty(t, buf.String())
	l.Trace(ctx, time.Now(), func() (string, int64) { return "select 1", 1 }, nil)
	assert.Contains(t, buf.String(), "MySQL SELECT", "LogMode 返回副本，不影响原 logger")
}

type failingHandler struct {
	log.Handler
}

func (failingHandler) Enabled(context.Context, log.Level) bool { return true }

func (failingHandler) Handle(context.Context, log.Record) error { return errors.New("logstash gone") }

func TestTeeHandler(t *testing.T) {
	var buf bytes.Buffer
	stdout := log.NewTextHandler(&buf, nil)
	tee := &TeeHandler{handlers: []log.Handler{failingHandler{}, stdout}}

	err := tee.Handle(context.Background(), log.NewRecord(time.Now(), log.LevelInfo, "hello", 0))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "hello")
}

func TestRemoteFilterHandler(t *testing.T) {
	var buf bytes.Buffer
	remote := &RemoteFilterHandler{next: log.NewTextHandler(&buf, nil)}
	logger := log.New(&ContextHandler{remote})

	logger.Info("no trace")
	assert.Empty(t, buf.String())

	logger.Error("startup failed")
	assert.Contains(t, buf.String(), "startup failed")

	buf.Reset()
	ctx := context.WithValue(context.Background(), TraceIDKey, "trace-1")
	logger.InfoContext(ctx, "with trace")
	assert.Contains(t, buf.String(), "trace-1")
}
