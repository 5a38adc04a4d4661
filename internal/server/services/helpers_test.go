package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger keeps every entry for assertions.
type recordingLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	with    []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}}
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: append(append([]any{}, l.with...), args...)})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordingLogger) Info(_ context.Context, msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(_ context.Context, msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) { l.add("error", msg, args) }
func (l *recordingLogger) With(args ...any) logging.Logger {
	return &recordingLogger{mu: l.mu, entries: l.entries, with: append(append([]any{}, l.with...), args...)}
}

func (l *recordingLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range *l.entries {
		if e.level == level && e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

func (e logEntry) attr(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1]
		}
	}
	return nil
}

type fixture struct {
	repos    repomanager.RepositoryManager
	tokens   *auth.TokenService
	auth     *AuthService
	users    *UserService
	posts    *PostService
	comments *CommentService
	logs     *recordingLogger
}

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:            "access",
		RefreshTokenSecret:           "refresh",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
	}
}

func newFixtureWith(t *testing.T, m repomanager.RepositoryManager) *fixture {
	t.Helper()
	logs := newRecordingLogger()
	tokens := auth.NewTokenService(testConfig(), m.RefreshTokens())
	return &fixture{
		repos:    m,
		tokens:   tokens,
		auth:     NewAuthService(m, tokens, logs),
		users:    NewUserService(m, tokens, logs),
		posts:    NewPostService(m, logs),
		comments: NewCommentService(m, logs),
		logs:     logs,
	}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, repomanager.NewMemoryRepositoryManager())
}

func (f *fixture) register(t *testing.T, name string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), name, name+"@example.com", "pw-"+name)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return res
}

func ptr[T any](v T) *T { return &v }
