package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/config"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/repository/sqlite"
	"tempo-tracker/internal/services"
	"tempo-tracker/internal/suggest"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs(prefix string) services.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func completedEntry(id string, start, end time.Time, projectID string) domain.TimeEntry {
	return domain.TimeEntry{
		ID:          id,
		Description: "work " + id,
		ProjectID:   projectID,
		StartTime:   start,
		EndTime:     &end,
		IsBillable:  true,
		HourlyRate:  50,
	}
}

// seededState is the default state plus e2 (10:00-11:00, Internal) and
// e1 (08:00-09:00, no project), newest first
func seededState() *domain.AppState {
	state := domain.DefaultState(50, domain.USD)
	state.Entries = []domain.TimeEntry{
		completedEntry("e2", at(10, 0), at(11, 0), "1"),
		completedEntry("e1", at(8, 0), at(9, 0), ""),
	}
	return &state
}

type stubSuggester struct {
	suggestion *suggest.Suggestion
	err        error
}

func (s *stubSuggester) Suggest(ctx context.Context, description string) (*suggest.Suggestion, error) {
	return s.suggestion, s.err
}

// testEnv builds a fresh BusinessAPI over one in-memory database for every
// command run, the way the binary does per invocation
type testEnv struct {
	t     *testing.T
	repo  sqlite.Repository
	clock *fakeClock
	ids   services.IDGenerator
	opts  []api.Option
}

func setupTestEnv(t *testing.T, seed *domain.AppState, opts ...api.Option) *testEnv {
	t.Helper()
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	if seed != nil {
		doc := domain.NewMapperIn(time.UTC).StateToDocument(*seed)
		require.NoError(t, repo.SaveState(context.Background(), doc))
	}

	return &testEnv{
		t:     t,
		repo:  repo,
		clock: &fakeClock{now: testNow},
		ids:   sequentialIDs("id"),
		opts:  opts,
	}
}

func (e *testEnv) newAPI(confirmer api.Confirmer) api.BusinessAPI {
	base := []api.Option{
		api.WithClock(e.clock.Now),
		api.WithIDGenerator(e.ids),
		api.WithLocation(time.UTC),
		api.WithDefaults(50, domain.USD),
		api.WithConfirmer(confirmer),
	}
	return api.NewBusinessAPI(e.repo, append(base, e.opts...)...)
}

func (e *testEnv) factory(cfg *config.Config, confirmer api.Confirmer) (api.BusinessAPI, func() error, error) {
	return e.newAPI(confirmer), func() error { return nil }, nil
}

// run executes one command line through the cobra tree and returns stdout
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(e.factory, strings.NewReader(""), &out)
	root.location = time.UTC
	root.confirmer = api.NeverConfirm
	root.SetArgs(append([]string{"--data-dir", e.t.TempDir()}, args...))
	err := root.Execute(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "tempo %s", strings.Join(args, " "))
	return out
}

// state reads the persisted state through a fresh API
func (e *testEnv) state() domain.AppState {
	e.t.Helper()
	state, err := e.newAPI(api.NeverConfirm).GetState(context.Background())
	require.NoError(e.t, err)
	return state
}

// setupTestApp builds an App for handler-level tests
func setupTestApp(t *testing.T, seed *domain.AppState) (*App, *bytes.Buffer, *testEnv) {
	t.Helper()
	env := setupTestEnv(t, seed)
	var out bytes.Buffer
	app := NewApp(env.newAPI(api.NeverConfirm), config.NewConfig(), strings.NewReader(""), &out)
	app.location = time.UTC
	return app, &out, env
}
