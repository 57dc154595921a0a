package cli

import (
	"context"
	"testing"
	"time"

	"tempo-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerWorkflow(t *testing.T) {
	env := setupTestEnv(t, nil)

	// Arrange: a draft with a description and a project given by name
	out := env.mustRun("draft", "--description", "Client call", "--project", "Internal")
	assert.Contains(t, out, "Draft, not started")
	assert.Contains(t, out, "Client call")
	assert.Contains(t, out, "Internal")

	// Act: start, let 90 minutes pass, stop
	out = env.mustRun("start")
	assert.Equal(t, "Started tracking at 12:00: Client call\n", out)

	env.clock.Advance(90 * time.Minute)
	out = env.mustRun("status")
	assert.Contains(t, out, "01:30:00 | Client call")
	assert.Contains(t, out, "Running since 12:00 (01:30:00)")
	assert.Contains(t, out, "billable @ $50.00/h")

	out = env.mustRun("stop")
	assert.Equal(t, "Stopped after 01:30:00: Client call\n", out)

	// Assert: one completed billable entry worth 1.5h * 50
	state := env.state()
	require.Len(t, state.Entries, 1)
	entry := state.Entries[0]
	assert.Equal(t, "1", entry.ProjectID)
	assert.Equal(t, 75.0, entry.BilledAmount())
	assert.Nil(t, state.Active)

	out = env.mustRun("list")
	assert.Contains(t, out, "id-1  2025-03-10 12:00-13:30  01:30:00")
	assert.Contains(t, out, "Client call  $75.00")
	assert.Contains(t, out, "1 entries  01:30:00  $75.00")
}

func TestStopCommand(t *testing.T) {
	t.Run("should report when no timer is running", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		out := env.mustRun("stop")

		assert.Equal(t, "No timer is running\n", out)
		assert.Empty(t, env.state().Entries)
	})

	t.Run("should reject arguments", func(t *testing.T) {
		app, _, _ := setupTestApp(t, nil)

		err := NewStopCommand(app).Execute(context.Background(), []string{"now"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tempo stop")
	})
}

func TestStartCommand(t *testing.T) {
	t.Run("should stop a running timer before starting the next", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		env.mustRun("start")
		env.clock.Advance(time.Hour)

		out := env.mustRun("start")

		assert.Equal(t, "Started tracking at 13:00: No description\n", out)
		state := env.state()
		require.Len(t, state.Entries, 1)
		assert.Equal(t, time.Hour, state.Entries[0].Duration())
		require.NotNil(t, state.Active)
		assert.True(t, state.Active.IsRunning())
	})

	t.Run("should reject a description argument", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		_, err := env.run("start", "Writing docs")

		require.Error(t, err)
		assert.Nil(t, env.state().Active)
	})
}

func TestStatusCommand(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(env *testEnv)
		want    []string
		notWant []string
	}{
		{
			name:  "should show the idle title without a timer",
			setup: func(env *testEnv) {},
			want:  []string{"Tempo | Time Tracker", "No timer is running"},
		},
		{
			name: "should show a draft without elapsed time",
			setup: func(env *testEnv) {
				env.mustRun("draft", "--billable=false")
			},
			want:    []string{"Draft, not started", "No description", "No Project", "non-billable"},
			notWant: []string{"Running since"},
		},
		{
			name: "should fall back to the running status text",
			setup: func(env *testEnv) {
				env.mustRun("start")
				env.clock.Advance(time.Hour + 2*time.Minute + 3*time.Second)
			},
			want: []string{"01:02:03 | Tracking", "Running since 12:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, nil)
			tt.setup(env)

			out := env.mustRun("status")

			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestDraftCommand(t *testing.T) {
	t.Run("should toggle billable on an empty slot into a billable draft", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		env.mustRun("draft", "--toggle-billable")

		state := env.state()
		require.NotNil(t, state.Active)
		assert.True(t, state.Active.Billable())
		assert.False(t, state.Active.IsRunning())
	})

	t.Run("should clear the project with an empty value", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		env.mustRun("draft", "--project", "Design System")
		require.Equal(t, "2", env.state().Active.ProjectID)

		env.mustRun("draft", "--project", "")

		assert.Equal(t, "", env.state().Active.ProjectID)
	})

	t.Run("should reject an unknown project", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		_, err := env.run("draft", "--project", "nope")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "project not found: nope")
		assert.Nil(t, env.state().Active)
	})

	t.Run("should reject billable and toggle together", func(t *testing.T) {
		env := setupTestEnv(t, nil)

		_, err := env.run("draft", "--billable", "--toggle-billable")

		require.Error(t, err)
	})

	t.Run("should keep editing a running timer", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		env.mustRun("start")

		env.mustRun("draft", "--description", "Late title")

		state := env.state()
		require.NotNil(t, state.Active)
		assert.True(t, state.Active.IsRunning())
		assert.Equal(t, "Late title", state.Active.Description)
		assert.Equal(t, domain.RunningTimer, state.TimerState())
	})
}
