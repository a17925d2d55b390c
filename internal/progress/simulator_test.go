package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulator(t *testing.T) {
	sim := New(nil, 0)

	assert.Equal(t, 0, sim.Percent())
	assert.False(t, sim.Done())
	assert.Len(t, sim.Stages(), 5)
	assert.Equal(t, 50, sim.TicksToComplete())

	snap := sim.Snapshot()
	assert.Equal(t, 0, snap.Current)
	assert.Equal(t, StageCurrent, snap.Statuses[0])
	for i := 1; i < len(snap.Statuses); i++ {
		assert.Equal(t, StagePending, snap.Statuses[i], "stage %d", i)
	}
}

func TestAdvanceMonotonicAndClamped(t *testing.T) {
	steps := []int{1, 2, 3, 7, 33, 150}

	for _, step := range steps {
		sim := New(DefaultStages, step)
		prev := sim.Percent()
		ticks := 0

		for sim.Advance() {
			ticks++
			require.GreaterOrEqual(t, sim.Percent(), prev, "step %d", step)
			require.LessOrEqual(t, sim.Percent(), MaxPercent, "step %d", step)
			prev = sim.Percent()
			require.Less(t, ticks, 1000, "simulator never finished")
		}

		assert.Equal(t, MaxPercent, sim.Percent(), "step %d", step)
		assert.Equal(t, sim.TicksToComplete(), ticks, "step %d", step)
		assert.False(t, sim.Advance(), "advance after done should be a no-op")
		assert.Equal(t, MaxPercent, sim.Percent())
	}
}

func TestStageBuckets(t *testing.T) {
	tests := []struct {
		percent   int
		current   int
		completed int
	}{
		{percent: 0, current: 0, completed: 0},
		{percent: 18, current: 0, completed: 0},
		{percent: 20, current: 1, completed: 1},
		{percent: 38, current: 1, completed: 1},
		{percent: 40, current: 2, completed: 2},
		{percent: 60, current: 3, completed: 3},
		{percent: 80, current: 4, completed: 4},
		{percent: 98, current: 4, completed: 4},
		{percent: 100, current: -1, completed: 5},
	}

	for _, tt := range tests {
		sim := New(DefaultStages, 2)
		for sim.Percent() < tt.percent {
			sim.Advance()
		}
		require.Equal(t, tt.percent, sim.Percent())

		snap := sim.Snapshot()
		assert.Equal(t, tt.current, snap.Current, "percent %d", tt.percent)
		assert.Equal(t, tt.completed, snap.Completed(), "percent %d", tt.percent)
		if tt.current >= 0 {
			assert.Equal(t, StageCurrent, snap.Statuses[tt.current], "percent %d", tt.percent)
		}
	}
}

func TestLargeStepCompletesSkippedStages(t *testing.T) {
	sim := New(DefaultStages, 45)

	sim.Advance() // 45%: two buckets crossed at once
	snap := sim.Snapshot()
	assert.Equal(t, StageCompleted, snap.Statuses[0])
	assert.Equal(t, StageCompleted, snap.Statuses[1])
	assert.Equal(t, StageCurrent, snap.Statuses[2])
}

func TestSnapshotIsACopy(t *testing.T) {
	sim := New(nil, 2)
	snap := sim.Snapshot()
	snap.Statuses[0] = StageCompleted

	assert.Equal(t, StageCurrent, sim.Snapshot().Statuses[0])
}

func TestStageStatusString(t *testing.T) {
	assert.Equal(t, "pending", StagePending.String())
	assert.Equal(t, "current", StageCurrent.String())
	assert.Equal(t, "completed", StageCompleted.String())
}

func TestDriveRunsToCompletion(t *testing.T) {
	sim := New(nil, 25)
	var seen []int

	err := Drive(context.Background(), sim, time.Millisecond, nil, func(s Snapshot) {
		seen = append(seen, s.Percent)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{25, 50, 75, 100}, seen)
	assert.True(t, sim.Done())
}

func TestDriveStopsOnCancel(t *testing.T) {
	sim := New(nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Drive(ctx, sim, time.Hour, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sim.Percent())
}

func TestDriveStopsOnStopChannel(t *testing.T) {
	sim := New(nil, 1)
	stop := make(chan time.Time, 1)
	stop <- time.Now()

	err := Drive(context.Background(), sim, time.Hour, stop, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, sim.Percent())
}
