package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linerider/trackphysics/internal/entity"
	"github.com/linerider/trackphysics/internal/geometry"
	"github.com/linerider/trackphysics/internal/physline"
	"github.com/linerider/trackphysics/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultRiderEngine(t *testing.T, version GridVersion, remount RemountVersion) (*Engine, EntityID) {
	t.Helper()
	e := New(version)
	template := entity.BuildDefaultRider(remount)
	templateID := e.RegisterEntityTemplate(template)
	id, err := e.AddEntity(templateID)
	require.NoError(t, err)
	return e, id
}

// Scenario 1: free fall. Every contact point's y-coordinate advances by
// the verlet sum over 60 frames of k*0.175. Non-contact points (the scarf)
// carry their own air friction and are excluded from the comparison.
func TestFreeFallMatchesVerletSum(t *testing.T) {
	t.Parallel()
	e, id := newDefaultRiderEngine(t, GridV6_2, RemountComV2)
	template := entity.BuildDefaultRider(RemountComV2)

	states, err := e.ViewFrame(60)
	require.NoError(t, err)
	require.Len(t, states, 1)

	before, err := e.ViewFrame(0)
	require.NoError(t, err)

	state := states[0]
	initial := before[0]

	want := 0.0
	for k := 1; k <= 60; k++ {
		want += float64(k) * 0.175
	}

	for _, pid := range template.Points() {
		if !template.Point(pid).IsContact() {
			continue
		}
		got := state.PointState(pid).Position().Y - initial.PointState(pid).Position().Y
		testutil.ApproxEqualFloat(t, got, want, 1e-6)
	}
	assert.True(t, state.MountPhase().IsMounted())
	_ = id
}

// Scenario 2: a single horizontal line catches the rider. After 30
// frames, the lowest contact point's y stays within the line's hitbox.
func TestFlatLineCatchesRider(t *testing.T) {
	t.Parallel()
	e, _ := newDefaultRiderEngine(t, GridV6_2, RemountComV2)

	line := physline.New(geometry.Line{
		P0: geometry.Point{X: -100, Y: 10},
		P1: geometry.Point{X: 100, Y: 10},
	}, false, false, false)
	e.AddLine(line)

	states, err := e.ViewFrame(30)
	require.NoError(t, err)
	require.Len(t, states, 1)

	state := states[0]
	assert.True(t, state.MountPhase().IsMounted())

	maxY := -1.0
	for _, p := range state.PointPositions() {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	assert.LessOrEqual(t, maxY, 10.0)
}

// Scenario 6: cache invalidation. Adding a line far from any rider must
// not change the rider's previously-computed state at a given frame, even
// though the cache is fully recomputed from frame 0.
func TestCacheInvalidationReproducesIdenticalStates(t *testing.T) {
	t.Parallel()
	e, _ := newDefaultRiderEngine(t, GridV6_2, RemountComV2)

	first, err := e.ViewFrame(10)
	require.NoError(t, err)

	far := physline.New(geometry.Line{
		P0: geometry.Point{X: 100000, Y: 100000},
		P1: geometry.Point{X: 100010, Y: 100000},
	}, false, false, false)
	e.AddLine(far)

	second, err := e.ViewFrame(10)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		if diff := cmp.Diff(first[i].PointPositions(), second[i].PointPositions()); diff != "" {
			t.Errorf("entity %d positions diverged after cache invalidation (-before +after):\n%s", i, diff)
		}
		if diff := cmp.Diff(first[i].PointVelocities(), second[i].PointVelocities()); diff != "" {
			t.Errorf("entity %d velocities diverged after cache invalidation (-before +after):\n%s", i, diff)
		}
		assert.Equal(t, first[i].MountPhase(), second[i].MountPhase())
	}
}

func TestSetGridVersionClearsCache(t *testing.T) {
	t.Parallel()
	e, _ := newDefaultRiderEngine(t, GridV6_1, RemountComV2)

	_, err := e.ViewFrame(5)
	require.NoError(t, err)

	e.SetGridVersion(GridV6_2)
	assert.Equal(t, GridV6_2, e.GridVersion())

	// A fresh ViewFrame(5) must still succeed and the entity must have
	// been resimulated from scratch (no observable error either way,
	// but this exercises the invalidation path end to end).
	_, err = e.ViewFrame(5)
	require.NoError(t, err)
}

func TestInvalidLineIDIsReported(t *testing.T) {
	t.Parallel()
	e := New(GridV6_2)
	_, err := e.GetLine(LineID(999))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLineID)
}

func TestInvalidEntityIDIsReported(t *testing.T) {
	t.Parallel()
	e := New(GridV6_2)
	err := e.RemoveEntity(EntityID(999))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEntityID)
}

func TestInvalidTemplateIDIsReported(t *testing.T) {
	t.Parallel()
	e := New(GridV6_2)
	_, err := e.AddEntity(TemplateID(999))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTemplateID)
}
