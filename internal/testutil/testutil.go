// Package testutil provides shared test helpers used across the engine's
// packages: scalar/float assertions and geometry-aware approximate
// equality for comparing golden-trace snapshots, where verlet arithmetic
// makes exact equality brittle across refactors.
package testutil

import (
	"testing"

	"github.com/linerider/trackphysics/internal/geometry"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ApproxEqualFloat fails the test if got and want differ by more than eps.
func ApproxEqualFloat(t *testing.T, got, want, eps float64) {
	t.Helper()
	if diff := got - want; diff < -eps || diff > eps {
		t.Errorf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// ApproxEqualPoint fails the test if got and want differ by more than eps
// on either axis.
func ApproxEqualPoint(t *testing.T, got, want geometry.Point, eps float64) {
	t.Helper()
	ApproxEqualFloat(t, got.X, want.X, eps)
	ApproxEqualFloat(t, got.Y, want.Y, eps)
}

// ApproxEqualVector fails the test if got and want differ by more than eps
// on either axis.
func ApproxEqualVector(t *testing.T, got, want geometry.Vector, eps float64) {
	t.Helper()
	ApproxEqualFloat(t, got.X, want.X, eps)
	ApproxEqualFloat(t, got.Y, want.Y, eps)
}
