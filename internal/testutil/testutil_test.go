package testutil

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/linerider/trackphysics/internal/geometry"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestAssertNoError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_NO_ERROR_FAIL") == "1" {
		AssertNoError(t, errors.New("boom"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertNoError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_NO_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is non-nil")
	}
}

func TestAssertError(t *testing.T) {
	t.Parallel()
	AssertError(t, errors.New("test error"))
}

func TestAssertError_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_ASSERT_ERROR_FAIL") == "1" {
		AssertError(t, nil)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestAssertError_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_ASSERT_ERROR_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when error is nil")
	}
}

func TestApproxEqualFloat(t *testing.T) {
	t.Parallel()
	ApproxEqualFloat(t, 1.00000001, 1.0, 1e-6)
}

func TestApproxEqualFloat_FailurePath(t *testing.T) {
	t.Parallel()

	if os.Getenv("TESTUTIL_APPROX_FLOAT_FAIL") == "1" {
		ApproxEqualFloat(t, 1.1, 1.0, 1e-6)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestApproxEqualFloat_FailurePath$")
	cmd.Env = append(os.Environ(), "TESTUTIL_APPROX_FLOAT_FAIL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to fail when values differ beyond eps")
	}
}

func TestApproxEqualPoint(t *testing.T) {
	t.Parallel()
	ApproxEqualPoint(t, geometry.Point{X: 1, Y: 2}, geometry.Point{X: 1.0000001, Y: 2}, 1e-5)
}

func TestApproxEqualVector(t *testing.T) {
	t.Parallel()
	ApproxEqualVector(t, geometry.Vector{X: 0, Y: 0.175}, geometry.Vector{X: 0, Y: 0.175}, 1e-9)
}
