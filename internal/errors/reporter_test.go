package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scalarerrors "scalardomain/internal/errors"
)

func TestNewInvariantViolationMessage(t *testing.T) {
	err := scalarerrors.NewInvariantViolation(
		scalarerrors.ErrorInvalidIntervalBounds,
		"Interval.Apply(OpPlus)",
		"min 10 exceeds max 5",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), scalarerrors.ErrorInvalidIntervalBounds)
	assert.Contains(t, err.Error(), "min 10 exceeds max 5")
}

func TestPanicRaisesInvariantViolation(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.Contains(t, err.Error(), scalarerrors.ErrorWidthMismatch)
	}()
	scalarerrors.Panic(scalarerrors.ErrorWidthMismatch, "dispatch.Apply", "16 != 32")
}

func TestReporterFormatIncludesDescription(t *testing.T) {
	err := scalarerrors.NewInvariantViolation(
		scalarerrors.ErrorEmptyDisjunction,
		"Disjunction.Write",
		"no members in any bucket",
	)
	out := scalarerrors.Reporter{}.Format(err)
	assert.Contains(t, out, scalarerrors.ErrorEmptyDisjunction)
	assert.Contains(t, out, scalarerrors.GetErrorDescription(scalarerrors.ErrorEmptyDisjunction))
}

func TestGetErrorDescriptionUnknownCode(t *testing.T) {
	assert.Equal(t, "unknown error code", scalarerrors.GetErrorDescription("D9999"))
}
