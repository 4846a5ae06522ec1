package bugs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMustBug(t *testing.T) {
	require.True(t, IsInTests())
	require.Panics(t, func() {
		err := MustBugf("some error")
		require.Error(t, err)
	}, "The code did not panic")
}

func TestMustPanic(t *testing.T) {
	require.PanicsWithValue(t, "bad slot 3", func() {
		MustPanic("bad slot %d", 3)
	})
}

func TestDebugAssertf(t *testing.T) {
	if DebugAssertionsEnabled {
		require.Panics(t, func() {
			DebugAssertf(func() bool { return false }, "failed")
		})
		return
	}

	require.NotPanics(t, func() {
		DebugAssertf(func() bool { return false }, "failed")
	})
}
