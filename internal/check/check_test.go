package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThatPassing(t *testing.T) {
	assert.NotPanics(t, func() {
		That(true, "never fires")
		Thatf(1+1 == 2, "math broke: %d", 2)
	})
}

func TestThatFailing(t *testing.T) {
	run := func() { Thatf(false, "bad value %d", 7) }
	if !Enabled {
		assert.NotPanics(t, run, "release builds compile assertions out")
		return
	}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error")
		var f *Failure
		require.True(t, errors.As(err, &f))
		assert.Equal(t, "bad value 7", f.Msg)
	}()
	run()
}
