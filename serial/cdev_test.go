package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLineGone = errors.New("line gone")

type fakeLine struct {
	values []int
	closed bool
	failAt int
	calls  int
}

func (l *fakeLine) SetValue(v int) error {
	l.calls++
	if l.failAt > 0 && l.calls >= l.failAt {
		return errLineGone
	}
	l.values = append(l.values, v)
	return nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

func newTestCdev() (*Cdev, *fakeLine, *fakeLine) {
	data := &fakeLine{}
	clock := &fakeLine{}
	return &Cdev{chip: "gpiochip0", data: data, clock: clock}, data, clock
}

func TestCdevWriteWaveform(t *testing.T) {
	out, data, clock := newTestCdev()

	require.NoError(t, out.Write([]byte{0xA5}))

	assert.Equal(t, []int{1, 0, 1, 0, 0, 1, 0, 1}, data.values)
	require.Len(t, clock.values, 16)
	for i := 0; i < 16; i += 2 {
		assert.Equal(t, 1, clock.values[i])
		assert.Equal(t, 0, clock.values[i+1])
	}
}

func TestCdevWriteAbortsOnLineError(t *testing.T) {
	out, data, clock := newTestCdev()
	data.failAt = 3

	err := out.Write([]byte{0xFF})
	var perr *PinError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "gpiochip0:data", perr.Pin)
	assert.ErrorIs(t, err, errLineGone)
	assert.Len(t, clock.values, 4, "clocking stops at the failing bit")
}

func TestCdevClose(t *testing.T) {
	out, data, clock := newTestCdev()

	require.NoError(t, out.Close())
	assert.True(t, data.closed)
	assert.True(t, clock.closed)
	// Lines are driven low before release.
	assert.Equal(t, []int{0}, data.values)
	assert.Equal(t, []int{0}, clock.values)

	assert.NoError(t, out.Close(), "close is idempotent")
}

func TestCdevFlushIsNoop(t *testing.T) {
	out, _, _ := newTestCdev()
	assert.NoError(t, out.Flush())
}
