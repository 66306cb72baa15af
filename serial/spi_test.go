package serial

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

func newTestSPI(rec *conntest.Record) *SPI {
	return &SPI{conn: rec, buf: make([]byte, BufferBytes)}
}

func TestSPIWriteBuffersUntilFull(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	require.NoError(t, out.Write(make([]byte, BufferBytes-1)))
	assert.Empty(t, rec.Ops, "nothing on the wire until the buffer fills")
	assert.Equal(t, BufferBytes-1, out.n)
}

func TestSPIWriteExactCapacity(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	require.NoError(t, out.Write(make([]byte, BufferBytes)))
	require.Len(t, rec.Ops, 1, "exactly one transmission")
	assert.Len(t, rec.Ops[0].W, BufferBytes)
	assert.Equal(t, 0, out.n, "index reset after the transparent flush")
}

func TestSPIWriteOverCapacity(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	require.NoError(t, out.Write(make([]byte, BufferBytes+1)))
	require.Len(t, rec.Ops, 1)
	assert.Len(t, rec.Ops[0].W, BufferBytes)
	assert.Equal(t, 1, out.n, "one byte left buffered")

	require.NoError(t, out.Flush())
	require.Len(t, rec.Ops, 2)
	assert.Len(t, rec.Ops[1].W, 1)
	assert.Equal(t, 0, out.n)
}

func TestSPIRepeatedWritesSplitAtBoundary(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	// Two writes that together cross the chunk boundary.
	require.NoError(t, out.Write(make([]byte, BufferBytes-2)))
	require.NoError(t, out.Write(make([]byte, 5)))

	require.Len(t, rec.Ops, 1)
	assert.Equal(t, 3, out.n)
}

func TestSPIFlushEmptyIsNoop(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	require.NoError(t, out.Flush())
	assert.Empty(t, rec.Ops, "empty flush must not touch the bus")
}

func TestSPIPreservesByteOrder(t *testing.T) {
	rec := &conntest.Record{}
	out := newTestSPI(rec)

	var want []byte
	for i := 0; i < BufferBytes+100; i++ {
		want = append(want, byte(i))
	}
	for _, b := range want {
		require.NoError(t, out.Write([]byte{b}))
	}
	require.NoError(t, out.Flush())

	var got []byte
	for _, op := range rec.Ops {
		got = append(got, op.W...)
	}
	assert.Equal(t, want, got)
}

type failConn struct{ err error }

func (c *failConn) String() string       { return "failconn" }
func (c *failConn) Tx(w, r []byte) error { return c.err }
func (c *failConn) Duplex() conn.Duplex  { return conn.Half }

func TestSPIFlushSurfacesBusError(t *testing.T) {
	boom := errors.New("bus hiccup")
	out := &SPI{conn: &failConn{err: boom}, buf: make([]byte, 16)}

	require.NoError(t, out.Write([]byte{1, 2, 3}))
	err := out.Flush()

	var berr *BusError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "write", berr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, out.n, "failed flush leaves the buffer intact")
}

func TestSPIThroughPort(t *testing.T) {
	var buf bytes.Buffer
	out, err := NewSPI(spitest.NewRecordRaw(&buf), 8*physic.MegaHertz, 16)
	require.NoError(t, err)

	payload := []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0x12, 0x34, 0x56}
	require.NoError(t, out.Write(payload))
	require.NoError(t, out.Flush())
	assert.Equal(t, payload, buf.Bytes())

	assert.NoError(t, out.Close())
	assert.NoError(t, out.Close(), "close is idempotent")
}
