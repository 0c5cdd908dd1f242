package wire_test

import (
	"bytes"
	"io"
	"testing"

	"deedles.dev/notch/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	var e wire.Encoder
	e.Int(-3)
	e.Uint(7)
	e.String("xx_cutouts_manager_v1")
	e.Array(wire.Uint32Array([]uint32{1, 2, 3}))
	e.NewID(12)
	msg := e.Message(4, 2)

	var buf bytes.Buffer
	n, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, msg.Size(), n)
	assert.Zero(t, buf.Len()%4)

	got, err := wire.ReadMessage(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.Sender)
	assert.EqualValues(t, 2, got.Opcode)

	d := got.Decoder()
	assert.EqualValues(t, -3, d.Int())
	assert.EqualValues(t, 7, d.Uint())
	assert.Equal(t, "xx_cutouts_manager_v1", d.String())
	ids, err := wire.ParseUint32Array(d.Array())
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, ids)
	assert.EqualValues(t, 12, d.NewID())
	assert.NoError(t, d.Finish())
}

func TestHeaderLayout(t *testing.T) {
	var e wire.Encoder
	e.Uint(1)
	msg := e.Message(3, 1)

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, 12, buf.Len())

	// The second word carries the size in the upper half and the opcode
	// in the lower half, in host byte order.
	d := wire.NewDecoder(buf.Bytes())
	assert.EqualValues(t, 3, d.Uint())
	assert.EqualValues(t, 12<<16|1, d.Uint())
	assert.EqualValues(t, 1, d.Uint())
}

func TestEmptyArguments(t *testing.T) {
	var e wire.Encoder
	e.String("")
	e.Array(nil)

	d := wire.NewDecoder(e.Message(1, 0).Args)
	assert.Equal(t, "", d.String())
	assert.Empty(t, d.Array())
	assert.NoError(t, d.Finish())
}

func TestDecoderErrors(t *testing.T) {
	d := wire.NewDecoder([]byte{1, 2})
	assert.Zero(t, d.Uint())
	assert.ErrorIs(t, d.Err(), wire.ErrShortMessage)
	assert.Zero(t, d.Uint())
	assert.ErrorIs(t, d.Finish(), wire.ErrShortMessage)

	var e wire.Encoder
	e.Uint(1)
	e.Uint(2)
	d = wire.NewDecoder(e.Message(1, 0).Args)
	d.Uint()
	assert.ErrorIs(t, d.Finish(), wire.ErrTrailingData)

	var arr wire.Encoder
	arr.Uint(32)
	d = wire.NewDecoder(arr.Message(1, 0).Args)
	assert.Nil(t, d.Array())
	assert.ErrorIs(t, d.Err(), wire.ErrShortMessage)
}

func TestReadMessageErrors(t *testing.T) {
	_, err := wire.ReadMessage(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)

	var e wire.Encoder
	e.Uint(1)
	var buf bytes.Buffer
	_, err = e.Message(1, 0).WriteTo(&buf)
	require.NoError(t, err)

	_, err = wire.ReadMessage(bytes.NewReader(buf.Bytes()[:10]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMessageTooLarge(t *testing.T) {
	var e wire.Encoder
	e.Array(make([]byte, wire.MaxMessageSize))
	_, err := e.Message(1, 0).WriteTo(io.Discard)
	assert.ErrorIs(t, err, wire.ErrMessageTooLarge)
}

func TestParseUint32Array(t *testing.T) {
	_, err := wire.ParseUint32Array([]byte{1, 2, 3})
	assert.Error(t, err)

	v, err := wire.ParseUint32Array(nil)
	require.NoError(t, err)
	assert.Empty(t, v)
}
