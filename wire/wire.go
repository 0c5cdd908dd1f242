// Package wire implements the encoding of the Wayland wire protocol:
// message headers and the argument types that can follow them.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unsafe"
)

// HeaderSize is the size of a message header in bytes.
const HeaderSize = 8

// MaxMessageSize is the largest message, header included, that can be
// described by a header.
const MaxMessageSize = 0xFFFF

var (
	ErrShortMessage    = errors.New("short message")
	ErrMessageTooLarge = errors.New("message too large")
	ErrTrailingData    = errors.New("trailing data after arguments")
)

// byteOrder is the host byte order.
var byteOrder binary.ByteOrder = binary.LittleEndian

func init() {
	n := uint32(1)
	b := (*[4]byte)(unsafe.Pointer(&n))
	if b[0] == 0 {
		byteOrder = binary.BigEndian
	}
}

// Message is a single request or event.
type Message struct {
	// Sender is the ID of the object that the message is sent to, for
	// requests, or sent from, for events.
	Sender uint32
	Opcode uint16
	Args   []byte
}

// Size returns the encoded size of m, header included.
func (m Message) Size() int {
	return HeaderSize + len(m.Args)
}

// Decoder returns a decoder for the arguments of m.
func (m Message) Decoder() *Decoder {
	return NewDecoder(m.Args)
}

// WriteTo writes the encoded message to w.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	size := m.Size()
	if size > MaxMessageSize {
		return 0, fmt.Errorf("%w: %v bytes", ErrMessageTooLarge, size)
	}

	buf := make([]byte, size)
	byteOrder.PutUint32(buf[0:4], m.Sender)
	byteOrder.PutUint32(buf[4:8], uint32(size)<<16|uint32(m.Opcode))
	copy(buf[HeaderSize:], m.Args)

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadMessage reads a single message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var header [HeaderSize]byte
	_, err := io.ReadFull(r, header[:])
	if err != nil {
		return Message{}, err
	}

	sizeOpcode := byteOrder.Uint32(header[4:8])
	size := int(sizeOpcode >> 16)
	if (size < HeaderSize) || (size%4 != 0) {
		return Message{}, fmt.Errorf("invalid message size %v", size)
	}

	m := Message{
		Sender: byteOrder.Uint32(header[0:4]),
		Opcode: uint16(sizeOpcode & 0xFFFF),
		Args:   make([]byte, size-HeaderSize),
	}
	_, err = io.ReadFull(r, m.Args)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Message{}, fmt.Errorf("read arguments: %w", err)
	}

	return m, nil
}

func pad(n int) int {
	return (n + 3) &^ 3
}
