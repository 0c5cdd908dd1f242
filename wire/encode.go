package wire

// Encoder builds the arguments of a message. The zero value is ready
// to use.
type Encoder struct {
	buf []byte
}

func (e *Encoder) grow(n int) []byte {
	start := len(e.buf)
	e.buf = append(e.buf, make([]byte, n)...)
	return e.buf[start:]
}

func (e *Encoder) Uint(v uint32) {
	byteOrder.PutUint32(e.grow(4), v)
}

func (e *Encoder) Int(v int32) {
	e.Uint(uint32(v))
}

// Object encodes an object ID. A zero ID is a null object.
func (e *Encoder) Object(id uint32) {
	e.Uint(id)
}

func (e *Encoder) NewID(id uint32) {
	e.Uint(id)
}

// String encodes a non-null string.
func (e *Encoder) String(v string) {
	e.Uint(uint32(len(v) + 1))
	copy(e.grow(pad(len(v)+1)), v)
}

func (e *Encoder) Array(v []byte) {
	e.Uint(uint32(len(v)))
	copy(e.grow(pad(len(v))), v)
}

// Message returns a message with the encoded arguments.
func (e *Encoder) Message(sender uint32, opcode uint16) Message {
	return Message{
		Sender: sender,
		Opcode: opcode,
		Args:   e.buf,
	}
}

// Uint32Array encodes a list of uint32 values as the contents of an
// array argument.
func Uint32Array(v []uint32) []byte {
	buf := make([]byte, 4*len(v))
	for i, n := range v {
		byteOrder.PutUint32(buf[4*i:], n)
	}
	return buf
}
