package wire

import "fmt"

// Decoder reads the arguments of a message in order. The first
// failure is remembered and returned by Err; after a failure every
// method returns a zero value.
type Decoder struct {
	buf []byte
	err error
}

func NewDecoder(args []byte) *Decoder {
	return &Decoder{buf: args}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > len(d.buf) {
		d.err = fmt.Errorf("%w: need %v bytes, have %v", ErrShortMessage, n, len(d.buf))
		return nil
	}

	data := d.buf[:n]
	d.buf = d.buf[n:]
	return data
}

func (d *Decoder) Uint() uint32 {
	data := d.take(4)
	if data == nil {
		return 0
	}
	return byteOrder.Uint32(data)
}

func (d *Decoder) Int() int32 {
	return int32(d.Uint())
}

func (d *Decoder) Object() uint32 {
	return d.Uint()
}

func (d *Decoder) NewID() uint32 {
	return d.Uint()
}

// String decodes a string. A null string decodes as "".
func (d *Decoder) String() string {
	n := int(d.Uint())
	if n == 0 {
		return ""
	}

	data := d.take(pad(n))
	if data == nil {
		return ""
	}
	if data[n-1] != 0 {
		d.err = fmt.Errorf("string of length %v is not terminated", n)
		return ""
	}
	return string(data[:n-1])
}

func (d *Decoder) Array() []byte {
	n := int(d.Uint())
	data := d.take(pad(n))
	if data == nil {
		return nil
	}
	return data[:n:n]
}

// Err returns the first error encountered while decoding.
func (d *Decoder) Err() error {
	return d.err
}

// Finish returns the first error encountered while decoding or, if
// there wasn't one, an error if any arguments remain unread.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if len(d.buf) != 0 {
		return fmt.Errorf("%w: %v bytes", ErrTrailingData, len(d.buf))
	}
	return nil
}

// ParseUint32Array decodes the contents of an array argument holding
// uint32 values.
func ParseUint32Array(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("array of %v bytes is not a list of uint32", len(data))
	}

	v := make([]uint32, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		v = append(v, byteOrder.Uint32(data[i:]))
	}
	return v, nil
}
