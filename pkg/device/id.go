package device

import "io"

// ID is the opaque token identifying a device. The scheme attaches no
// structure to it; callers typically use an account address or serial.
type ID string

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// Bytes returns the raw bytes of the identifier.
func (id ID) Bytes() []byte {
	return []byte(id)
}

// WriteTo implements io.WriterTo, making an ID usable as transcript
// input.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(id))
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (ID) Domain() string {
	return "Device ID"
}
