package slotvec

import "io"

// Compile time check to ensure ByteWriter satisfies io.Writer.
var _ io.Writer = (*ByteWriter)(nil)

// ByteWriter adapts a SlotVec[byte] to io.Writer so that stream-producing
// code can append into the container. Writing a buffer is equivalent to
// pushing each byte, with a single upfront reservation per call.
type ByteWriter struct {
	sv *SlotVec[byte]
}

// NewByteWriter creates an io.Writer appending to sv.
func NewByteWriter(sv *SlotVec[byte]) *ByteWriter {
	return &ByteWriter{sv: sv}
}

// Write implements io.Writer. It never fails.
func (w *ByteWriter) Write(p []byte) (int, error) {
	w.sv.Reserve(len(p))
	for _, b := range p {
		w.sv.Push(b)
	}
	return len(p), nil
}
