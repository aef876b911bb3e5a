package core

import "io"

// countingReader wraps an io.Reader to track bytes read. It sits between the
// file and the decoder, so the count is in source bytes, not decoded UTF-8.
type countingReader struct {
	reader    io.Reader
	bytesRead int64
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{reader: r}
}

// Read implements io.Reader.
func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}

// BytesRead returns the number of bytes consumed so far.
func (r *countingReader) BytesRead() int64 {
	return r.bytesRead
}
