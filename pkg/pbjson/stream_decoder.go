package pbjson

import "sync"

// StreamDecoder adds a mutex around Driver the way
// pkg/internal/jsonutil's StreamingParser is meant to be called from
// whatever goroutine is pulling chunks off a streaming source (an HTTP
// body, a gRPC stream, an LLM tool-call delta). Unlike StreamingParser,
// which re-parses its whole accumulated buffer on every Append because
// it is repairing truncated JSON text, Driver is a true incremental
// decoder: each chunk is consumed exactly once and whatever partial
// token state crosses the boundary (a string mid-escape, a number
// mid-digit run) lives inside the Driver itself, so a StreamDecoder
// never buffers more than the caller's own chunk.
type StreamDecoder struct {
	driver *Driver
	mu     sync.Mutex
}

// NewStreamDecoder builds a StreamDecoder decoding into root via sink,
// under opts.
func NewStreamDecoder(root Message, sink Sink, opts Options) (*StreamDecoder, error) {
	d, err := Create(root, sink, opts)
	if err != nil {
		return nil, err
	}
	return &StreamDecoder{driver: d}, nil
}

// Feed advances the parse by chunk, returning how many bytes were
// consumed and the first error encountered, if any.
//
// Example:
//
//	dec, _ := pbjson.NewStreamDecoder(root, sink, pbjson.Options{})
//	dec.Feed([]byte(`{"name": "sea`))
//	dec.Feed([]byte(`rch"}`))
//	if err := dec.End(); err != nil { ... }
func (sd *StreamDecoder) Feed(chunk []byte) (int, error) {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.driver.Feed(chunk)
}

// End signals that no more chunks are coming; it is an error to call End
// mid-token or before the root value has closed.
func (sd *StreamDecoder) End() error {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.driver.End()
}

// Status reports the first error encountered, or nil.
func (sd *StreamDecoder) Status() error {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.driver.Status()
}
