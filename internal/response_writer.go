package internal

import (
	"net/http"
	"sync"
)

// responseRecorder is an http.ResponseWriter that captures everything written
// to it into a Response. It lets net/http handlers and middleware run inside
// the pipeline.
type responseRecorder struct {
	resp    *Response
	header  http.Header
	written bool
	mu      sync.Mutex
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{
		resp:   NewResponse(http.StatusOK),
		header: make(http.Header),
	}
}

// Header returns the header map that will be snapshotted on first write.
func (w *responseRecorder) Header() http.Header {
	return w.header
}

// WriteHeader records the status code. Only the first call has effect.
func (w *responseRecorder) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written {
		return
	}
	w.written = true
	w.resp.status = code
	w.resp.header = w.header.Clone()
}

// Write appends to the captured body, sending an implicit 200 first.
func (w *responseRecorder) Write(b []byte) (int, error) {
	w.mu.Lock()
	if !w.written {
		w.written = true
		w.resp.header = w.header.Clone()
	}
	w.mu.Unlock()
	return w.resp.Write(b)
}

// Written returns true if the status line has been recorded.
func (w *responseRecorder) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher. Everything is buffered, so it only commits
// the headers.
func (w *responseRecorder) Flush() {
	if !w.Written() {
		w.WriteHeader(http.StatusOK)
	}
}

// result returns the captured response. Headers set after the last write are
// included for handlers that never wrote anything.
func (w *responseRecorder) result() *Response {
	if !w.Written() {
		w.resp.header = w.header.Clone()
	}
	return w.resp
}

// writeInto copies resp onto w, used when an inner pipeline response has to
// flow through a net/http middleware.
func writeInto(w http.ResponseWriter, resp *Response) {
	h := w.Header()
	for k, v := range resp.header {
		h[k] = v
	}
	w.WriteHeader(resp.status)
	if resp.Len() > 0 {
		_, _ = w.Write(resp.Bytes())
	}
}
