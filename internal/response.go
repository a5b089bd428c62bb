package internal

import (
	"bytes"
	"net/http"
	"strconv"
)

// Response is a buffered HTTP response produced by handlers and passed back
// out through every middleware layer. Middleware may mutate it in place or
// return a different one.
type Response struct {
	header http.Header
	body   bytes.Buffer
	status int
}

// NewResponse creates an empty response with the given status code.
// A zero status defaults to 200.
func NewResponse(status int) *Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		status: status,
		header: make(http.Header),
	}
}

// Status returns the HTTP status code.
func (r *Response) Status() int {
	return r.status
}

// WithStatus sets the status code and returns the response.
func (r *Response) WithStatus(status int) *Response {
	r.status = status
	return r
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// WithHeader sets a header value and returns the response.
func (r *Response) WithHeader(key, value string) *Response {
	r.header.Set(key, value)
	return r
}

// Write appends p to the body. It implements io.Writer.
func (r *Response) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

// WriteString appends s to the body and returns the response.
func (r *Response) WriteString(s string) *Response {
	r.body.WriteString(s)
	return r
}

// SetBody replaces the body with b.
func (r *Response) SetBody(b []byte) *Response {
	r.body.Reset()
	r.body.Write(b)
	return r
}

// Bytes returns the body content. The slice aliases the internal buffer
// until the next mutation.
func (r *Response) Bytes() []byte {
	return r.body.Bytes()
}

// String returns the body content as a string.
func (r *Response) String() string {
	return r.body.String()
}

// Len returns the body size in bytes.
func (r *Response) Len() int {
	return r.body.Len()
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	c := &Response{
		status: r.status,
		header: r.header.Clone(),
	}
	c.body.Write(r.body.Bytes())
	return c
}

// emit writes the response to w. Body bytes are skipped when bodyless is
// true, which the host boundary uses for HEAD requests. Headers, including a
// computed Content-Length, are kept either way.
func (r *Response) emit(w http.ResponseWriter, bodyless, contentLength bool) error {
	h := w.Header()
	for k, v := range r.header {
		h[k] = v
	}
	if contentLength && h.Get("Content-Length") == "" && r.status != http.StatusNoContent && r.status >= http.StatusOK {
		h.Set("Content-Length", strconv.Itoa(r.body.Len()))
	}
	w.WriteHeader(r.status)
	if bodyless || r.body.Len() == 0 {
		return nil
	}
	_, err := w.Write(r.body.Bytes())
	return err
}

// ResponseFactory creates seed responses for adapters that need one before
// the inner chain has produced anything.
type ResponseFactory interface {
	CreateResponse(status int) *Response
}

// ResponseFactoryFunc adapts a function to ResponseFactory.
type ResponseFactoryFunc func(status int) *Response

// CreateResponse calls f(status).
func (f ResponseFactoryFunc) CreateResponse(status int) *Response {
	return f(status)
}

// DefaultResponseFactory creates plain responses with NewResponse.
var DefaultResponseFactory ResponseFactory = ResponseFactoryFunc(NewResponse)
