package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip request bodies and compresses responses for clients
// that accept gzip. Responses without a body (204, 304) pass through
// untouched.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if hasGzip(req.Header.Get("Content-Encoding")) && req.Body != nil {
			body, err := inflate(req.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			req.Body = body
			req.Header.Del("Content-Encoding")
		}

		if !hasGzip(req.Header.Get("Accept-Encoding")) {
			next.ServeHTTP(w, req)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		defer gzipWriters.Put(zw)

		gw := &gzipResponseWriter{ResponseWriter: w, gzipWriter: zw}
		defer gw.Close()

		next.ServeHTTP(gw, req)
	})
}

func hasGzip(header string) bool {
	return strings.Contains(header, "gzip")
}

// inflate wraps body in a pooled gzip reader that returns to the pool on
// Close.
func inflate(body io.Reader) (io.ReadCloser, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}

	return &wrappedReadCloser{
		Reader: zr,
		OnClose: func() {
			zr.Close()
			gzipReaders.Put(zr)
		},
	}, nil
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer

	wroteHeader bool
	compressing bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if bodyAllowed(statusCode) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.compressing = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.compressing {
		return w.ResponseWriter.Write(data)
	}
	return w.gzipWriter.Write(data)
}

// Close flushes the gzip stream. It is a no-op when nothing was compressed.
func (w *gzipResponseWriter) Close() error {
	if !w.compressing {
		return nil
	}
	return w.gzipWriter.Close()
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
