package interceptors

import (
	"bytes"
	"net/http"
)

// responseRecorder remembers the status code written, and optionally a copy of the body
type responseRecorder struct {
	http.ResponseWriter
	status      int
	captureBody bool
	body        bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter, captureBody bool) *responseRecorder {
	if rec, ok := w.(*responseRecorder); ok && !captureBody {
		return rec
	}
	return &responseRecorder{ResponseWriter: w, captureBody: captureBody}
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	if r.captureBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
