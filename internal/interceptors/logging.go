package interceptors

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// request bodies past this are passed through without being logged in full
const maxLoggedBody = 128 * 1024

type LoggingInterceptorConfig struct {
	LogRequests  bool
	LogResponses bool
}

func logBody(logger *zerolog.Logger, msg string, body []byte) {
	evt := logger.Debug()
	if json.Valid(body) {
		evt = evt.RawJSON("body", body)
	} else {
		evt = evt.Bytes("body", body)
	}
	evt.Msg(msg)
}

func NewLoggingMiddleware(logger zerolog.Logger, conf LoggingInterceptorConfig) func(http.Handler) http.Handler {
	if conf.LogRequests {
		logger.Warn().Msg("request logging is on, this could potentially leak sensitive information and is only intended for debugging purposes")
	}
	if conf.LogResponses {
		logger.Warn().Msg("response logging is on, this could potentially leak sensitive information and is only intended for debugging purposes")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := zerolog.Ctx(r.Context())
			if reqLogger.GetLevel() == zerolog.Disabled {
				reqLogger = &logger
			}

			if conf.LogRequests && r.Body != nil {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
				if err != nil {
					reqLogger.Err(err).Msg("unable to read request body for debugging")
				}
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
				switch {
				case len(body) > maxLoggedBody:
					reqLogger.Debug().Int("limit", maxLoggedBody).Msg("request body too large to log")
				case len(body) > 0:
					logBody(reqLogger, "request body", body)
				}
			}

			rec := newResponseRecorder(w, conf.LogResponses)
			next.ServeHTTP(rec, r)

			if conf.LogResponses && rec.body.Len() > 0 {
				logBody(reqLogger, "response body", rec.body.Bytes())
			}

			reqLogger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.Status()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}
