package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/interceptors"
	"github.com/nicjohnson145/kvgate/internal/metrics"
	"github.com/nicjohnson145/kvgate/internal/storage"
	"github.com/nicjohnson145/kvgate/internal/validation"
	"github.com/nicjohnson145/kvgate/internal/vault"
	"github.com/rs/zerolog"
)

const (
	// request bodies carry at most a 25600 byte value plus attributes, anything far beyond that is refused unread
	maxBodyBytes = 128 * 1024

	maxAuditLimit = 1000
)

var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrInvalidBody  = errors.New("request body could not be decoded")
	ErrInvalidLimit = errors.New("limit must be an integer between 1 and 1000")
	ErrAuditStorage = errors.New("audit storage failure")
)

type ServerConfig struct {
	Logger         zerolog.Logger
	VaultClient    vault.Client
	StorageClient  storage.Client
	Validator      *validation.Validator
	Metrics        *metrics.Collector
	MetricsHandler http.Handler

	NowFunc func() time.Time // for unit tests
}

func NewServer(conf ServerConfig) *Server {
	s := &Server{
		log:            conf.Logger,
		vault:          conf.VaultClient,
		store:          conf.StorageClient,
		validator:      conf.Validator,
		metrics:        conf.Metrics,
		metricsHandler: conf.MetricsHandler,
		nowFunc:        conf.NowFunc,
	}
	if s.nowFunc == nil {
		s.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector()
	}

	return s
}

type Server struct {
	log            zerolog.Logger
	vault          vault.Client
	store          storage.Client
	validator      *validation.Validator
	metrics        *metrics.Collector
	metricsHandler http.Handler
	nowFunc        func() time.Time
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /secrets/{name}", s.setSecret)
	mux.HandleFunc("PATCH /secrets/{name}", s.updateSecretProperties)
	mux.HandleFunc("GET /secrets/{name}", s.getSecret)
	mux.HandleFunc("GET /secrets", s.listSecrets)
	mux.HandleFunc("GET /secrets/{name}/versions", s.listSecretVersions)
	mux.HandleFunc("DELETE /secrets/{name}", s.deleteSecret)

	mux.HandleFunc("GET /deletedsecrets", s.listDeletedSecrets)
	mux.HandleFunc("GET /deletedsecrets/{name}", s.getDeletedSecret)
	mux.HandleFunc("DELETE /deletedsecrets/{name}", s.purgeDeletedSecret)
	mux.HandleFunc("POST /deletedsecrets/{name}/recover", s.recoverDeletedSecret)

	mux.HandleFunc("GET /audit", s.listAuditEvents)
	mux.HandleFunc("GET /audit/{id}", s.getAuditEvent)

	mux.HandleFunc("GET /healthz", s.healthz)
	if s.metricsHandler != nil {
		mux.Handle("GET /metrics", s.metricsHandler)
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) logger(r *http.Request) *zerolog.Logger {
	l := zerolog.Ctx(r.Context())
	if l.GetLevel() == zerolog.Disabled {
		return &s.log
	}
	return l
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if body == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger(r).Err(err).Msg("error writing response")
	}
}

// statusFor folds an error onto the HTTP status it is reported with
func statusFor(err error) int {
	switch true {
	case errors.Is(err, validation.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidLimit):
		return http.StatusBadRequest
	case errors.Is(err, vault.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, vault.ErrSecretNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vault.ErrSecretConflict):
		return http.StatusConflict
	case errors.Is(err, vault.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, vault.ErrSecretDisabled):
		return http.StatusForbidden
	case errors.Is(err, vault.ErrThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, vault.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, ErrAuditStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// logAndHandleError writes the error response and returns the status it used
func (s *Server) logAndHandleError(w http.ResponseWriter, r *http.Request, err error, msg string) int {
	str := "an error occurred"
	if msg != "" {
		str = msg
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger(r).Err(err).Msg(str)
	} else {
		s.logger(r).Debug().Err(err).Int("status", status).Msg(str)
	}

	resp := api.ErrorResponse{Error: err.Error()}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Error = "validation failed"
		resp.Violations = verr.Violations
	}
	if status == http.StatusBadGateway || status == http.StatusInternalServerError {
		// provider detail stays in the logs
		resp.Error = http.StatusText(status)
	}

	s.respond(w, r, status, resp)
	return status
}

func outcome(err error) string {
	switch true {
	case err == nil:
		return "success"
	case errors.Is(err, vault.ErrSecretNotFound):
		return "not_found"
	case errors.Is(err, vault.ErrSecretConflict):
		return "conflict"
	case errors.Is(err, vault.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, vault.ErrSecretDisabled):
		return "disabled"
	case errors.Is(err, vault.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, vault.ErrThrottled):
		return "throttled"
	case errors.Is(err, vault.ErrNotSupported):
		return "not_supported"
	default:
		return "error"
	}
}

func (s *Server) observe(operation string, err error) {
	s.metrics.ObserveVaultOperation(operation, outcome(err))
}

// audit records a mutating call. A failure to record is logged, the caller's response is not affected.
func (s *Server) audit(r *http.Request, operation string, name string, status int) {
	event := &storage.AuditEvent{
		Operation:  operation,
		SecretName: name,
		Subject:    interceptors.SubjectFromCtx(r.Context()),
		Status:     status,
		RequestID:  interceptors.RequestIDFromCtx(r.Context()),
		CreatedAt:  s.nowFunc(),
	}
	if err := s.store.WriteAuditEvent(r.Context(), event); err != nil {
		s.logger(r).Err(err).Str("operation", operation).Msg("error writing audit event")
	}
}
