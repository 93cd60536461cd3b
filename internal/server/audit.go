package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nicjohnson145/kvgate/internal/api"
	"github.com/nicjohnson145/kvgate/internal/storage"
)

func fromAuditEvent(e storage.AuditEvent) api.AuditEvent {
	return api.AuditEvent{
		ID:         e.ID,
		Operation:  e.Operation,
		SecretName: e.SecretName,
		Subject:    e.Subject,
		Status:     e.Status,
		RequestID:  e.RequestID,
		CreatedAt:  e.CreatedAt,
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return storage.DefaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxAuditLimit {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidLimit, raw)
	}
	return limit, nil
}

func (s *Server) listAuditEvents(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("secret")
	if name != "" {
		if err := s.validator.ValidateName(name); err != nil {
			s.logAndHandleError(w, r, err, "invalid secret name")
			return
		}
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.logAndHandleError(w, r, err, "invalid limit")
		return
	}

	events, err := s.store.ListAuditEvents(r.Context(), storage.AuditFilter{SecretName: name, Limit: limit})
	if err != nil {
		s.logAndHandleError(w, r, fmt.Errorf("%w: %w", ErrAuditStorage, err), "error listing audit events")
		return
	}

	out := api.AuditEventList{Events: make([]api.AuditEvent, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, fromAuditEvent(e))
	}
	s.respond(w, r, http.StatusOK, out)
}

func (s *Server) getAuditEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.store.ReadAuditEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			err = fmt.Errorf("%w: %w", ErrAuditStorage, err)
		}
		s.logAndHandleError(w, r, err, "error reading audit event")
		return
	}

	s.respond(w, r, http.StatusOK, fromAuditEvent(*event))
}
