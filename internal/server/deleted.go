package server

import (
	"net/http"

	"github.com/nicjohnson145/kvgate/internal/api"
)

func (s *Server) listDeletedSecrets(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.vault.ListDeletedSecrets(r.Context())
	s.observe(opListDeletedSecrets, err)
	if err != nil {
		s.logAndHandleError(w, r, err, "error listing deleted secrets")
		return
	}

	s.respond(w, r, http.StatusOK, api.FromDeletedList(deleted))
}

func (s *Server) getDeletedSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.validator.ValidateName(name); err != nil {
		s.logAndHandleError(w, r, err, "invalid secret name")
		return
	}

	deleted, err := s.vault.GetDeletedSecret(r.Context(), name)
	s.observe(opGetDeletedSecret, err)
	if err != nil {
		s.logAndHandleError(w, r, err, "error getting deleted secret")
		return
	}

	s.respond(w, r, http.StatusOK, api.FromDeletedSecret(deleted))
}

func (s *Server) purgeDeletedSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	status := s.doPurgeDeletedSecret(w, r, name)
	s.audit(r, opPurgeDeletedSecret, name, status)
	if status == http.StatusNoContent {
		s.respond(w, r, status, nil)
	}
}

func (s *Server) doPurgeDeletedSecret(w http.ResponseWriter, r *http.Request, name string) int {
	if err := s.validator.ValidateName(name); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret name")
	}

	err := s.vault.PurgeDeletedSecret(r.Context(), name)
	s.observe(opPurgeDeletedSecret, err)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error purging secret")
	}

	s.logger(r).Info().Str("name", name).Msg("secret purged")
	return http.StatusNoContent
}

func (s *Server) recoverDeletedSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	status, body := s.doRecoverDeletedSecret(w, r, name)
	s.audit(r, opRecoverDeletedSecret, name, status)
	if body != nil {
		s.respond(w, r, status, body)
	}
}

func (s *Server) doRecoverDeletedSecret(w http.ResponseWriter, r *http.Request, name string) (int, any) {
	if err := s.validator.ValidateName(name); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret name"), nil
	}

	props, err := s.vault.RecoverDeletedSecret(r.Context(), name)
	s.observe(opRecoverDeletedSecret, err)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error recovering secret"), nil
	}

	s.logger(r).Info().Str("name", name).Msg("secret recovered")
	return http.StatusOK, api.FromProperties(props)
}
