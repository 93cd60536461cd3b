package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nicjohnson145/kvgate/internal/api"
)

const (
	opSetSecret              = "SetSecret"
	opUpdateSecretProperties = "UpdateSecretProperties"
	opGetSecret              = "GetSecret"
	opListSecrets            = "ListSecrets"
	opListSecretVersions     = "ListSecretVersions"
	opDeleteSecret           = "DeleteSecret"
	opGetDeletedSecret       = "GetDeletedSecret"
	opListDeletedSecrets     = "ListDeletedSecrets"
	opPurgeDeletedSecret     = "PurgeDeletedSecret"
	opRecoverDeletedSecret   = "RecoverDeletedSecret"
)

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return body, nil
}

func (s *Server) setSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	status, body := s.doSetSecret(w, r, name)
	s.audit(r, opSetSecret, name, status)
	if body != nil {
		s.respond(w, r, status, body)
	}
}

func (s *Server) doSetSecret(w http.ResponseWriter, r *http.Request, name string) (int, any) {
	if err := s.validator.ValidateName(name); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret name"), nil
	}

	raw, err := s.readBody(w, r)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error reading body"), nil
	}
	if err := s.validator.ValidateSetSecret(raw); err != nil {
		return s.logAndHandleError(w, r, err, "invalid set secret body"), nil
	}

	var req api.SetSecretRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return s.logAndHandleError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err), "error decoding body"), nil
	}

	secret, err := s.vault.SetSecret(r.Context(), req.ToParams(name))
	s.observe(opSetSecret, err)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error setting secret"), nil
	}

	s.logger(r).Info().Str("name", name).Str("version", secret.Version).Msg("secret set")
	return http.StatusOK, api.FromSecret(secret)
}

func (s *Server) updateSecretProperties(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	status, body := s.doUpdateSecretProperties(w, r, name)
	s.audit(r, opUpdateSecretProperties, name, status)
	if body != nil {
		s.respond(w, r, status, body)
	}
}

func (s *Server) doUpdateSecretProperties(w http.ResponseWriter, r *http.Request, name string) (int, any) {
	version := r.URL.Query().Get("version")
	if err := s.validator.ValidateName(name); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret name"), nil
	}
	if err := s.validator.ValidateVersion(version); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret version"), nil
	}

	raw, err := s.readBody(w, r)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error reading body"), nil
	}
	if err := s.validator.ValidateUpdateProperties(raw); err != nil {
		return s.logAndHandleError(w, r, err, "invalid update properties body"), nil
	}

	var req api.UpdatePropertiesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return s.logAndHandleError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err), "error decoding body"), nil
	}

	props, err := s.vault.UpdateSecretProperties(r.Context(), req.ToParams(name, version))
	s.observe(opUpdateSecretProperties, err)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error updating secret properties"), nil
	}

	return http.StatusOK, api.FromProperties(props)
}

func (s *Server) getSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	version := r.URL.Query().Get("version")
	if err := s.validator.ValidateName(name); err != nil {
		s.logAndHandleError(w, r, err, "invalid secret name")
		return
	}
	if err := s.validator.ValidateVersion(version); err != nil {
		s.logAndHandleError(w, r, err, "invalid secret version")
		return
	}

	secret, err := s.vault.GetSecret(r.Context(), name, version)
	s.observe(opGetSecret, err)
	if err != nil {
		s.logAndHandleError(w, r, err, "error getting secret")
		return
	}

	s.respond(w, r, http.StatusOK, api.FromSecret(secret))
}

func (s *Server) listSecrets(w http.ResponseWriter, r *http.Request) {
	props, err := s.vault.ListSecrets(r.Context())
	s.observe(opListSecrets, err)
	if err != nil {
		s.logAndHandleError(w, r, err, "error listing secrets")
		return
	}

	s.respond(w, r, http.StatusOK, api.FromPropertiesList(props))
}

func (s *Server) listSecretVersions(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.validator.ValidateName(name); err != nil {
		s.logAndHandleError(w, r, err, "invalid secret name")
		return
	}

	props, err := s.vault.ListSecretVersions(r.Context(), name)
	s.observe(opListSecretVersions, err)
	if err != nil {
		s.logAndHandleError(w, r, err, "error listing secret versions")
		return
	}

	s.respond(w, r, http.StatusOK, api.FromPropertiesList(props))
}

func (s *Server) deleteSecret(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	status, body := s.doDeleteSecret(w, r, name)
	s.audit(r, opDeleteSecret, name, status)
	if body != nil {
		s.respond(w, r, status, body)
	}
}

func (s *Server) doDeleteSecret(w http.ResponseWriter, r *http.Request, name string) (int, any) {
	if err := s.validator.ValidateName(name); err != nil {
		return s.logAndHandleError(w, r, err, "invalid secret name"), nil
	}

	deleted, err := s.vault.DeleteSecret(r.Context(), name)
	s.observe(opDeleteSecret, err)
	if err != nil {
		return s.logAndHandleError(w, r, err, "error deleting secret"), nil
	}

	s.logger(r).Info().Str("name", name).Msg("secret soft-deleted")
	return http.StatusOK, api.FromDeletedSecret(deleted)
}
