package api

import (
	"time"

	"github.com/nicjohnson145/kvgate/internal/vault"
)

type SetSecretRequest struct {
	Value       string            `json:"value"`
	ContentType string            `json:"contentType,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
	ExpiresOn   *time.Time        `json:"expiresOn,omitempty"`
	NotBefore   *time.Time        `json:"notBefore,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

func (r SetSecretRequest) ToParams(name string) vault.SetSecretParams {
	return vault.SetSecretParams{
		Name:  name,
		Value: r.Value,
		SecretAttributes: vault.SecretAttributes{
			ContentType: r.ContentType,
			Enabled:     r.Enabled,
			ExpiresOn:   r.ExpiresOn,
			NotBefore:   r.NotBefore,
			Tags:        r.Tags,
		},
	}
}

// UpdatePropertiesRequest only carries the fields being changed. Tags, when present, replace the whole set.
type UpdatePropertiesRequest struct {
	ContentType *string           `json:"contentType,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
	ExpiresOn   *time.Time        `json:"expiresOn,omitempty"`
	NotBefore   *time.Time        `json:"notBefore,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

func (r UpdatePropertiesRequest) ToParams(name string, version string) vault.UpdatePropertiesParams {
	return vault.UpdatePropertiesParams{
		Name:        name,
		Version:     version,
		ContentType: r.ContentType,
		Enabled:     r.Enabled,
		ExpiresOn:   r.ExpiresOn,
		NotBefore:   r.NotBefore,
		Tags:        r.Tags,
	}
}

type SecretProperties struct {
	Name          string            `json:"name"`
	Version       string            `json:"version,omitempty"`
	ContentType   string            `json:"contentType,omitempty"`
	Enabled       *bool             `json:"enabled,omitempty"`
	ExpiresOn     *time.Time        `json:"expiresOn,omitempty"`
	NotBefore     *time.Time        `json:"notBefore,omitempty"`
	CreatedOn     *time.Time        `json:"createdOn,omitempty"`
	UpdatedOn     *time.Time        `json:"updatedOn,omitempty"`
	RecoveryLevel string            `json:"recoveryLevel,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

type Secret struct {
	SecretProperties
	Value string `json:"value"`
}

type DeletedSecret struct {
	SecretProperties
	RecoveryID         string     `json:"recoveryId,omitempty"`
	DeletedOn          *time.Time `json:"deletedOn,omitempty"`
	ScheduledPurgeDate *time.Time `json:"scheduledPurgeDate,omitempty"`
}

type SecretList struct {
	Secrets []SecretProperties `json:"secrets"`
}

type DeletedSecretList struct {
	Secrets []DeletedSecret `json:"secrets"`
}

type AuditEvent struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	SecretName string    `json:"secretName"`
	Subject    string    `json:"subject,omitempty"`
	Status     int       `json:"status"`
	RequestID  string    `json:"requestId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AuditEventList struct {
	Events []AuditEvent `json:"events"`
}

type ErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

func FromProperties(p *vault.SecretProperties) SecretProperties {
	return SecretProperties{
		Name:          p.Name,
		Version:       p.Version,
		ContentType:   p.ContentType,
		Enabled:       p.Enabled,
		ExpiresOn:     p.ExpiresOn,
		NotBefore:     p.NotBefore,
		CreatedOn:     p.CreatedOn,
		UpdatedOn:     p.UpdatedOn,
		RecoveryLevel: p.RecoveryLevel,
		Tags:          p.Tags,
	}
}

func FromSecret(s *vault.Secret) Secret {
	return Secret{
		SecretProperties: FromProperties(&s.SecretProperties),
		Value:            s.Value,
	}
}

func FromDeletedSecret(s *vault.DeletedSecret) DeletedSecret {
	return DeletedSecret{
		SecretProperties:   FromProperties(&s.SecretProperties),
		RecoveryID:         s.RecoveryID,
		DeletedOn:          s.DeletedOn,
		ScheduledPurgeDate: s.ScheduledPurgeDate,
	}
}

func FromPropertiesList(in []*vault.SecretProperties) SecretList {
	out := SecretList{Secrets: make([]SecretProperties, 0, len(in))}
	for _, p := range in {
		out.Secrets = append(out.Secrets, FromProperties(p))
	}
	return out
}

func FromDeletedList(in []*vault.DeletedSecret) DeletedSecretList {
	out := DeletedSecretList{Secrets: make([]DeletedSecret, 0, len(in))}
	for _, s := range in {
		out.Secrets = append(out.Secrets, FromDeletedSecret(s))
	}
	return out
}
