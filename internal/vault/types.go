package vault

import (
	"fmt"
	"time"
)

type SecretAttributes struct {
	ContentType string
	Enabled     *bool
	ExpiresOn   *time.Time
	NotBefore   *time.Time
	Tags        map[string]string
}

type SecretProperties struct {
	SecretAttributes

	Name          string
	Version       string
	CreatedOn     *time.Time
	UpdatedOn     *time.Time
	RecoveryLevel string
}

type Secret struct {
	SecretProperties

	Value string
}

type DeletedSecret struct {
	SecretProperties

	RecoveryID         string
	DeletedOn          *time.Time
	ScheduledPurgeDate *time.Time
}

type SetSecretParams struct {
	SecretAttributes

	Name  string
	Value string
}

// UpdatePropertiesParams carries a partial update, nil fields are left as they are
type UpdatePropertiesParams struct {
	Name        string
	Version     string
	ContentType *string
	Enabled     *bool
	ExpiresOn   *time.Time
	NotBefore   *time.Time
	Tags        map[string]string
}

// IsActive reports whether the attributes allow the secret value to be read at the given time
func (a SecretAttributes) IsActive(now time.Time) bool {
	if a.Enabled != nil && !*a.Enabled {
		return false
	}
	if a.NotBefore != nil && now.Before(*a.NotBefore) {
		return false
	}
	if a.ExpiresOn != nil && !now.Before(*a.ExpiresOn) {
		return false
	}
	return true
}

// changesWindow reports whether the update touches only one end of the validity window, so the stored other end
// decides whether the result is valid
func (p UpdatePropertiesParams) changesWindow() bool {
	return (p.NotBefore == nil) != (p.ExpiresOn == nil)
}

// apply merges a partial update onto a copy of the attributes. The merged validity window must not be empty.
func (p UpdatePropertiesParams) apply(attrs SecretAttributes) (SecretAttributes, error) {
	if p.ContentType != nil {
		attrs.ContentType = *p.ContentType
	}
	if p.Enabled != nil {
		enabled := *p.Enabled
		attrs.Enabled = &enabled
	}
	if p.ExpiresOn != nil {
		expires := *p.ExpiresOn
		attrs.ExpiresOn = &expires
	}
	if p.NotBefore != nil {
		notBefore := *p.NotBefore
		attrs.NotBefore = &notBefore
	}
	if p.Tags != nil {
		tags := make(map[string]string, len(p.Tags))
		for k, v := range p.Tags {
			tags[k] = v
		}
		attrs.Tags = tags
	}
	if attrs.NotBefore != nil && attrs.ExpiresOn != nil && !attrs.NotBefore.Before(*attrs.ExpiresOn) {
		return attrs, fmt.Errorf(
			"notBefore %v must be before expiresOn %v: %w",
			attrs.NotBefore.Format(time.RFC3339), attrs.ExpiresOn.Format(time.RFC3339), ErrInvalidRequest,
		)
	}
	return attrs, nil
}
