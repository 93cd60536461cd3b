package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/rs/zerolog"
)

type AzureConfig struct {
	Logger       zerolog.Logger
	TenantID     string
	ClientID     string
	ClientSecret string
	VaultURL     string
}

func NewAzure(conf AzureConfig) (*Azure, error) {
	if conf.VaultURL == "" {
		return nil, fmt.Errorf("azure vault url must be set")
	}

	var cred azcore.TokenCredential
	if conf.ClientSecret != "" {
		if conf.TenantID == "" || conf.ClientID == "" {
			return nil, fmt.Errorf("tenant id and client id are required alongside a client secret")
		}
		c, err := azidentity.NewClientSecretCredential(conf.TenantID, conf.ClientID, conf.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("error building client secret credential: %w", err)
		}
		cred = c
	} else {
		conf.Logger.Info().Msg("no client secret configured, using default azure credential chain")
		c, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
			TenantID: conf.TenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("error building default credential: %w", err)
		}
		cred = c
	}

	client, err := azsecrets.NewClient(conf.VaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating key vault client: %w", err)
	}

	return &Azure{
		log:    conf.Logger,
		client: client,
	}, nil
}

var _ Client = (*Azure)(nil)

type Azure struct {
	log    zerolog.Logger
	client *azsecrets.Client
}

func (a *Azure) SetSecret(ctx context.Context, params SetSecretParams) (*Secret, error) {
	resp, err := a.client.SetSecret(ctx, params.Name, azsecrets.SetSecretParameters{
		Value:            to.Ptr(params.Value),
		ContentType:      azureContentType(params.ContentType),
		SecretAttributes: azureAttributes(params.Enabled, params.ExpiresOn, params.NotBefore),
		Tags:             azureTags(params.Tags),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("error setting secret: %w", azureError(err))
	}

	return fromAzureSecret(resp.Secret), nil
}

func (a *Azure) UpdateSecretProperties(ctx context.Context, params UpdatePropertiesParams) (*SecretProperties, error) {
	if params.changesWindow() {
		versions, err := a.ListSecretVersions(ctx, params.Name)
		if err != nil {
			return nil, err
		}
		current := pickAzureVersion(versions, params.Version)
		if current == nil {
			return nil, fmt.Errorf("%v version %q: %w", params.Name, params.Version, ErrSecretNotFound)
		}
		if _, err := params.apply(current.SecretAttributes); err != nil {
			return nil, err
		}
	}

	update := azsecrets.UpdateSecretPropertiesParameters{
		ContentType: params.ContentType,
		Tags:        azureTags(params.Tags),
	}
	if params.Enabled != nil || params.ExpiresOn != nil || params.NotBefore != nil {
		update.SecretAttributes = azureAttributes(params.Enabled, params.ExpiresOn, params.NotBefore)
	}

	resp, err := a.client.UpdateSecretProperties(ctx, params.Name, params.Version, update, nil)
	if err != nil {
		return nil, fmt.Errorf("error updating secret properties: %w", azureError(err))
	}

	return &fromAzureSecret(resp.Secret).SecretProperties, nil
}

func (a *Azure) GetSecret(ctx context.Context, name string, version string) (*Secret, error) {
	resp, err := a.client.GetSecret(ctx, name, version, nil)
	if err != nil {
		return nil, fmt.Errorf("error getting secret: %w", azureError(err))
	}

	return fromAzureSecret(resp.Secret), nil
}

func (a *Azure) ListSecrets(ctx context.Context) ([]*SecretProperties, error) {
	out := []*SecretProperties{}
	pager := a.client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing secrets: %w", azureError(err))
		}
		for _, p := range page.Value {
			out = append(out, fromAzureProperties(p))
		}
	}

	return out, nil
}

func (a *Azure) ListSecretVersions(ctx context.Context, name string) ([]*SecretProperties, error) {
	out := []*SecretProperties{}
	pager := a.client.NewListSecretPropertiesVersionsPager(name, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing secret versions: %w", azureError(err))
		}
		for _, p := range page.Value {
			out = append(out, fromAzureProperties(p))
		}
	}

	// an unknown name pages through nothing rather than 404ing
	if len(out) == 0 {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}

	return out, nil
}

func (a *Azure) DeleteSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	resp, err := a.client.DeleteSecret(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("error deleting secret: %w", azureError(err))
	}

	return fromAzureDeletedSecret(resp.DeletedSecret), nil
}

func (a *Azure) GetDeletedSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	resp, err := a.client.GetDeletedSecret(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("error getting deleted secret: %w", azureError(err))
	}

	return fromAzureDeletedSecret(resp.DeletedSecret), nil
}

func (a *Azure) ListDeletedSecrets(ctx context.Context) ([]*DeletedSecret, error) {
	out := []*DeletedSecret{}
	pager := a.client.NewListDeletedSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing deleted secrets: %w", azureError(err))
		}
		for _, p := range page.Value {
			out = append(out, fromAzureDeletedProperties(p))
		}
	}

	return out, nil
}

func (a *Azure) PurgeDeletedSecret(ctx context.Context, name string) error {
	if _, err := a.client.PurgeDeletedSecret(ctx, name, nil); err != nil {
		return fmt.Errorf("error purging secret: %w", azureError(err))
	}
	return nil
}

func (a *Azure) RecoverDeletedSecret(ctx context.Context, name string) (*SecretProperties, error) {
	resp, err := a.client.RecoverDeletedSecret(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("error recovering secret: %w", azureError(err))
	}

	return &fromAzureSecret(resp.Secret).SecretProperties, nil
}

// azureError folds key vault response codes onto the package sentinels, keeping the original error in the chain
func azureError(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}

	var sentinel error
	switch respErr.StatusCode {
	case http.StatusNotFound:
		sentinel = ErrSecretNotFound
	case http.StatusConflict:
		sentinel = ErrSecretConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrPermissionDenied
	case http.StatusBadRequest:
		sentinel = ErrInvalidRequest
	case http.StatusTooManyRequests:
		sentinel = ErrThrottled
	default:
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

func azureContentType(contentType string) *string {
	if contentType == "" {
		return nil
	}
	return to.Ptr(contentType)
}

func azureAttributes(enabled *bool, expires *time.Time, notBefore *time.Time) *azsecrets.SecretAttributes {
	return &azsecrets.SecretAttributes{
		Enabled:   enabled,
		Expires:   expires,
		NotBefore: notBefore,
	}
}

func azureTags(tags map[string]string) map[string]*string {
	if tags == nil {
		return nil
	}
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = to.Ptr(v)
	}
	return out
}

func fromAzureTags(tags map[string]*string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// pickAzureVersion finds the named version, or the newest one when version is empty
func pickAzureVersion(versions []*SecretProperties, version string) *SecretProperties {
	var latest *SecretProperties
	for _, v := range versions {
		if version != "" {
			if v.Version == version {
				return v
			}
			continue
		}
		if latest == nil || (v.CreatedOn != nil && (latest.CreatedOn == nil || v.CreatedOn.After(*latest.CreatedOn))) {
			latest = v
		}
	}
	return latest
}

func fromAzureCommon(id *azsecrets.ID, attrs *azsecrets.SecretAttributes, contentType *string, tags map[string]*string) SecretProperties {
	props := SecretProperties{
		SecretAttributes: SecretAttributes{
			Tags: fromAzureTags(tags),
		},
	}
	if id != nil {
		props.Name = id.Name()
		props.Version = id.Version()
	}
	if contentType != nil {
		props.ContentType = *contentType
	}
	if attrs != nil {
		props.Enabled = attrs.Enabled
		props.ExpiresOn = attrs.Expires
		props.NotBefore = attrs.NotBefore
		props.CreatedOn = attrs.Created
		props.UpdatedOn = attrs.Updated
		if attrs.RecoveryLevel != nil {
			props.RecoveryLevel = string(*attrs.RecoveryLevel)
		}
	}
	return props
}

func fromAzureSecret(s azsecrets.Secret) *Secret {
	out := &Secret{
		SecretProperties: fromAzureCommon(s.ID, s.Attributes, s.ContentType, s.Tags),
	}
	if s.Value != nil {
		out.Value = *s.Value
	}
	return out
}

func fromAzureProperties(p *azsecrets.SecretProperties) *SecretProperties {
	props := fromAzureCommon(p.ID, p.Attributes, p.ContentType, p.Tags)
	return &props
}

func fromAzureDeletedSecret(s azsecrets.DeletedSecret) *DeletedSecret {
	out := &DeletedSecret{
		SecretProperties:   fromAzureCommon(s.ID, s.Attributes, s.ContentType, s.Tags),
		DeletedOn:          s.DeletedDate,
		ScheduledPurgeDate: s.ScheduledPurgeDate,
	}
	if s.RecoveryID != nil {
		out.RecoveryID = *s.RecoveryID
	}
	return out
}

func fromAzureDeletedProperties(p *azsecrets.DeletedSecretProperties) *DeletedSecret {
	out := &DeletedSecret{
		SecretProperties:   fromAzureCommon(p.ID, p.Attributes, p.ContentType, p.Tags),
		DeletedOn:          p.DeletedDate,
		ScheduledPurgeDate: p.ScheduledPurgeDate,
	}
	if p.RecoveryID != nil {
		out.RecoveryID = *p.RecoveryID
	}
	return out
}
