package vault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog"
)

const hashicorpValueKey = "value"

type HashicorpConfig struct {
	Logger    zerolog.Logger
	Address   string
	Token     string
	Namespace string
	Mount     string

	NowFunc func() time.Time // for unit tests
}

func NewHashicorp(conf HashicorpConfig) (*Hashicorp, error) {
	if conf.Address == "" {
		return nil, fmt.Errorf("hashicorp vault address must be set")
	}
	if conf.Mount == "" {
		return nil, fmt.Errorf("hashicorp vault mount must be set")
	}

	apiConf := api.DefaultConfig()
	apiConf.Address = conf.Address

	client, err := api.NewClient(apiConf)
	if err != nil {
		return nil, fmt.Errorf("error creating vault client: %w", err)
	}
	if conf.Token != "" {
		client.SetToken(conf.Token)
	}
	if conf.Namespace != "" {
		client.SetNamespace(conf.Namespace)
	}

	h := &Hashicorp{
		log:     conf.Logger,
		client:  client,
		kv:      client.KVv2(conf.Mount),
		mount:   strings.Trim(conf.Mount, "/"),
		nowFunc: conf.NowFunc,
	}
	if h.nowFunc == nil {
		h.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}

	return h, nil
}

var _ Client = (*Hashicorp)(nil)

// Hashicorp maps secrets onto a KV v2 mount. Attributes live in the secret's custom metadata and so are shared
// by every version. Soft-delete marks every live version deleted, recovery undeletes them again.
type Hashicorp struct {
	log     zerolog.Logger
	client  *api.Client
	kv      *api.KVv2
	mount   string
	nowFunc func() time.Time
}

func (h *Hashicorp) SetSecret(ctx context.Context, params SetSecretParams) (*Secret, error) {
	meta, err := h.kv.GetMetadata(ctx, params.Name)
	if err != nil && !errors.Is(hashicorpError(err), ErrSecretNotFound) {
		return nil, fmt.Errorf("error reading metadata: %w", hashicorpError(err))
	}
	if meta != nil && h.isSoftDeleted(meta) {
		return nil, fmt.Errorf("%v is soft-deleted: %w", params.Name, ErrSecretConflict)
	}

	// attributes land before the value so a new version is never readable under the old ones
	put := api.KVMetadataPutInput{
		CustomMetadata: toAnyMap(encodeAttributes(params.SecretAttributes)),
	}
	if meta != nil {
		put.CASRequired = meta.CASRequired
		put.DeleteVersionAfter = meta.DeleteVersionAfter
		put.MaxVersions = meta.MaxVersions
	}
	if err := h.kv.PutMetadata(ctx, params.Name, put); err != nil {
		return nil, fmt.Errorf("error writing secret metadata: %w", hashicorpError(err))
	}

	written, err := h.kv.Put(ctx, params.Name, map[string]any{hashicorpValueKey: params.Value})
	if err != nil {
		h.restoreMetadata(ctx, params.Name, meta)
		return nil, fmt.Errorf("error writing secret: %w", hashicorpError(err))
	}

	secret := &Secret{
		SecretProperties: SecretProperties{
			SecretAttributes: params.SecretAttributes,
			Name:             params.Name,
		},
		Value: params.Value,
	}
	if written.VersionMetadata != nil {
		created := written.VersionMetadata.CreatedTime
		secret.Version = strconv.Itoa(written.VersionMetadata.Version)
		secret.CreatedOn = &created
		secret.UpdatedOn = &created
	}

	return secret, nil
}

func (h *Hashicorp) UpdateSecretProperties(ctx context.Context, params UpdatePropertiesParams) (*SecretProperties, error) {
	meta, err := h.liveMetadata(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	if params.Version != "" && params.Version != strconv.Itoa(meta.CurrentVersion) {
		return nil, fmt.Errorf("properties can only be updated on the current version: %w", ErrNotSupported)
	}

	attrs, err := decodeAttributes(toStringMap(meta.CustomMetadata))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}
	attrs, err = params.apply(attrs)
	if err != nil {
		return nil, err
	}

	err = h.kv.PutMetadata(ctx, params.Name, api.KVMetadataPutInput{
		CASRequired:        meta.CASRequired,
		CustomMetadata:     toAnyMap(encodeAttributes(attrs)),
		DeleteVersionAfter: meta.DeleteVersionAfter,
		MaxVersions:        meta.MaxVersions,
	})
	if err != nil {
		return nil, fmt.Errorf("error writing secret metadata: %w", hashicorpError(err))
	}

	updated, err := h.liveMetadata(ctx, params.Name)
	if err != nil {
		return nil, err
	}

	return propertiesFromMetadata(params.Name, updated)
}

func (h *Hashicorp) GetSecret(ctx context.Context, name string, version string) (*Secret, error) {
	v := 0
	if version != "" {
		var convErr error
		v, convErr = strconv.Atoi(version)
		if convErr != nil {
			return nil, fmt.Errorf("version %q is not numeric: %w", version, ErrInvalidRequest)
		}
	}

	// older versions of a soft-deleted secret are hidden along with the current one
	meta, err := h.liveMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	var kvSecret *api.KVSecret
	if v == 0 {
		kvSecret, err = h.kv.Get(ctx, name)
	} else {
		vm, ok := meta.Versions[strconv.Itoa(v)]
		if !ok || h.versionDeleted(vm) {
			return nil, fmt.Errorf("%v version %v: %w", name, version, ErrSecretNotFound)
		}
		kvSecret, err = h.kv.GetVersion(ctx, name, v)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading secret: %w", hashicorpError(err))
	}

	if kvSecret == nil || kvSecret.Data == nil {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}
	if vm := kvSecret.VersionMetadata; vm != nil && (vm.Destroyed || h.deletedBy(vm.DeletionTime)) {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}

	attrs, err := decodeAttributes(toStringMap(kvSecret.CustomMetadata))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}
	if !attrs.IsActive(h.nowFunc()) {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretDisabled)
	}

	value, ok := kvSecret.Data[hashicorpValueKey].(string)
	if !ok {
		return nil, fmt.Errorf("secret %v has no string %q field: %w", name, hashicorpValueKey, ErrInvalidRequest)
	}

	secret := &Secret{
		SecretProperties: SecretProperties{
			SecretAttributes: attrs,
			Name:             name,
		},
		Value: value,
	}
	if vm := kvSecret.VersionMetadata; vm != nil {
		created := vm.CreatedTime
		secret.Version = strconv.Itoa(vm.Version)
		secret.CreatedOn = &created
		secret.UpdatedOn = &created
	}

	return secret, nil
}

func (h *Hashicorp) ListSecrets(ctx context.Context) ([]*SecretProperties, error) {
	names, err := h.listNames(ctx)
	if err != nil {
		return nil, err
	}

	out := []*SecretProperties{}
	for _, name := range names {
		meta, err := h.kv.GetMetadata(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("error reading metadata for %v: %w", name, hashicorpError(err))
		}
		if !h.isLive(meta) {
			continue
		}
		props, err := propertiesFromMetadata(name, meta)
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}

	return out, nil
}

func (h *Hashicorp) ListSecretVersions(ctx context.Context, name string) ([]*SecretProperties, error) {
	meta, err := h.liveMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	attrs, err := decodeAttributes(toStringMap(meta.CustomMetadata))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}

	versions := make([]int, 0, len(meta.Versions))
	for k, vm := range meta.Versions {
		if vm.Destroyed {
			continue
		}
		v, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("unexpected version key %q: %w", k, err)
		}
		versions = append(versions, v)
	}
	sort.Ints(versions)

	out := make([]*SecretProperties, 0, len(versions))
	for _, v := range versions {
		vm := meta.Versions[strconv.Itoa(v)]
		created := vm.CreatedTime
		out = append(out, &SecretProperties{
			SecretAttributes: attrs,
			Name:             name,
			Version:          strconv.Itoa(v),
			CreatedOn:        &created,
			UpdatedOn:        &created,
		})
	}

	return out, nil
}

func (h *Hashicorp) DeleteSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	meta, err := h.liveMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	versions := h.versionsWhere(meta, func(vm api.KVVersionMetadata) bool {
		return !h.versionDeleted(vm)
	})
	if err := h.kv.DeleteVersions(ctx, name, versions); err != nil {
		return nil, fmt.Errorf("error deleting secret: %w", hashicorpError(err))
	}

	return h.GetDeletedSecret(ctx, name)
}

func (h *Hashicorp) GetDeletedSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	meta, err := h.kv.GetMetadata(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading metadata: %w", hashicorpError(err))
	}
	if !h.isSoftDeleted(meta) {
		return nil, fmt.Errorf("%v is not deleted: %w", name, ErrSecretNotFound)
	}

	return h.deletedFromMetadata(name, meta)
}

func (h *Hashicorp) ListDeletedSecrets(ctx context.Context) ([]*DeletedSecret, error) {
	names, err := h.listNames(ctx)
	if err != nil {
		return nil, err
	}

	out := []*DeletedSecret{}
	for _, name := range names {
		meta, err := h.kv.GetMetadata(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("error reading metadata for %v: %w", name, hashicorpError(err))
		}
		if !h.isSoftDeleted(meta) {
			continue
		}
		deleted, err := h.deletedFromMetadata(name, meta)
		if err != nil {
			return nil, err
		}
		out = append(out, deleted)
	}

	return out, nil
}

func (h *Hashicorp) PurgeDeletedSecret(ctx context.Context, name string) error {
	if _, err := h.GetDeletedSecret(ctx, name); err != nil {
		return err
	}

	if err := h.kv.DeleteMetadata(ctx, name); err != nil {
		return fmt.Errorf("error purging secret: %w", hashicorpError(err))
	}

	return nil
}

func (h *Hashicorp) RecoverDeletedSecret(ctx context.Context, name string) (*SecretProperties, error) {
	meta, err := h.kv.GetMetadata(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading metadata: %w", hashicorpError(err))
	}
	if !h.isSoftDeleted(meta) {
		return nil, fmt.Errorf("%v is not deleted: %w", name, ErrSecretNotFound)
	}

	versions := h.versionsWhere(meta, func(vm api.KVVersionMetadata) bool {
		return !vm.Destroyed && h.deletedBy(vm.DeletionTime)
	})
	if err := h.kv.Undelete(ctx, name, versions); err != nil {
		return nil, fmt.Errorf("error recovering secret: %w", hashicorpError(err))
	}

	recovered, err := h.liveMetadata(ctx, name)
	if err != nil {
		return nil, err
	}

	return propertiesFromMetadata(name, recovered)
}

// liveMetadata returns metadata for a secret whose current version is readable
func (h *Hashicorp) liveMetadata(ctx context.Context, name string) (*api.KVMetadata, error) {
	meta, err := h.kv.GetMetadata(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading metadata: %w", hashicorpError(err))
	}
	if !h.isLive(meta) {
		return nil, fmt.Errorf("%v is deleted: %w", name, ErrSecretNotFound)
	}
	return meta, nil
}

// restoreMetadata puts back the custom metadata a failed write replaced. A path that held nothing before loses
// the metadata-only entry instead.
func (h *Hashicorp) restoreMetadata(ctx context.Context, name string, prev *api.KVMetadata) {
	var err error
	if prev == nil {
		err = h.kv.DeleteMetadata(ctx, name)
	} else {
		err = h.kv.PutMetadata(ctx, name, api.KVMetadataPutInput{
			CASRequired:        prev.CASRequired,
			CustomMetadata:     prev.CustomMetadata,
			DeleteVersionAfter: prev.DeleteVersionAfter,
			MaxVersions:        prev.MaxVersions,
		})
	}
	if err != nil {
		h.log.Err(err).Str("name", name).Msg("error restoring metadata after failed write")
	}
}

func (h *Hashicorp) versionsWhere(meta *api.KVMetadata, keep func(api.KVVersionMetadata) bool) []int {
	out := []int{}
	for k, vm := range meta.Versions {
		v, err := strconv.Atoi(k)
		if err != nil || !keep(vm) {
			continue
		}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// deletedBy reports whether a deletion time has passed. Mounts with delete_version_after stamp future times on
// versions that are still readable.
func (h *Hashicorp) deletedBy(ts time.Time) bool {
	return !ts.IsZero() && !ts.After(h.nowFunc())
}

func (h *Hashicorp) versionDeleted(vm api.KVVersionMetadata) bool {
	return vm.Destroyed || h.deletedBy(vm.DeletionTime)
}

// isLive reports whether the current version can be read
func (h *Hashicorp) isLive(meta *api.KVMetadata) bool {
	vm, ok := meta.Versions[strconv.Itoa(meta.CurrentVersion)]
	return ok && !h.versionDeleted(vm)
}

func (h *Hashicorp) isSoftDeleted(meta *api.KVMetadata) bool {
	vm, ok := meta.Versions[strconv.Itoa(meta.CurrentVersion)]
	return ok && !vm.Destroyed && h.deletedBy(vm.DeletionTime)
}

func (h *Hashicorp) listNames(ctx context.Context) ([]string, error) {
	resp, err := h.client.Logical().ListWithContext(ctx, path.Join(h.mount, "metadata"))
	if err != nil {
		return nil, fmt.Errorf("error listing secrets: %w", hashicorpError(err))
	}
	if resp == nil || resp.Data == nil {
		return []string{}, nil
	}

	keys, ok := resp.Data["keys"].([]any)
	if !ok {
		return []string{}, nil
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name, ok := k.(string)
		// folders hold nothing we wrote
		if !ok || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (h *Hashicorp) deletedFromMetadata(name string, meta *api.KVMetadata) (*DeletedSecret, error) {
	props, err := propertiesFromMetadata(name, meta)
	if err != nil {
		return nil, err
	}

	deleted := &DeletedSecret{
		SecretProperties: *props,
		RecoveryID:       path.Join(h.mount, "metadata", name),
	}
	if vm, ok := meta.Versions[strconv.Itoa(meta.CurrentVersion)]; ok {
		deletedOn := vm.DeletionTime
		deleted.DeletedOn = &deletedOn
	}

	return deleted, nil
}

func propertiesFromMetadata(name string, meta *api.KVMetadata) (*SecretProperties, error) {
	attrs, err := decodeAttributes(toStringMap(meta.CustomMetadata))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}

	created := meta.CreatedTime
	updated := meta.UpdatedTime

	return &SecretProperties{
		SecretAttributes: attrs,
		Name:             name,
		Version:          strconv.Itoa(meta.CurrentVersion),
		CreatedOn:        &created,
		UpdatedOn:        &updated,
	}, nil
}

func hashicorpError(err error) error {
	if errors.Is(err, api.ErrSecretNotFound) {
		return fmt.Errorf("%w: %w", ErrSecretNotFound, err)
	}

	var apiErr *api.ResponseError
	if !errors.As(err, &apiErr) {
		return err
	}

	var sentinel error
	switch apiErr.StatusCode {
	case http.StatusNotFound:
		sentinel = ErrSecretNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrPermissionDenied
	case http.StatusBadRequest:
		sentinel = ErrInvalidRequest
	case http.StatusConflict, http.StatusPreconditionFailed:
		sentinel = ErrSecretConflict
	case http.StatusTooManyRequests:
		sentinel = ErrThrottled
	default:
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

func toAnyMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func toStringMap(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
