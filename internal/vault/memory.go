package vault

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/qdm12/reprint"
	"github.com/rs/zerolog"
)

const memoryRecoveryLevel = "Recoverable+Purgeable"

type MemoryConfig struct {
	Logger    zerolog.Logger
	Retention time.Duration

	NowFunc func() time.Time // for unit tests
}

func NewMemory(conf MemoryConfig) *Memory {
	m := &Memory{
		log:       conf.Logger,
		retention: conf.Retention,
		nowFunc:   conf.NowFunc,
		mu:        &sync.RWMutex{},
		secrets:   map[string][]*Secret{},
		deleted:   map[string]*memoryDeleted{},
	}
	if m.nowFunc == nil {
		m.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}
	return m
}

var _ Client = (*Memory)(nil)

// Memory keeps secrets in process. Deleted secrets report a purge date but are never purged on their own.
type Memory struct {
	log       zerolog.Logger
	retention time.Duration
	nowFunc   func() time.Time

	mu      *sync.RWMutex
	secrets map[string][]*Secret
	deleted map[string]*memoryDeleted
}

type memoryDeleted struct {
	versions []*Secret
	record   *DeletedSecret
}

func (m *Memory) now() time.Time {
	return m.nowFunc()
}

func (m *Memory) SetSecret(ctx context.Context, params SetSecretParams) (*Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.deleted[params.Name]; ok {
		return nil, fmt.Errorf("%v is soft-deleted: %w", params.Name, ErrSecretConflict)
	}

	now := m.now()
	attrs := params.SecretAttributes
	if attrs.Enabled == nil {
		enabled := true
		attrs.Enabled = &enabled
	}

	secret := &Secret{
		SecretProperties: SecretProperties{
			SecretAttributes: attrs,
			Name:             params.Name,
			Version:          ulid.Make().String(),
			CreatedOn:        &now,
			UpdatedOn:        &now,
			RecoveryLevel:    memoryRecoveryLevel,
		},
		Value: params.Value,
	}

	stored, err := m.clone(secret)
	if err != nil {
		return nil, err
	}
	m.secrets[params.Name] = append(m.secrets[params.Name], stored)
	m.log.Debug().Str("name", params.Name).Str("version", secret.Version).Msg("stored new secret version")

	return secret, nil
}

func (m *Memory) UpdateSecretProperties(ctx context.Context, params UpdatePropertiesParams) (*SecretProperties, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	secret, err := m.find(params.Name, params.Version)
	if err != nil {
		return nil, err
	}

	attrs, err := params.apply(secret.SecretAttributes)
	if err != nil {
		return nil, err
	}

	now := m.now()
	secret.SecretAttributes = attrs
	secret.UpdatedOn = &now

	out, err := m.clone(secret)
	if err != nil {
		return nil, err
	}
	return &out.SecretProperties, nil
}

func (m *Memory) GetSecret(ctx context.Context, name string, version string) (*Secret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, err := m.find(name, version)
	if err != nil {
		return nil, err
	}
	if !secret.IsActive(m.now()) {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretDisabled)
	}

	return m.clone(secret)
}

func (m *Memory) ListSecrets(ctx context.Context) ([]*SecretProperties, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SecretProperties, 0, len(m.secrets))
	for _, versions := range m.secrets {
		props, err := m.cloneProperties(versions[len(versions)-1])
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (m *Memory) ListSecretVersions(ctx context.Context, name string) ([]*SecretProperties, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	versions, ok := m.secrets[name]
	if !ok {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}

	out := make([]*SecretProperties, 0, len(versions))
	for _, v := range versions {
		props, err := m.cloneProperties(v)
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}

	return out, nil
}

func (m *Memory) DeleteSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	versions, ok := m.secrets[name]
	if !ok {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}

	now := m.now()
	purgeAt := now.Add(m.retention)
	record := &DeletedSecret{
		SecretProperties:   versions[len(versions)-1].SecretProperties,
		RecoveryID:         "memory://deletedsecrets/" + name,
		DeletedOn:          &now,
		ScheduledPurgeDate: &purgeAt,
	}

	stored := &DeletedSecret{}
	if err := reprint.FromTo(record, stored); err != nil {
		return nil, fmt.Errorf("error cloning deleted secret: %w", err)
	}

	delete(m.secrets, name)
	m.deleted[name] = &memoryDeleted{
		versions: versions,
		record:   stored,
	}

	return record, nil
}

func (m *Memory) GetDeletedSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.deleted[name]
	if !ok {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}

	return m.cloneDeleted(entry.record)
}

func (m *Memory) ListDeletedSecrets(ctx context.Context) ([]*DeletedSecret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*DeletedSecret, 0, len(m.deleted))
	for _, entry := range m.deleted {
		rec, err := m.cloneDeleted(entry.record)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (m *Memory) PurgeDeletedSecret(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.deleted[name]; !ok {
		return fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}
	delete(m.deleted, name)
	m.log.Debug().Str("name", name).Msg("purged secret")

	return nil
}

func (m *Memory) RecoverDeletedSecret(ctx context.Context, name string) (*SecretProperties, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.deleted[name]
	if !ok {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}
	if _, ok := m.secrets[name]; ok {
		return nil, fmt.Errorf("%v already exists: %w", name, ErrSecretConflict)
	}

	delete(m.deleted, name)
	m.secrets[name] = entry.versions

	return m.cloneProperties(entry.versions[len(entry.versions)-1])
}

// find must be called with the lock held, it returns the stored pointer
func (m *Memory) find(name string, version string) (*Secret, error) {
	versions, ok := m.secrets[name]
	if !ok {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretNotFound)
	}
	if version == "" {
		return versions[len(versions)-1], nil
	}
	for _, v := range versions {
		if v.Version == version {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%v/%v: %w", name, version, ErrSecretNotFound)
}

func (m *Memory) clone(secret *Secret) (*Secret, error) {
	out := &Secret{}
	if err := reprint.FromTo(secret, out); err != nil {
		return nil, fmt.Errorf("error cloning secret: %w", err)
	}
	return out, nil
}

func (m *Memory) cloneProperties(secret *Secret) (*SecretProperties, error) {
	out := &SecretProperties{}
	if err := reprint.FromTo(&secret.SecretProperties, out); err != nil {
		return nil, fmt.Errorf("error cloning secret properties: %w", err)
	}
	return out, nil
}

func (m *Memory) cloneDeleted(record *DeletedSecret) (*DeletedSecret, error) {
	out := &DeletedSecret{}
	if err := reprint.FromTo(record, out); err != nil {
		return nil, fmt.Errorf("error cloning deleted secret: %w", err)
	}
	return out, nil
}
