package vault

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

const awsCurrentStage = "AWSCURRENT"

// secretsManagerAPI is the slice of the secrets manager client we call
type secretsManagerAPI interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	TagResource(ctx context.Context, params *secretsmanager.TagResourceInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.TagResourceOutput, error)
	UntagResource(ctx context.Context, params *secretsmanager.UntagResourceInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.UntagResourceOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	ListSecretVersionIds(ctx context.Context, params *secretsmanager.ListSecretVersionIdsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretVersionIdsOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
	RestoreSecret(ctx context.Context, params *secretsmanager.RestoreSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.RestoreSecretOutput, error)
}

type AWSConfig struct {
	Logger             zerolog.Logger
	Region             string
	Endpoint           string
	RecoveryWindowDays int64

	// for unit tests
	API     secretsManagerAPI
	NowFunc func() time.Time
}

func NewAWS(ctx context.Context, conf AWSConfig) (*AWS, error) {
	if conf.RecoveryWindowDays < 7 || conf.RecoveryWindowDays > 30 {
		return nil, fmt.Errorf("recovery window must be between 7 and 30 days, got %v", conf.RecoveryWindowDays)
	}

	client := conf.API
	if client == nil {
		opts := []func(*awsconfig.LoadOptions) error{}
		if conf.Region != "" {
			opts = append(opts, awsconfig.WithRegion(conf.Region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("error loading aws config: %w", err)
		}
		client = secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
			if conf.Endpoint != "" {
				o.BaseEndpoint = aws.String(conf.Endpoint)
			}
		})
	}

	a := &AWS{
		log:            conf.Logger,
		client:         client,
		recoveryWindow: conf.RecoveryWindowDays,
		nowFunc:        conf.NowFunc,
	}
	if a.nowFunc == nil {
		a.nowFunc = func() time.Time {
			return time.Now().UTC()
		}
	}

	return a, nil
}

var _ Client = (*AWS)(nil)

// AWS maps secrets onto Secrets Manager. Attributes are carried as reserved tags, so like tags they apply to
// the secret as a whole rather than a single version.
type AWS struct {
	log            zerolog.Logger
	client         secretsManagerAPI
	recoveryWindow int64
	nowFunc        func() time.Time
}

func (a *AWS) SetSecret(ctx context.Context, params SetSecretParams) (*Secret, error) {
	desc, err := a.describe(ctx, params.Name)
	if err != nil && !errors.Is(err, ErrSecretNotFound) {
		return nil, err
	}

	var version string
	if desc == nil {
		out, err := a.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
			Name:         aws.String(params.Name),
			SecretString: aws.String(params.Value),
			Tags:         toAWSTags(encodeAttributes(params.SecretAttributes)),
		})
		if err != nil {
			return nil, fmt.Errorf("error creating secret: %w", awsError(err))
		}
		version = aws.ToString(out.VersionId)
	} else {
		if desc.DeletedDate != nil {
			return nil, fmt.Errorf("%v is scheduled for deletion: %w", params.Name, ErrSecretConflict)
		}

		// tags first, a new version must never be readable under the old attributes
		want := encodeAttributes(params.SecretAttributes)
		if err := a.replaceTags(ctx, params.Name, desc.Tags, want); err != nil {
			return nil, err
		}

		out, err := a.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
			SecretId:     aws.String(params.Name),
			SecretString: aws.String(params.Value),
		})
		if err != nil {
			if restoreErr := a.replaceTags(ctx, params.Name, toAWSTags(want), fromAWSTags(desc.Tags)); restoreErr != nil {
				a.log.Err(restoreErr).Str("name", params.Name).Msg("error restoring tags after failed write")
			}
			return nil, fmt.Errorf("error writing secret value: %w", awsError(err))
		}
		version = aws.ToString(out.VersionId)
	}

	desc, err = a.describe(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	props, err := awsProperties(aws.ToString(desc.Name), desc.Tags, desc.CreatedDate, desc.LastChangedDate, desc.VersionIdsToStages)
	if err != nil {
		return nil, err
	}
	props.Version = version

	return &Secret{
		SecretProperties: *props,
		Value:            params.Value,
	}, nil
}

func (a *AWS) UpdateSecretProperties(ctx context.Context, params UpdatePropertiesParams) (*SecretProperties, error) {
	desc, err := a.liveDescribe(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	if params.Version != "" && params.Version != currentAWSVersion(desc.VersionIdsToStages) {
		return nil, fmt.Errorf("properties can only be updated on the current version: %w", ErrNotSupported)
	}

	attrs, err := decodeAttributes(fromAWSTags(desc.Tags))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}
	attrs, err = params.apply(attrs)
	if err != nil {
		return nil, err
	}

	if err := a.replaceTags(ctx, params.Name, desc.Tags, encodeAttributes(attrs)); err != nil {
		return nil, err
	}

	desc, err = a.describe(ctx, params.Name)
	if err != nil {
		return nil, err
	}

	return awsProperties(aws.ToString(desc.Name), desc.Tags, desc.CreatedDate, desc.LastChangedDate, desc.VersionIdsToStages)
}

func (a *AWS) GetSecret(ctx context.Context, name string, version string) (*Secret, error) {
	desc, err := a.liveDescribe(ctx, name)
	if err != nil {
		return nil, err
	}

	props, err := awsProperties(aws.ToString(desc.Name), desc.Tags, desc.CreatedDate, desc.LastChangedDate, desc.VersionIdsToStages)
	if err != nil {
		return nil, err
	}
	if !props.IsActive(a.nowFunc()) {
		return nil, fmt.Errorf("%v: %w", name, ErrSecretDisabled)
	}

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	}
	if version != "" {
		input.VersionId = aws.String(version)
	}
	out, err := a.client.GetSecretValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error reading secret value: %w", awsError(err))
	}

	props.Version = aws.ToString(out.VersionId)
	props.CreatedOn = out.CreatedDate

	return &Secret{
		SecretProperties: *props,
		Value:            aws.ToString(out.SecretString),
	}, nil
}

func (a *AWS) ListSecrets(ctx context.Context) ([]*SecretProperties, error) {
	entries, err := a.listEntries(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]*SecretProperties, 0, len(entries))
	for _, e := range entries {
		if e.DeletedDate != nil {
			continue
		}
		props, err := awsProperties(aws.ToString(e.Name), e.Tags, e.CreatedDate, e.LastChangedDate, e.SecretVersionsToStages)
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}

	return out, nil
}

func (a *AWS) ListSecretVersions(ctx context.Context, name string) ([]*SecretProperties, error) {
	desc, err := a.liveDescribe(ctx, name)
	if err != nil {
		return nil, err
	}
	attrs, err := decodeAttributes(fromAWSTags(desc.Tags))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}

	versions := []smtypes.SecretVersionsListEntry{}
	paginator := secretsmanager.NewListSecretVersionIdsPaginator(a.client, &secretsmanager.ListSecretVersionIdsInput{
		SecretId: aws.String(name),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing secret versions: %w", awsError(err))
		}
		versions = append(versions, page.Versions...)
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return aws.ToTime(versions[i].CreatedDate).Before(aws.ToTime(versions[j].CreatedDate))
	})

	out := make([]*SecretProperties, 0, len(versions))
	for _, v := range versions {
		out = append(out, &SecretProperties{
			SecretAttributes: attrs,
			Name:             name,
			Version:          aws.ToString(v.VersionId),
			CreatedOn:        v.CreatedDate,
			UpdatedOn:        v.CreatedDate,
		})
	}

	return out, nil
}

func (a *AWS) DeleteSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	if _, err := a.liveDescribe(ctx, name); err != nil {
		return nil, err
	}

	out, err := a.client.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:             aws.String(name),
		RecoveryWindowInDays: aws.Int64(a.recoveryWindow),
	})
	if err != nil {
		return nil, fmt.Errorf("error deleting secret: %w", awsError(err))
	}

	deleted, err := a.GetDeletedSecret(ctx, name)
	if err != nil {
		return nil, err
	}
	if out.DeletionDate != nil {
		deleted.ScheduledPurgeDate = out.DeletionDate
	}

	return deleted, nil
}

func (a *AWS) GetDeletedSecret(ctx context.Context, name string) (*DeletedSecret, error) {
	desc, err := a.describe(ctx, name)
	if err != nil {
		return nil, err
	}
	if desc.DeletedDate == nil {
		return nil, fmt.Errorf("%v is not deleted: %w", name, ErrSecretNotFound)
	}

	return a.deletedSecret(aws.ToString(desc.ARN), aws.ToString(desc.Name), desc.Tags, desc.CreatedDate, desc.LastChangedDate, desc.DeletedDate, desc.VersionIdsToStages)
}

func (a *AWS) ListDeletedSecrets(ctx context.Context) ([]*DeletedSecret, error) {
	entries, err := a.listEntries(ctx, true)
	if err != nil {
		return nil, err
	}

	out := []*DeletedSecret{}
	for _, e := range entries {
		if e.DeletedDate == nil {
			continue
		}
		deleted, err := a.deletedSecret(aws.ToString(e.ARN), aws.ToString(e.Name), e.Tags, e.CreatedDate, e.LastChangedDate, e.DeletedDate, e.SecretVersionsToStages)
		if err != nil {
			return nil, err
		}
		out = append(out, deleted)
	}

	return out, nil
}

func (a *AWS) PurgeDeletedSecret(ctx context.Context, name string) error {
	if _, err := a.GetDeletedSecret(ctx, name); err != nil {
		return err
	}

	_, err := a.client.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(name),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("error purging secret: %w", awsError(err))
	}

	return nil
}

func (a *AWS) RecoverDeletedSecret(ctx context.Context, name string) (*SecretProperties, error) {
	if _, err := a.GetDeletedSecret(ctx, name); err != nil {
		return nil, err
	}

	if _, err := a.client.RestoreSecret(ctx, &secretsmanager.RestoreSecretInput{SecretId: aws.String(name)}); err != nil {
		return nil, fmt.Errorf("error restoring secret: %w", awsError(err))
	}

	desc, err := a.describe(ctx, name)
	if err != nil {
		return nil, err
	}

	return awsProperties(aws.ToString(desc.Name), desc.Tags, desc.CreatedDate, desc.LastChangedDate, desc.VersionIdsToStages)
}

func (a *AWS) describe(ctx context.Context, name string) (*secretsmanager.DescribeSecretOutput, error) {
	desc, err := a.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{SecretId: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("error describing secret: %w", awsError(err))
	}
	return desc, nil
}

func (a *AWS) liveDescribe(ctx context.Context, name string) (*secretsmanager.DescribeSecretOutput, error) {
	desc, err := a.describe(ctx, name)
	if err != nil {
		return nil, err
	}
	if desc.DeletedDate != nil {
		return nil, fmt.Errorf("%v is scheduled for deletion: %w", name, ErrSecretNotFound)
	}
	return desc, nil
}

func (a *AWS) listEntries(ctx context.Context, includeDeleted bool) ([]smtypes.SecretListEntry, error) {
	entries := []smtypes.SecretListEntry{}
	paginator := secretsmanager.NewListSecretsPaginator(a.client, &secretsmanager.ListSecretsInput{
		IncludePlannedDeletion: aws.Bool(includeDeleted),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing secrets: %w", awsError(err))
		}
		entries = append(entries, page.SecretList...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return aws.ToString(entries[i].Name) < aws.ToString(entries[j].Name)
	})
	return entries, nil
}

// replaceTags makes the secret's tag set exactly want
func (a *AWS) replaceTags(ctx context.Context, name string, have []smtypes.Tag, want map[string]string) error {
	stale := []string{}
	for _, t := range have {
		if _, ok := want[aws.ToString(t.Key)]; !ok {
			stale = append(stale, aws.ToString(t.Key))
		}
	}
	if len(stale) > 0 {
		sort.Strings(stale)
		_, err := a.client.UntagResource(ctx, &secretsmanager.UntagResourceInput{
			SecretId: aws.String(name),
			TagKeys:  stale,
		})
		if err != nil {
			return fmt.Errorf("error removing tags: %w", awsError(err))
		}
	}
	if len(want) > 0 {
		_, err := a.client.TagResource(ctx, &secretsmanager.TagResourceInput{
			SecretId: aws.String(name),
			Tags:     toAWSTags(want),
		})
		if err != nil {
			return fmt.Errorf("error writing tags: %w", awsError(err))
		}
	}
	return nil
}

func (a *AWS) deletedSecret(arn string, name string, tags []smtypes.Tag, created *time.Time, changed *time.Time, deletedOn *time.Time, stages map[string][]string) (*DeletedSecret, error) {
	props, err := awsProperties(name, tags, created, changed, stages)
	if err != nil {
		return nil, err
	}

	deleted := &DeletedSecret{
		SecretProperties: *props,
		RecoveryID:       arn,
		DeletedOn:        deletedOn,
	}
	if deletedOn != nil {
		purgeAt := deletedOn.Add(time.Duration(a.recoveryWindow) * 24 * time.Hour)
		deleted.ScheduledPurgeDate = &purgeAt
	}

	return deleted, nil
}

func awsProperties(name string, tags []smtypes.Tag, created *time.Time, changed *time.Time, stages map[string][]string) (*SecretProperties, error) {
	attrs, err := decodeAttributes(fromAWSTags(tags))
	if err != nil {
		return nil, fmt.Errorf("error decoding stored attributes: %w", err)
	}

	return &SecretProperties{
		SecretAttributes: attrs,
		Name:             name,
		Version:          currentAWSVersion(stages),
		CreatedOn:        created,
		UpdatedOn:        changed,
	}, nil
}

func currentAWSVersion(stages map[string][]string) string {
	for version, labels := range stages {
		for _, l := range labels {
			if l == awsCurrentStage {
				return version
			}
		}
	}
	return ""
}

func toAWSTags(in map[string]string) []smtypes.Tag {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]smtypes.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, smtypes.Tag{Key: aws.String(k), Value: aws.String(in[k])})
	}
	return out
}

func fromAWSTags(in []smtypes.Tag) map[string]string {
	out := make(map[string]string, len(in))
	for _, t := range in {
		out[aws.ToString(t.Key)] = aws.ToString(t.Value)
	}
	return out
}

func awsError(err error) error {
	var (
		notFound     *smtypes.ResourceNotFoundException
		exists       *smtypes.ResourceExistsException
		invalidReq   *smtypes.InvalidRequestException
		invalidParam *smtypes.InvalidParameterException
		apiErr       smithy.APIError
	)

	var sentinel error
	switch {
	case errors.As(err, &notFound):
		sentinel = ErrSecretNotFound
	case errors.As(err, &exists):
		sentinel = ErrSecretConflict
	case errors.As(err, &invalidReq):
		// secrets manager uses this for state clashes, eg touching a secret that is marked for deletion
		sentinel = ErrSecretConflict
	case errors.As(err, &invalidParam):
		sentinel = ErrInvalidRequest
	case errors.As(err, &apiErr):
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "UnrecognizedClientException":
			sentinel = ErrPermissionDenied
		case "ThrottlingException":
			sentinel = ErrThrottled
		default:
			return err
		}
	default:
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
