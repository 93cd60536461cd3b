package vault

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReservedTagPrefix marks the metadata entries used to carry secret attributes on providers that have no
// native home for them. User supplied tags may not use it.
const ReservedTagPrefix = "kvgate:"

const (
	attrContentType = ReservedTagPrefix + "content-type"
	attrEnabled     = ReservedTagPrefix + "enabled"
	attrExpiresOn   = ReservedTagPrefix + "expires-on"
	attrNotBefore   = ReservedTagPrefix + "not-before"
)

func IsReservedTag(key string) bool {
	return strings.HasPrefix(key, ReservedTagPrefix)
}

// encodeAttributes flattens attributes and user tags into a single string map
func encodeAttributes(attrs SecretAttributes) map[string]string {
	out := make(map[string]string, len(attrs.Tags)+4)
	for k, v := range attrs.Tags {
		out[k] = v
	}
	if attrs.ContentType != "" {
		out[attrContentType] = attrs.ContentType
	}
	if attrs.Enabled != nil {
		out[attrEnabled] = strconv.FormatBool(*attrs.Enabled)
	}
	if attrs.ExpiresOn != nil {
		out[attrExpiresOn] = attrs.ExpiresOn.UTC().Format(time.RFC3339Nano)
	}
	if attrs.NotBefore != nil {
		out[attrNotBefore] = attrs.NotBefore.UTC().Format(time.RFC3339Nano)
	}
	return out
}

func decodeAttributes(in map[string]string) (SecretAttributes, error) {
	attrs := SecretAttributes{}
	for k, v := range in {
		switch k {
		case attrContentType:
			attrs.ContentType = v
		case attrEnabled:
			enabled, err := strconv.ParseBool(v)
			if err != nil {
				return SecretAttributes{}, fmt.Errorf("error parsing %v: %w", k, err)
			}
			attrs.Enabled = &enabled
		case attrExpiresOn:
			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return SecretAttributes{}, fmt.Errorf("error parsing %v: %w", k, err)
			}
			attrs.ExpiresOn = &ts
		case attrNotBefore:
			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return SecretAttributes{}, fmt.Errorf("error parsing %v: %w", k, err)
			}
			attrs.NotBefore = &ts
		default:
			if IsReservedTag(k) {
				continue
			}
			if attrs.Tags == nil {
				attrs.Tags = map[string]string{}
			}
			attrs.Tags[k] = v
		}
	}
	return attrs, nil
}
