package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nicjohnson145/kvgate/internal/vault"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	setSecretSchema        = "set_secret.json"
	updatePropertiesSchema = "update_properties.json"

	// MaxValueBytes is the largest secret value accepted, measured in bytes rather than characters
	MaxValueBytes = 25600
)

var (
	namePattern    = regexp.MustCompile(`^[0-9a-zA-Z-]{1,127}$`)
	versionPattern = regexp.MustCompile(`^[0-9a-zA-Z-]{1,64}$`)
)

var ErrValidation = errors.New("validation failed")

// Error carries every violation found in a single request
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0]
	}
	return fmt.Sprintf("validation failed with %d errors", len(e.Violations))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

func newError(violations ...string) *Error {
	return &Error{Violations: violations}
}

// Validator checks path parameters and request bodies. It is safe for concurrent use.
type Validator struct {
	setSecret        *jsonschema.Schema
	updateProperties *jsonschema.Schema
	printer          *message.Printer
}

func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	compiled := map[string]*jsonschema.Schema{}
	for _, name := range []string{setSecretSchema, updatePropertiesSchema} {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("error reading schema %v: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("error unmarshalling schema %v: %w", name, err)
		}
		url := "kvgate://schemas/" + name
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("error adding schema %v: %w", name, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("error compiling schema %v: %w", name, err)
		}
		compiled[name] = s
	}

	return &Validator{
		setSecret:        compiled[setSecretSchema],
		updateProperties: compiled[updatePropertiesSchema],
		printer:          message.NewPrinter(language.English),
	}, nil
}

func (v *Validator) ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return newError(fmt.Sprintf("name: %q must be 1-127 characters of letters, digits and dashes", name))
	}
	return nil
}

// ValidateVersion accepts an empty version, which means the latest one
func (v *Validator) ValidateVersion(version string) error {
	if version == "" {
		return nil
	}
	if !versionPattern.MatchString(version) {
		return newError(fmt.Sprintf("version: %q must be 1-64 characters of letters, digits and dashes", version))
	}
	return nil
}

func (v *Validator) ValidateSetSecret(body []byte) error {
	doc, err := v.validateBody(v.setSecret, body)
	if err != nil {
		return err
	}

	violations := checkAttributes(doc)
	if value, ok := doc["value"].(string); ok && len(value) > MaxValueBytes {
		violations = append(violations, fmt.Sprintf("/value: must be at most %d bytes, got %d", MaxValueBytes, len(value)))
	}
	if len(violations) > 0 {
		return newError(violations...)
	}

	return nil
}

func (v *Validator) ValidateUpdateProperties(body []byte) error {
	doc, err := v.validateBody(v.updateProperties, body)
	if err != nil {
		return err
	}

	if violations := checkAttributes(doc); len(violations) > 0 {
		return newError(violations...)
	}

	return nil
}

func (v *Validator) validateBody(schema *jsonschema.Schema, body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, newError("/: request body is required")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, newError(fmt.Sprintf("/: request body is not valid JSON: %v", err))
	}

	if err := schema.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, newError(err.Error())
		}
		return nil, newError(v.collectViolations(verr)...)
	}

	// the schema guarantees an object at this point
	doc, _ := inst.(map[string]any)
	return doc, nil
}

func (v *Validator) collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", loc, verr.ErrorKind.LocalizedString(v.printer))}
	}

	violations := []string{}
	for _, cause := range verr.Causes {
		violations = append(violations, v.collectViolations(cause)...)
	}
	return violations
}

// checkAttributes covers the rules a schema can't express: reserved tag keys and the validity window ordering
func checkAttributes(doc map[string]any) []string {
	violations := []string{}

	if tags, ok := doc["tags"].(map[string]any); ok {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if vault.IsReservedTag(k) {
				violations = append(violations, fmt.Sprintf("/tags/%s: tag keys may not start with %q", k, vault.ReservedTagPrefix))
			}
		}
	}

	notBefore, nbOK := parseTime(doc["notBefore"])
	expiresOn, expOK := parseTime(doc["expiresOn"])
	if nbOK && expOK && !notBefore.Before(expiresOn) {
		violations = append(violations, "/notBefore: must be before expiresOn")
	}

	return violations
}

func parseTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CheckWindow enforces notBefore < expiresOn on already decoded values
func CheckWindow(notBefore *time.Time, expiresOn *time.Time) error {
	if notBefore != nil && expiresOn != nil && !notBefore.Before(*expiresOn) {
		return newError("/notBefore: must be before expiresOn")
	}
	return nil
}
