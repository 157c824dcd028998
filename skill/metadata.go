package skill

import (
	"strings"

	"github.com/deepnoodle-ai/skillset/frontmatter"
)

// ValidateFields checks header fields against the known-field rules and
// returns the validated Metadata. Checks run in a fixed order and the
// first failure wins, reported as a *ValidationError naming the field:
//
//  1. name: present, a scalar string, non-empty after trimming.
//  2. description: present, a scalar string, non-empty after trimming.
//  3. user-invocable: if present, a bool or one of yes/no/true/false/1/0
//     (case-insensitive). Absent defaults to false.
//  4. license, compatibility: scalar strings or absent; an empty string
//     after trimming is normalized to absent.
//
// Fields outside the known set are not validated; they are carried in
// Metadata.Extra in document order.
func ValidateFields(fields []frontmatter.Field) (*Metadata, error) {
	known := make(map[string]frontmatter.Value, len(knownFields))
	var extra []frontmatter.Field
	for _, f := range fields {
		if isKnownField(f.Name) {
			known[f.Name] = f.Value
		} else {
			extra = append(extra, f)
		}
	}

	meta := &Metadata{Extra: extra}
	var err error

	if meta.Name, err = requiredString(FieldName, known); err != nil {
		return nil, err
	}
	if meta.Description, err = requiredString(FieldDescription, known); err != nil {
		return nil, err
	}
	if value, ok := known[FieldUserInvocable]; ok {
		if meta.UserInvocable, err = invocableValue(value); err != nil {
			return nil, err
		}
	}
	if meta.License, err = optionalString(FieldLicense, known); err != nil {
		return nil, err
	}
	if meta.Compatibility, err = optionalString(FieldCompatibility, known); err != nil {
		return nil, err
	}
	return meta, nil
}

func requiredString(field string, known map[string]frontmatter.Value) (string, error) {
	value, ok := known[field]
	if !ok {
		return "", &ValidationError{Field: field, Reason: "field is required"}
	}
	if value.Kind() != frontmatter.KindString {
		return "", &ValidationError{Field: field, Reason: "must be a string"}
	}
	trimmed := strings.TrimSpace(value.Text())
	if trimmed == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return trimmed, nil
}

func optionalString(field string, known map[string]frontmatter.Value) (string, error) {
	value, ok := known[field]
	if !ok {
		return "", nil
	}
	if value.Kind() != frontmatter.KindString {
		return "", &ValidationError{Field: field, Reason: "must be a string"}
	}
	return strings.TrimSpace(value.Text()), nil
}

// invocableValue coerces the user-invocable field to a bool. Accepted
// literal forms mirror what other tooling writes into these files.
func invocableValue(value frontmatter.Value) (bool, error) {
	switch value.Kind() {
	case frontmatter.KindBool:
		return value.Truth(), nil
	case frontmatter.KindString:
		switch strings.ToLower(strings.TrimSpace(value.Text())) {
		case "yes", "true", "1":
			return true, nil
		case "no", "false", "0":
			return false, nil
		}
	}
	return false, &ValidationError{
		Field:  FieldUserInvocable,
		Reason: "must be a boolean (yes/no/true/false/1/0)",
	}
}
