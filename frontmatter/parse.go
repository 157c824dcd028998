package frontmatter

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// delimiter marks the start and end of the frontmatter header block.
const delimiter = "---"

// ParseFile reads and parses a skill document from disk. Parse errors
// carry the file path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse parses raw document text into a Document. The text must start
// with a "---" line, followed by a YAML mapping, followed by a closing
// "---" line; everything after the closing line is the body, with
// leading newlines trimmed. Any leading whitespace before the opening
// delimiter is ignored.
//
// Parse is a pure function and fails with *MalformedError when the
// opening or closing delimiter is missing, the header does not decode
// as a YAML mapping, or a header value falls outside the supported
// string/bool/list shapes.
func Parse(data []byte) (*Document, error) {
	text := strings.TrimLeft(string(data), " \t\r\n")

	first, rest, hasMore := strings.Cut(text, "\n")
	if strings.TrimRight(first, "\r") != delimiter {
		return nil, &MalformedError{Reason: "document must start with YAML frontmatter (---)"}
	}
	if !hasMore {
		return nil, &MalformedError{Reason: "missing closing frontmatter delimiter (---)"}
	}

	lines := strings.Split(rest, "\n")
	closing := -1
	for i, line := range lines {
		if strings.TrimRight(line, "\r") == delimiter {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, &MalformedError{Reason: "missing closing frontmatter delimiter (---)"}
	}

	header := strings.Join(lines[:closing], "\n")
	body := strings.TrimLeft(strings.Join(lines[closing+1:], "\n"), "\r\n")

	fields, err := decodeHeader(header)
	if err != nil {
		return nil, err
	}
	return &Document{Fields: fields, Body: body}, nil
}

// decodeHeader decodes the YAML header block into ordered fields.
func decodeHeader(header string) ([]Field, error) {
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	var mapping yaml.MapSlice
	if err := yaml.UnmarshalWithOptions([]byte(header), &mapping, yaml.UseOrderedMap()); err != nil {
		return nil, &MalformedError{Reason: "parsing frontmatter", Err: err}
	}

	fields := make([]Field, 0, len(mapping))
	seen := make(map[string]bool, len(mapping))
	for _, item := range mapping {
		name, ok := item.Key.(string)
		if !ok {
			name = fmt.Sprint(item.Key)
		}
		if seen[name] {
			return nil, &MalformedError{Reason: fmt.Sprintf("duplicate header field %q", name)}
		}
		seen[name] = true

		value, err := coerceValue(item.Value)
		if err != nil {
			return nil, &MalformedError{Reason: fmt.Sprintf("header field %q", name), Err: err}
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields, nil
}

// coerceValue maps a decoded YAML value onto the closed Value variant.
// Numeric and null scalars canonicalize to strings so they re-encode
// deterministically.
func coerceValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return String(""), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return String(strconv.Itoa(v)), nil
	case int64:
		return String(strconv.FormatInt(v, 10)), nil
	case uint64:
		return String(strconv.FormatUint(v, 10)), nil
	case float64:
		return String(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case time.Time:
		return String(v.Format(time.RFC3339)), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, element := range v {
			item, err := coerceListItem(element)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return List(items...), nil
	case yaml.MapSlice, map[string]any:
		return Value{}, errors.New("nested mappings are not supported")
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func coerceListItem(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported list element type %T", raw)
	}
}
