package frontmatter

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Encode serializes a Document back into skill document text: the
// opening delimiter, the header fields in the order they appear in
// doc.Fields, the closing delimiter, one blank line, then the body
// verbatim.
//
// Encoding is deterministic: the same Document always produces identical
// bytes, and for any valid input x, Parse(Encode(Parse(x))) equals
// Parse(x) field-for-field and body-for-body. No field is ever dropped.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter)
	buf.WriteByte('\n')

	if len(doc.Fields) > 0 {
		mapping := make(yaml.MapSlice, 0, len(doc.Fields))
		for _, f := range doc.Fields {
			mapping = append(mapping, yaml.MapItem{Key: f.Name, Value: f.Value.yamlValue()})
		}
		header, err := yaml.MarshalWithOptions(mapping, yaml.Indent(2), yaml.IndentSequence(true))
		if err != nil {
			return nil, fmt.Errorf("encoding frontmatter: %w", err)
		}
		buf.Write(header)
	}

	buf.WriteString(delimiter)
	buf.WriteString("\n\n")
	buf.WriteString(doc.Body)
	return buf.Bytes(), nil
}
