package skill

import (
	"testing"

	"github.com/deepnoodle-ai/skillset/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    []frontmatter.Field
		want      *Metadata
		wantField string // expected ValidationError field, empty for success
	}{
		{
			name: "all fields valid",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("review")},
				{Name: "description", Value: frontmatter.String("Reviews code.")},
				{Name: "license", Value: frontmatter.String("MIT")},
				{Name: "compatibility", Value: frontmatter.String(">=2.0")},
				{Name: "user-invocable", Value: frontmatter.Bool(true)},
			},
			want: &Metadata{
				Name:          "review",
				Description:   "Reviews code.",
				License:       "MIT",
				Compatibility: ">=2.0",
				UserInvocable: true,
			},
		},
		{
			name: "minimal valid",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("minimal")},
				{Name: "description", Value: frontmatter.String("Does things.")},
			},
			want: &Metadata{Name: "minimal", Description: "Does things."},
		},
		{
			name: "name and description are trimmed",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("  padded  ")},
				{Name: "description", Value: frontmatter.String(" spaced out ")},
			},
			want: &Metadata{Name: "padded", Description: "spaced out"},
		},
		{
			name: "missing name",
			fields: []frontmatter.Field{
				{Name: "description", Value: frontmatter.String("No name.")},
			},
			wantField: FieldName,
		},
		{
			name: "whitespace-only name",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("   ")},
				{Name: "description", Value: frontmatter.String("Blank name.")},
			},
			wantField: FieldName,
		},
		{
			name: "name must be scalar",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.List("a", "b")},
				{Name: "description", Value: frontmatter.String("List name.")},
			},
			wantField: FieldName,
		},
		{
			name: "missing description",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("nodesc")},
			},
			wantField: FieldDescription,
		},
		{
			name: "name failure reported before description failure",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("")},
				{Name: "description", Value: frontmatter.String("")},
			},
			wantField: FieldName,
		},
		{
			name: "invalid user-invocable literal",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("bad-flag")},
				{Name: "description", Value: frontmatter.String("Has a bad flag.")},
				{Name: "user-invocable", Value: frontmatter.String("maybe")},
			},
			wantField: FieldUserInvocable,
		},
		{
			name: "license must be scalar",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("bad-license")},
				{Name: "description", Value: frontmatter.String("License is a list.")},
				{Name: "license", Value: frontmatter.List("MIT", "Apache-2.0")},
			},
			wantField: FieldLicense,
		},
		{
			name: "empty license normalized to absent",
			fields: []frontmatter.Field{
				{Name: "name", Value: frontmatter.String("blank-license")},
				{Name: "description", Value: frontmatter.String("Blank license.")},
				{Name: "license", Value: frontmatter.String("   ")},
			},
			want: &Metadata{Name: "blank-license", Description: "Blank license."},
		},
		{
			name: "extra fields preserved in order",
			fields: []frontmatter.Field{
				{Name: "x-first", Value: frontmatter.String("1")},
				{Name: "name", Value: frontmatter.String("extras")},
				{Name: "x-second", Value: frontmatter.List("a")},
				{Name: "description", Value: frontmatter.String("Has extras.")},
				{Name: "x-third", Value: frontmatter.Bool(true)},
			},
			want: &Metadata{
				Name:        "extras",
				Description: "Has extras.",
				Extra: []frontmatter.Field{
					{Name: "x-first", Value: frontmatter.String("1")},
					{Name: "x-second", Value: frontmatter.List("a")},
					{Name: "x-third", Value: frontmatter.Bool(true)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ValidateFields(tt.fields)

			if tt.wantField != "" {
				var validation *ValidationError
				require.ErrorAs(t, err, &validation)
				assert.Equal(t, tt.wantField, validation.Field)
				assert.Contains(t, err.Error(), tt.wantField)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, meta)
		})
	}
}

func TestInvocableLiterals(t *testing.T) {
	truthy := []frontmatter.Value{
		frontmatter.Bool(true),
		frontmatter.String("yes"),
		frontmatter.String("YES"),
		frontmatter.String("true"),
		frontmatter.String("True"),
		frontmatter.String("1"),
	}
	falsy := []frontmatter.Value{
		frontmatter.Bool(false),
		frontmatter.String("no"),
		frontmatter.String("No"),
		frontmatter.String("false"),
		frontmatter.String("FALSE"),
		frontmatter.String("0"),
	}

	for _, value := range truthy {
		got, err := invocableValue(value)
		require.NoError(t, err)
		assert.True(t, got, "%#v should coerce to true", value)
	}
	for _, value := range falsy {
		got, err := invocableValue(value)
		require.NoError(t, err)
		assert.False(t, got, "%#v should coerce to false", value)
	}

	_, err := invocableValue(frontmatter.String("on"))
	assert.Error(t, err)
	_, err = invocableValue(frontmatter.List("true"))
	assert.Error(t, err)
}
