package validation

import (
	"encoding/json"
	"io"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string  `json:"name" binding:"required"`
	City    string  `json:"city" binding:"required,city"`
	Sector  *string `json:"sector" binding:"omitnil,sector"`
	Website *string `json:"website" binding:"omitnil,website"`
	Title   *string `json:"title" binding:"omitnil,min=1"`
	Limit   int     `form:"limit" binding:"omitempty,min=1,max=50"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, Register(v))
	return v
}

func strPtr(s string) *string {
	return &s
}

func TestRegister_EnumTags(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name       string
		input      sample
		wantFields map[string]string
	}{
		{
			name:  "valid",
			input: sample{Name: "x", City: "tripoli", Sector: strPtr("health"), Website: strPtr("https://a.ly"), Title: strPtr("t"), Limit: 4},
		},
		{
			name:  "nil optional fields are skipped",
			input: sample{Name: "x", City: "derna"},
		},
		{
			name:  "empty website is allowed",
			input: sample{Name: "x", City: "derna", Website: strPtr("")},
		},
		{
			name:       "missing required fields",
			input:      sample{},
			wantFields: map[string]string{"name": "is required", "city": "is required"},
		},
		{
			name:  "unknown enum values",
			input: sample{Name: "x", City: "paris", Sector: strPtr("farming")},
			wantFields: map[string]string{
				"city":   "must be one of: tripoli, benghazi, misrata, zawiya, bayda, sabha, gharyan, zliten, khoms, sabratha, zintan, tarhuna, surman, derna, tobruk, marj, ajdabiya",
				"sector": "must be one of: oil-gas, technology, education, health, engineering, accounting-finance, marketing-sales, construction, tourism-hospitality, law, media",
			},
		},
		{
			name:       "present but empty text",
			input:      sample{Name: "x", City: "tripoli", Title: strPtr("")},
			wantFields: map[string]string{"title": "must not be empty"},
		},
		{
			name:       "bad url",
			input:      sample{Name: "x", City: "tripoli", Website: strPtr("not a url")},
			wantFields: map[string]string{"website": "must be a valid URL"},
		},
		{
			name:       "limit out of range",
			input:      sample{Name: "x", City: "tripoli", Limit: 51},
			wantFields: map[string]string{"limit": "must be at most 50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			verr := Translate(err)
			got := map[string]string{}
			for _, f := range verr.Fields {
				got[f.Field] = f.Message
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestTranslate_DecodeErrors(t *testing.T) {
	t.Run("type mismatch names the field", func(t *testing.T) {
		var dst struct {
			CompanyID *string `json:"companyId"`
		}
		err := json.Unmarshal([]byte(`{"companyId": 42}`), &dst)
		require.Error(t, err)

		verr := Translate(err)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "companyId", verr.Fields[0].Field)
		assert.Equal(t, "must be a string", verr.Fields[0].Message)
	})

	t.Run("syntax error", func(t *testing.T) {
		var dst map[string]any
		err := json.Unmarshal([]byte(`{"name":`), &dst)
		require.Error(t, err)

		verr := Translate(err)
		assert.Contains(t, verr.Error(), "malformed JSON")
	})

	t.Run("empty body", func(t *testing.T) {
		verr := Translate(io.EOF)
		assert.Equal(t, "validation failed: request body must be a JSON object", verr.Error())
	})

	t.Run("non numeric query value", func(t *testing.T) {
		_, err := strconv.Atoi("many")
		verr := Translate(err)
		assert.Equal(t, `"many" is not a valid number`, verr.Fields[0].Message)
	})

	t.Run("field error passes through", func(t *testing.T) {
		in := NewFieldError("companyId", "does not reference an existing company")
		assert.Same(t, in, Translate(in))
	})

	t.Run("unknown error stays opaque", func(t *testing.T) {
		verr := Translate(assert.AnError)
		assert.Equal(t, "validation failed: malformed request", verr.Error())
	})
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "city", Message: "must be one of: tripoli"},
	}}
	assert.Equal(t, "validation failed: name is required; city must be one of: tripoli", err.Error())
}
