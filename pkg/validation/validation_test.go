package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/pkg/validation"
)

type sample struct {
	Name      string   `json:"name" validate:"required,min=1,max=5"`
	Level     *int     `json:"level" validate:"required,min=0,max=100"`
	Start     string   `json:"startDate" validate:"required,ym_date"`
	End       string   `json:"endDate" validate:"required,end_date"`
	Link      string   `json:"link" validate:"optional_url"`
	Tags      []string `json:"tags" validate:"max=2,dive,notblank"`
	Ignored   string   `json:"-"`
	NoJSONTag string   `validate:"omitempty,max=3"`
}

func intPtr(v int) *int { return &v }

func validSample() sample {
	return sample{Name: "Go", Level: intPtr(80), Start: "2020-01", End: "Present"}
}

func TestValidator(t *testing.T) {
	v := validation.New()

	t.Run("Should accept a valid struct", func(t *testing.T) {
		s := validSample()
		s.Link = "https://example.com/x"
		s.Tags = []string{"a", "b"}
		assert.NoError(t, v.Struct(s))
	})

	t.Run("Should report missing field by json name", func(t *testing.T) {
		s := validSample()
		s.Name = ""
		s.Level = nil

		fields := validation.FormatValidationErrors(v.Struct(s))
		require.Len(t, fields, 2)
		assert.Equal(t, "name", fields[0].Field)
		assert.Equal(t, "name is required", fields[0].Message)
		assert.Equal(t, "level", fields[1].Field)
		assert.Equal(t, "level is required", fields[1].Message)
	})

	t.Run("Should report numeric upper bound", func(t *testing.T) {
		s := validSample()
		s.Level = intPtr(150)

		fields := validation.FormatValidationErrors(v.Struct(s))
		require.Len(t, fields, 1)
		assert.Equal(t, "level must be at most 100", fields[0].Message)
	})

	t.Run("Should accept zero for a required pointer", func(t *testing.T) {
		s := validSample()
		s.Level = intPtr(0)
		assert.NoError(t, v.Struct(s))
	})

	t.Run("Should validate date formats", func(t *testing.T) {
		cases := []struct {
			start, end string
			ok         bool
		}{
			{"2020-01", "2021-12-31", true},
			{"2020-01-15", "present", true},
			{"2020-01", "PRESENT", true},
			{"2020", "Present", false},
			{"2020-01", "now", false},
			{"01-2020", "Present", false},
		}
		for _, tc := range cases {
			s := validSample()
			s.Start, s.End = tc.start, tc.end
			err := v.Struct(s)
			if tc.ok {
				assert.NoError(t, err, "%s / %s", tc.start, tc.end)
			} else {
				assert.Error(t, err, "%s / %s", tc.start, tc.end)
			}
		}
	})

	t.Run("Should reject relative URLs but allow empty", func(t *testing.T) {
		s := validSample()
		s.Link = "/relative"
		fields := validation.FormatValidationErrors(v.Struct(s))
		require.Len(t, fields, 1)
		assert.Equal(t, "link must be a valid URL", fields[0].Message)

		s.Link = ""
		assert.NoError(t, v.Struct(s))
	})

	t.Run("Should name list items by index", func(t *testing.T) {
		s := validSample()
		s.Tags = []string{"ok", "  "}
		fields := validation.FormatValidationErrors(v.Struct(s))
		require.Len(t, fields, 1)
		assert.Equal(t, "tags[1]", fields[0].Field)
	})

	t.Run("Should bound list length", func(t *testing.T) {
		s := validSample()
		s.Tags = []string{"a", "b", "c"}
		fields := validation.FormatValidationErrors(v.Struct(s))
		require.Len(t, fields, 1)
		assert.Equal(t, "tags must contain at most 2 item(s)", fields[0].Message)
	})
}

func TestFromDecodeError(t *testing.T) {
	t.Run("Should map type mismatch to the field", func(t *testing.T) {
		var s sample
		err := json.Unmarshal([]byte(`{"level":"high"}`), &s)
		require.Error(t, err)

		fields := validation.FromDecodeError(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "level", fields[0].Field)
		assert.Equal(t, "level must be an integer", fields[0].Message)
	})

	t.Run("Should ignore syntax errors", func(t *testing.T) {
		var s sample
		err := json.Unmarshal([]byte(`{"level":`), &s)
		require.Error(t, err)
		assert.Nil(t, validation.FromDecodeError(err))
	})
}
