package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestDeriveRequirementCode(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		parentCode   *string
		criteriaCode string
		siblings     []string
		want         string
	}{
		{
			name:       "auto suffix after existing children",
			raw:        "",
			parentCode: strPtr("P"),
			siblings:   []string{"P.1", "P.2", "P.5"},
			want:       "P.6",
		},
		{
			name:       "auto suffix with no children",
			raw:        "",
			parentCode: strPtr("P"),
			siblings:   nil,
			want:       "P.1",
		},
		{
			name:       "auto suffix across digit boundary",
			raw:        "",
			parentCode: strPtr("P"),
			siblings:   []string{"P.9", "P.10"},
			want:       "P.11",
		},
		{
			name:       "auto suffix ignores unparsable siblings",
			raw:        "",
			parentCode: strPtr("P"),
			siblings:   []string{"P.a", "P.2"},
			want:       "P.3",
		},
		{
			name:       "bare suffix concatenated under parent",
			raw:        "3",
			parentCode: strPtr("P"),
			siblings:   []string{"P.1"},
			want:       "P.3",
		},
		{
			name:       "dotted code used verbatim despite parent",
			raw:        "X.9",
			parentCode: strPtr("P"),
			want:       "X.9",
		},
		{
			name:         "bare code qualified by criteria code",
			raw:          "2",
			criteriaCode: "CUR.4",
			want:         "CUR.4.2",
		},
		{
			name:         "dotted code used verbatim without parent",
			raw:          "Z.1",
			criteriaCode: "CUR.4",
			want:         "Z.1",
		},
		{
			name:         "surrounding whitespace trimmed",
			raw:          "  2  ",
			criteriaCode: "CUR.4",
			want:         "CUR.4.2",
		},
		{
			name:         "empty parent code behaves like no parent",
			raw:          "2",
			parentCode:   strPtr(""),
			criteriaCode: "CUR.4",
			want:         "CUR.4.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveRequirementCode(tt.raw, tt.parentCode, tt.criteriaCode, tt.siblings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveRequirementCodeRequiresCodeWithoutParent(t *testing.T) {
	_, err := DeriveRequirementCode("", nil, "CUR.4", nil)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "RequirementCode", verr.Field)
	assert.Equal(t, "Requirement code is required", verr.Message)
}

func TestNextChildCode(t *testing.T) {
	assert.Equal(t, "P.1", NextChildCode("P", nil))
	assert.Equal(t, "P.6", NextChildCode("P", []string{"P.5", "P.2", "P.1"}))
	// gaps from deletions are not reused
	assert.Equal(t, "P.4", NextChildCode("P", []string{"P.3"}))
	// suffixes compare numerically, not lexicographically
	assert.Equal(t, "P.11", NextChildCode("P", []string{"P.10", "P.9"}))
}

func TestQualifyCode(t *testing.T) {
	assert.Equal(t, "P.3", QualifyCode("P", "3"))
	assert.Equal(t, "X.9", QualifyCode("P", "X.9"))
}

func TestNormalizeOptionalID(t *testing.T) {
	id := uint(7)

	assert.Nil(t, NormalizeOptionalID(nil))
	assert.Nil(t, NormalizeOptionalID(""))
	assert.Nil(t, NormalizeOptionalID("null"))
	assert.Nil(t, NormalizeOptionalID("undefined"))
	assert.Nil(t, NormalizeOptionalID(" "))
	assert.Nil(t, NormalizeOptionalID(float64(0)))
	assert.Nil(t, NormalizeOptionalID("abc"))

	assert.Equal(t, &id, NormalizeOptionalID(float64(7)))
	assert.Equal(t, &id, NormalizeOptionalID("7"))
}
