package wikipedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/olgasafonova/wikitranslate-mcp-server/internal/errors"
)

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"en", "en", false},
		{"de", "de", false},
		{"DE", "de", false},
		{"  es ", "es", false},
		{"simple", "simple", false},
		{"als", "als", false},
		{"zh-min-nan", "zh-min-nan", false},
		{"be-x-old", "be-x-old", false},
		{"zh-classical", "zh-classical", false},
		{"roa-tara", "roa-tara", false},
		{"", "", true},
		{"   ", "", true},
		{"e", "", true},
		{"english", "", true},
		{"en.wikipedia.org", "", true},
		{"en/../x", "", true},
		{"en-", "", true},
		{"-en", "", true},
		{"e n", "", true},
		{"12", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLanguageCode("language", tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apierrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTerm(t *testing.T) {
	assert.NoError(t, ValidateTerm("Python"))
	assert.NoError(t, ValidateTerm(" Monty Python "))
	assert.Error(t, ValidateTerm(""))
	assert.Error(t, ValidateTerm("\t\n"))
}

func TestValidatePageID(t *testing.T) {
	assert.NoError(t, ValidatePageID(1))
	assert.NoError(t, ValidatePageID(1262950))
	assert.Error(t, ValidatePageID(0))
	assert.Error(t, ValidatePageID(-1))
}

func TestNormalizeTargets(t *testing.T) {
	got, err := normalizeTargets([]string{"fr", "ES", "es", " fr", "it"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fr", "es", "it"}, got)

	_, err = normalizeTargets([]string{})
	assert.Error(t, err)

	_, err = normalizeTargets([]string{"fr", "not a code"})
	assert.Error(t, err)
}
