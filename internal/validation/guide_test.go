package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGuideInputSuccess(t *testing.T) {
	in, fields := ValidateGuideInput("abc_def-1", "Diluc", "Pyro DPS Build", "Stack crit rate before crit damage.")
	require.Nil(t, fields)
	assert.Equal(t, "abc_def-1", in.Username)
	assert.Equal(t, "Diluc", in.CharacterName)
}

func TestValidateGuideInputTrimsFields(t *testing.T) {
	in, fields := ValidateGuideInput("  abcd  ", " Diluc ", "  Pyro DPS Build  ", "  Stack crit rate before crit damage.  ")
	require.Nil(t, fields)
	assert.Equal(t, "abcd", in.Username)
	assert.Equal(t, "Diluc", in.CharacterName)
	assert.Equal(t, "Pyro DPS Build", in.Title)
	assert.Equal(t, "Stack crit rate before crit damage.", in.Description)
}

func TestValidateGuideInputUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"too short", "ab", false},
		{"minimum length", "abcd", true},
		{"contains space", "abc def", false},
		{"underscore and hyphen", "abc_def-1", true},
		{"maximum length", strings.Repeat("a", 20), true},
		{"too long", strings.Repeat("a", 21), false},
		{"special characters", "abc!def", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fields := ValidateGuideInput(tt.username, "Diluc", "Pyro DPS Build", "Stack crit rate before crit damage.")
			if tt.valid {
				assert.Nil(t, fields)
			} else {
				assert.Contains(t, fields, "username")
			}
		})
	}
}

func TestValidateGuideInputBounds(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		badField    string
	}{
		{"title too short", "abc", "Stack crit rate before crit damage.", "title"},
		{"title too long", strings.Repeat("t", 31), "Stack crit rate before crit damage.", "title"},
		{"title whitespace only", "      ", "Stack crit rate before crit damage.", "title"},
		{"description too short", "Pyro DPS Build", "too short", "description"},
		{"description too long", "Pyro DPS Build", strings.Repeat("d", 351), "description"},
		{"description whitespace only", "Pyro DPS Build", strings.Repeat(" ", 50), "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fields := ValidateGuideInput("abcd", "Diluc", tt.title, tt.description)
			require.NotNil(t, fields)
			assert.Contains(t, fields, tt.badField)
		})
	}
}

func TestValidateGuideInputCountsCharactersNotBytes(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		badField    string
	}{
		// 2 characters, 6 bytes: must fail the min bound.
		{"multibyte title too short", "原神", "Stack crit rate before crit damage.", "title"},
		// 4 characters, 12 bytes: still below 10 characters.
		{"multibyte description too short", "Pyro DPS Build", "原神攻略", "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fields := ValidateGuideInput("abcd", "Diluc", tt.title, tt.description)
			require.NotNil(t, fields)
			assert.Contains(t, fields, tt.badField)
		})
	}

	// 13 characters, 39 bytes: within the 30-character max.
	in, fields := ValidateGuideInput("abcd", "Diluc", strings.Repeat("神", 13), "Stack crit rate before crit damage.")
	require.Nil(t, fields)
	assert.Equal(t, strings.Repeat("神", 13), in.Title)

	// 100 characters, 300 bytes: at the character_name max.
	_, fields = ValidateGuideInput("abcd", strings.Repeat("神", 100), "Pyro DPS Build", "Stack crit rate before crit damage.")
	assert.Nil(t, fields)
}

func TestValidateGuideInputCollectsAllViolations(t *testing.T) {
	_, fields := ValidateGuideInput("ab", "", "x", "short")
	require.NotNil(t, fields)
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "character_name")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
}
