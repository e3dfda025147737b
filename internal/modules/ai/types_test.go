package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	got, err := validateText("  hello world  ", maxTextLength)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)

	_, err = validateText("   ", maxTextLength)
	require.Error(t, err)

	_, err = validateText(strings.Repeat("a", maxTextLength+1), maxTextLength)
	require.Error(t, err)

	got, err = validateText(strings.Repeat("a", maxTextLength), maxTextLength)
	require.NoError(t, err)
	require.Len(t, got, maxTextLength)
}

func TestValidateTextBoundCountsCharactersNotBytes(t *testing.T) {
	// 6,000 characters but 18,000 bytes; must pass the 10,000-char bound
	text := strings.Repeat("好", 6000)
	got, err := validateText(text, maxTextLength)
	require.NoError(t, err)
	require.Equal(t, text, got)

	_, err = validateText(strings.Repeat("好", maxTextLength+1), maxTextLength)
	require.Error(t, err)
}

func TestValidateLanguage(t *testing.T) {
	got, err := validateLanguage("")
	require.NoError(t, err)
	require.Equal(t, defaultLanguage, got)

	got, err = validateLanguage(" FR ")
	require.NoError(t, err)
	require.Equal(t, "fr", got)

	got, err = validateLanguage("zh-CN")
	require.NoError(t, err)
	require.Equal(t, "zh-cn", got)

	for _, bad := range []string{"e", "english", "e n", "12"} {
		_, err = validateLanguage(bad)
		require.Error(t, err, "code %q", bad)
	}
}

func TestValidateRequiredLanguage(t *testing.T) {
	_, err := validateRequiredLanguage("", "targetLanguage")
	require.Error(t, err)
	require.Contains(t, err.Error(), "targetLanguage")

	got, err := validateRequiredLanguage("DE", "targetLanguage")
	require.NoError(t, err)
	require.Equal(t, "de", got)
}

func TestValidateTone(t *testing.T) {
	got, err := validateTone("")
	require.NoError(t, err)
	require.Equal(t, defaultTone, got)

	got, err = validateTone(" Professional ")
	require.NoError(t, err)
	require.Equal(t, "professional", got)

	_, err = validateTone("sarcastic")
	require.Error(t, err)
}

func TestWordCount(t *testing.T) {
	require.Equal(t, 0, wordCount("   "))
	require.Equal(t, 3, wordCount("one  two\nthree"))
}
