package ai

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxTextLength   = 10000
	maxDetectLength = 5000

	minHumanizeWords = 30
	maxHumanizeWords = 120

	defaultLanguage = "en"
	defaultTone     = "casual"
)

var (
	languageCodeRe = regexp.MustCompile(`^[a-zA-Z-]{2,5}$`)

	validTones = map[string]bool{
		"casual":       true,
		"professional": true,
		"academic":     true,
		"creative":     true,
	}
)

type GrammarDTO struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type TranslateDTO struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

type HumanizeDTO struct {
	Text     string `json:"text"`
	Tone     string `json:"tone"`
	Language string `json:"language"`
}

type PlagiarismDTO struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type DetectDTO struct {
	Text string `json:"text"`
}

// validateText trims the input and enforces the length bound shared by all
// text operations. The bound counts characters, not bytes, so multibyte
// scripts like Chinese or Arabic get the full allowance.
func validateText(text string, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("text is required and must be a non-empty string")
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", fmt.Errorf("text cannot exceed %d characters", maxLen)
	}
	return trimmed, nil
}

// validateLanguage normalizes a language code, substituting the default
// when absent.
func validateLanguage(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return defaultLanguage, nil
	}
	if !languageCodeRe.MatchString(trimmed) {
		return "", fmt.Errorf("language must be a valid language code")
	}
	return strings.ToLower(trimmed), nil
}

// validateRequiredLanguage is validateLanguage without the default.
func validateRequiredLanguage(code, field string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required and must be a valid language code", field)
	}
	if !languageCodeRe.MatchString(trimmed) {
		return "", fmt.Errorf("%s must be a valid language code", field)
	}
	return strings.ToLower(trimmed), nil
}

func validateTone(tone string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(tone))
	if trimmed == "" {
		return defaultTone, nil
	}
	if !validTones[trimmed] {
		return "", fmt.Errorf("tone must be one of: casual, professional, academic, creative")
	}
	return trimmed, nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
