package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrammarCheckDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/grammar/check", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"corrected_text":"He goes home.","issues":[{"type":"grammar"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.GrammarCheck(context.Background(), "He go home.", "en")
	require.NoError(t, err)
	require.Equal(t, "He goes home.", result.CorrectedText)
	require.Len(t, result.Issues, 1)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Translate(context.Background(), "hello", "en", "fr")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestUpstreamErrorParsesStructuredDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail":{"success":false,"error":"MODEL_LOADING","message":"Model is still loading"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Humanize(context.Background(), "text", "casual", "en")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	require.Equal(t, "MODEL_LOADING", upErr.Code)
	require.Equal(t, "Model is still loading", upErr.Message)
}

func TestUpstreamErrorParsesPlainStringDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"invalid input"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.PlagiarismCheck(context.Background(), "text", "en")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, "invalid input", upErr.Message)
	require.Empty(t, upErr.Code)
}

func TestUpstreamErrorNormalizesLanguageRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":{"success":false,"error":"GRAMMAR_ERROR","message":"LANGUAGE_NOT_SUPPORTED: xx is not available"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GrammarCheck(context.Background(), "text", "xx")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, codeLanguageNotSupported, upErr.Code)
}

func TestDetectAIDecodesCamelCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai-detect/check", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"aiProbability":0.82,"humanProbability":0.18,"label":"AI","confidence":"high"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.DetectAI(context.Background(), "some text")
	require.NoError(t, err)
	require.InDelta(t, 0.82, result.AIProbability, 1e-9)
	require.Equal(t, "AI", result.Label)
	require.Equal(t, "high", result.Confidence)
}

func TestTranslationPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/languages/pairs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pairs":[{"from":"en","to":"fr"},{"from":"en","to":"de"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	pairs, err := client.TranslationPairs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []LanguagePair{{From: "en", To: "fr"}, {From: "en", To: "de"}}, pairs)
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.True(t, client.Healthy(context.Background()))

	srv.Close()
	require.False(t, client.Healthy(context.Background()))
}
