package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable marks transport-level failures reaching the ML service.
var ErrUnavailable = errors.New("ml service unavailable")

// UpstreamError is a non-2xx answer from the ML service, preserved so the
// handler can pass code and message through to the client.
type UpstreamError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ml service returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client is the HTTP gateway to the ML service. The ML service is never
// exposed to browsers directly; all calls go through this proxy.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type GrammarResult struct {
	CorrectedText string            `json:"corrected_text"`
	Issues        []json.RawMessage `json:"issues"`
}

type TranslateResult struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
}

type HumanizeResult struct {
	RewrittenText string `json:"rewritten_text"`
	Tone          string `json:"tone"`
}

type PlagiarismResult struct {
	SimilarityScore  float64           `json:"similarity_score"`
	IsPlagiarized    bool              `json:"is_plagiarized"`
	MatchedSentences []json.RawMessage `json:"matched_sentences"`
}

type DetectResult struct {
	AIProbability    float64 `json:"aiProbability"`
	HumanProbability float64 `json:"humanProbability"`
	Label            string  `json:"label"`
	Confidence       string  `json:"confidence"`
}

// LanguagePair is one supported translation direction.
type LanguagePair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (c *Client) GrammarCheck(ctx context.Context, text, language string) (*GrammarResult, error) {
	var out GrammarResult
	err := c.post(ctx, "/grammar/check", map[string]string{
		"text":     text,
		"language": language,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (*TranslateResult, error) {
	var out TranslateResult
	err := c.post(ctx, "/translate", map[string]string{
		"text":        text,
		"source_lang": sourceLang,
		"target_lang": targetLang,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Humanize(ctx context.Context, text, tone, language string) (*HumanizeResult, error) {
	var out HumanizeResult
	err := c.post(ctx, "/humanize", map[string]string{
		"text":     text,
		"tone":     tone,
		"language": language,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlagiarismCheck(ctx context.Context, text, language string) (*PlagiarismResult, error) {
	var out PlagiarismResult
	err := c.post(ctx, "/plagiarism/check", map[string]string{
		"text":     text,
		"language": language,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DetectAI(ctx context.Context, text string) (*DetectResult, error) {
	var out DetectResult
	err := c.post(ctx, "/ai-detect/check", map[string]string{"text": text}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TranslationPairs fetches the currently supported translation directions.
func (c *Client) TranslationPairs(ctx context.Context) ([]LanguagePair, error) {
	var out struct {
		Pairs []LanguagePair `json:"pairs"`
	}
	if err := c.get(ctx, "/languages/pairs", &out); err != nil {
		return nil, err
	}
	return out.Pairs, nil
}

// Healthy reports whether the ML service answers its health probe.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return parseUpstreamError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode ml response: %w", err)
	}
	return nil
}

// parseUpstreamError extracts the {error, message} payload the ML service
// wraps into FastAPI's detail field. A plain-string detail becomes the
// message with no code. Language rejections arrive as message text, so
// they are normalized into a code here; callers branch on the typed
// error, never on message content.
func parseUpstreamError(status int, data []byte) error {
	upErr := &UpstreamError{StatusCode: status}

	var wrapper struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Detail) > 0 {
		var structured struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(wrapper.Detail, &structured); err == nil && (structured.Error != "" || structured.Message != "") {
			upErr.Code = structured.Error
			upErr.Message = structured.Message
			return normalizeUpstreamCode(upErr)
		}
		var plain string
		if err := json.Unmarshal(wrapper.Detail, &plain); err == nil {
			upErr.Message = plain
			return normalizeUpstreamCode(upErr)
		}
	}

	upErr.Message = string(data)
	return normalizeUpstreamCode(upErr)
}

const codeLanguageNotSupported = "LANGUAGE_NOT_SUPPORTED"

func normalizeUpstreamCode(e *UpstreamError) *UpstreamError {
	if e.Code == codeLanguageNotSupported {
		return e
	}
	if strings.Contains(e.Message, codeLanguageNotSupported) {
		e.Code = codeLanguageNotSupported
	}
	return e
}
