package ai

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/middleware"
	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/modules/history"
	"github.com/textora/core/internal/modules/settings"
	"github.com/textora/core/internal/pkg/ratelimit"
	pkgredis "github.com/textora/core/internal/pkg/redis"
	"github.com/textora/core/internal/pkg/response"
	"go.uber.org/zap"
)

const featureDisabledMessage = "This feature is currently disabled by admin"

// Handler proxies AI operations to the ML service. Each operation runs
// validate, flag check and rate limit before anything reaches the
// upstream or the ledger.
type Handler struct {
	client  *Client
	flags   *settings.Service
	ledger  *history.Service
	pairs   *pairCatalogue
	limiter ratelimit.Limiter
	logger  *zap.Logger
}

func NewHandler(client *Client, flags *settings.Service, ledger *history.Service,
	cache *pkgredis.Client, limiter ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		client:  client,
		flags:   flags,
		ledger:  ledger,
		pairs:   newPairCatalogue(client, cache, logger),
		limiter: limiter,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/ai")
	grp.GET("/languages", h.languages)
	grp.GET("/languages/translation", h.translationLanguages)

	grp.POST("/grammar", authMW, h.grammar)
	grp.POST("/translate", authMW, h.translate)
	grp.POST("/humanize", authMW, h.humanize)
	grp.POST("/plagiarism", authMW, h.plagiarism)
	grp.POST("/detect", authMW, h.detect)
}

func (h *Handler) languages(c *gin.Context) {
	response.OK(c, "Supported languages retrieved successfully", gin.H{"languages": SupportedLanguages})
}

func (h *Handler) translationLanguages(c *gin.Context) {
	pairs := h.pairs.Pairs(c.Request.Context())
	response.OK(c, "Supported translation pairs retrieved successfully", gin.H{"pairs": pairs})
}

func (h *Handler) grammar(c *gin.Context) {
	var dto GrammarDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	text, err := validateText(dto.Text, maxTextLength)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	language, err := validateLanguage(dto.Language)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}

	flags, err := h.flags.Get()
	if err != nil {
		response.InternalError(c)
		return
	}
	if !flags.GrammarEnabled {
		response.Forbidden(c, response.CodeFeatureDisabled, featureDisabledMessage)
		return
	}
	if !h.allow(c) {
		return
	}

	result, err := h.client.GrammarCheck(c.Request.Context(), text, language)
	if err != nil {
		h.upstreamError(c, err, "GRAMMAR_ERROR")
		return
	}

	h.record(c, models.ActionGrammar, text, result.CorrectedText, map[string]interface{}{
		"inputLength":  utf8.RuneCountInString(text),
		"outputLength": utf8.RuneCountInString(result.CorrectedText),
		"issuesCount":  len(result.Issues),
		"language":     language,
	})

	response.OK(c, "Grammar check completed successfully", gin.H{
		"originalText":  text,
		"correctedText": result.CorrectedText,
		"issues":        result.Issues,
		"language":      language,
	})
}

func (h *Handler) translate(c *gin.Context) {
	var dto TranslateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	text, err := validateText(dto.Text, maxTextLength)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	source := dto.SourceLanguage
	if source == "" {
		source = defaultLanguage
	}
	sourceLang, err := validateRequiredLanguage(source, "sourceLanguage")
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	targetLang, err := validateRequiredLanguage(dto.TargetLanguage, "targetLanguage")
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	if sourceLang == targetLang {
		response.BadRequest(c, response.CodeValidationError, "sourceLanguage and targetLanguage must be different")
		return
	}

	flags, err := h.flags.Get()
	if err != nil {
		response.InternalError(c)
		return
	}
	if !flags.TranslationEnabled {
		response.Forbidden(c, response.CodeFeatureDisabled, featureDisabledMessage)
		return
	}
	if !h.allow(c) {
		return
	}

	result, err := h.client.Translate(c.Request.Context(), text, sourceLang, targetLang)
	if err != nil {
		h.upstreamError(c, err, "TRANSLATION_ERROR")
		return
	}

	h.record(c, models.ActionTranslate, text, result.TranslatedText, map[string]interface{}{
		"sourceLanguage": sourceLang,
		"targetLanguage": targetLang,
		"inputLength":    utf8.RuneCountInString(text),
		"outputLength":   utf8.RuneCountInString(result.TranslatedText),
	})

	response.OK(c, "Translation completed successfully", gin.H{
		"originalText":   text,
		"translatedText": result.TranslatedText,
		"sourceLanguage": sourceLang,
		"targetLanguage": targetLang,
		"confidence":     0.95,
	})
}

func (h *Handler) humanize(c *gin.Context) {
	var dto HumanizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	text, err := validateText(dto.Text, maxTextLength)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	if words := wordCount(text); words < minHumanizeWords || words > maxHumanizeWords {
		response.BadRequest(c, response.CodeValidationError,
			fmt.Sprintf("Text must be between %d and %d words", minHumanizeWords, maxHumanizeWords))
		return
	}
	tone, err := validateTone(dto.Tone)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	language, err := validateLanguage(dto.Language)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}

	flags, err := h.flags.Get()
	if err != nil {
		response.InternalError(c)
		return
	}
	if !flags.HumanizeEnabled {
		response.Forbidden(c, response.CodeFeatureDisabled, featureDisabledMessage)
		return
	}
	if !h.allow(c) {
		return
	}

	result, err := h.client.Humanize(c.Request.Context(), text, tone, language)
	if err != nil {
		h.upstreamError(c, err, "HUMANIZE_ERROR")
		return
	}

	h.record(c, models.ActionHumanize, text, result.RewrittenText, map[string]interface{}{
		"inputLength":  utf8.RuneCountInString(text),
		"outputLength": utf8.RuneCountInString(result.RewrittenText),
		"tone":         result.Tone,
		"language":     language,
	})

	response.OK(c, "Text humanization completed successfully", gin.H{
		"originalText":  text,
		"humanizedText": result.RewrittenText,
		"tone":          result.Tone,
		"language":      language,
		"changes":       []string{"Improved sentence flow", "Added natural transitions"},
	})
}

func (h *Handler) plagiarism(c *gin.Context) {
	var dto PlagiarismDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	text, err := validateText(dto.Text, maxTextLength)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	language, err := validateLanguage(dto.Language)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}

	flags, err := h.flags.Get()
	if err != nil {
		response.InternalError(c)
		return
	}
	if !flags.PlagiarismEnabled {
		response.Forbidden(c, response.CodeFeatureDisabled, featureDisabledMessage)
		return
	}
	if !h.allow(c) {
		return
	}

	result, err := h.client.PlagiarismCheck(c.Request.Context(), text, language)
	if err != nil {
		h.upstreamError(c, err, "PLAGIARISM_ERROR")
		return
	}

	summary := fmt.Sprintf("Plagiarism analysis completed. Score: %g%%", result.SimilarityScore)
	h.record(c, models.ActionPlagiarism, text, summary, map[string]interface{}{
		"plagiarismScore": result.SimilarityScore,
		"isPlagiarized":   result.IsPlagiarized,
		"inputLength":     utf8.RuneCountInString(text),
		"language":        language,
		"matchesCount":    len(result.MatchedSentences),
	})

	recommendation := "Content appears original"
	if result.IsPlagiarized {
		recommendation = "Consider rephrasing the content"
	}

	response.OK(c, "Plagiarism check completed successfully", gin.H{
		"text":            text,
		"plagiarismScore": result.SimilarityScore,
		"isPlagiarized":   result.IsPlagiarized,
		"matches":         result.MatchedSentences,
		"language":        language,
		"recommendation":  recommendation,
	})
}

// detect is an auxiliary probe: no feature flag guards it and results are
// not recorded in history.
func (h *Handler) detect(c *gin.Context) {
	var dto DetectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	text, err := validateText(dto.Text, maxDetectLength)
	if err != nil {
		response.BadRequest(c, response.CodeValidationError, err.Error())
		return
	}
	if !h.allow(c) {
		return
	}

	result, err := h.client.DetectAI(c.Request.Context(), text)
	if err != nil {
		h.upstreamError(c, err, "AI_DETECTION_ERROR")
		return
	}

	response.OK(c, "AI detection completed successfully", gin.H{
		"aiProbability":    result.AIProbability,
		"humanProbability": result.HumanProbability,
		"isAIGenerated":    result.Label == "AI",
		"verdict":          result.Label,
		"confidence":       result.Confidence,
	})
}

// allow applies the per-user rate limit. Admins are exempt; limiter
// failures let the request through.
func (h *Handler) allow(c *gin.Context) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	key := middleware.CurrentUserID(c)
	if key == "" {
		key = c.ClientIP()
	}
	if key == "" {
		return true
	}

	ok, retryAfter, err := h.limiter.Allow(c.Request.Context(), key)
	if err != nil {
		h.logger.Warn("rate limiter error", zap.Error(err))
		return true
	}
	if !ok {
		response.TooManyRequests(c, retryAfter)
		return false
	}
	return true
}

// record appends the completed operation to the caller's ledger. The
// operation already succeeded, so a ledger failure is logged rather than
// turned into a client error.
func (h *Handler) record(c *gin.Context, actionType, input, output string, metadata map[string]interface{}) {
	userID := middleware.CurrentUserID(c)
	if err := h.ledger.Append(userID, actionType, input, output, metadata); err != nil {
		h.logger.Error("history append failed",
			zap.String("user_id", userID),
			zap.String("action", actionType),
			zap.Error(err),
		)
	}
}

// upstreamError maps client errors onto the response envelope.
func (h *Handler) upstreamError(c *gin.Context, err error, genericCode string) {
	if errors.Is(err, ErrUnavailable) {
		response.Error(c, http.StatusServiceUnavailable, response.CodeMLUnavailable,
			"AI service is temporarily unavailable. Please try again later.")
		return
	}

	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		if upErr.Code == response.CodeLanguageNotSupported {
			response.BadRequest(c, response.CodeLanguageNotSupported, "The selected language is not supported for this operation.")
			return
		}
		code := upErr.Code
		if code == "" {
			code = genericCode
		}
		message := upErr.Message
		if message == "" {
			message = "An error occurred while processing your request."
		}
		status := upErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		response.Error(c, status, code, message)
		return
	}

	h.logger.Error("ml request failed", zap.Error(err))
	response.InternalError(c)
}
