package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daleel-app/daleel/internal/llm"
	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/pipeline"
)

const maxHistoryEntries = 10

// handleChat is POST /chat: admission control, then the full citation
// pipeline, then the composed payload.
func (s *Server) handleChat(c *gin.Context) {
	userID, tier := currentUser(c)

	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "طلب غير صالح — requête malformée",
		})
		return
	}

	question, history, ok := resolveQuestion(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "السؤال مفقود — question manquante (fournir `message` ou `messages`)",
		})
		return
	}

	lang := req.Language
	switch lang {
	case "ar", "fr", "en":
	default:
		lang = "ar"
	}

	// Message quota is checked before any generator call.
	limit := s.cfg.Quota.Limit(tier)
	used := s.usage.MessagesUsed(userID)
	if limit >= 0 && used >= int(limit) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "لقد بلغت الحد الأقصى للرسائل — limite de messages atteinte",
			"limit":   limit,
			"current": used,
			"tier":    tier,
		})
		return
	}

	// Per-user request throttling: if throttled, the pipeline never runs.
	decision := s.counter.Allow("chat", userID)
	if !decision.Allowed {
		retryAfter := int(decision.RetryAfter.Seconds()) + 1
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "طلبات كثيرة جداً — trop de requêtes, réessayez plus tard",
			"retryAfter": retryAfter,
		})
		return
	}

	// Upstream generator guard.
	if !s.limiter.Allow(userID) {
		c.Header("Retry-After", "1")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "طلبات كثيرة جداً — trop de requêtes, réessayez plus tard",
			"retryAfter": 1,
		})
		return
	}

	images := make([]llm.Image, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, llm.Image{Data: img.Data, MimeType: img.MimeType})
	}

	out, err := s.pipeline.Respond(c.Request.Context(), pipeline.ChatInput{
		UserID:   userID,
		Tier:     tier,
		Language: lang,
		Question: question,
		History:  history,
		Images:   images,
	})
	if err != nil {
		s.respondGeneratorError(c, err)
		return
	}

	messageCount := s.usage.Increment(userID)

	references := make([]string, 0, len(out.References))
	for _, ref := range out.References {
		references = append(references, ref.Text)
	}

	conversationID := out.ConversationID
	c.JSON(http.StatusOK, model.ChatResponse{
		Message:        out.Answer,
		Response:       out.Answer,
		References:     references,
		ConversationID: &conversationID,
		MessageCount:   messageCount,
		Quality: model.QualitySummary{
			Score:        out.Analysis.Score,
			ValidRefs:    len(out.Analysis.ValidRefs),
			HasQuranRef:  out.Analysis.HasQuranRef,
			HasHadithRef: out.Analysis.HasHadithRef,
		},
		Usage: model.UsageInfo{
			MessagesUsed:  messageCount,
			MessagesLimit: limit,
			Tier:          tier,
		},
	})
}

// resolveQuestion enforces that exactly one of message/messages is set.
// With messages, the last user-role entry is the active question and at
// most the last 10 entries are forwarded as history.
func resolveQuestion(req model.ChatRequest) (string, []llm.Message, bool) {
	hasMessage := strings.TrimSpace(req.Message) != ""
	hasMessages := len(req.Messages) > 0

	switch {
	case hasMessage && !hasMessages:
		return strings.TrimSpace(req.Message), nil, true

	case hasMessages && !hasMessage:
		entries := req.Messages
		if len(entries) > maxHistoryEntries {
			entries = entries[len(entries)-maxHistoryEntries:]
		}

		questionIdx := -1
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Role == "user" {
				questionIdx = i
				break
			}
		}
		if questionIdx == -1 || strings.TrimSpace(entries[questionIdx].Content) == "" {
			return "", nil, false
		}

		var history []llm.Message
		for i, m := range entries {
			if i == questionIdx {
				continue
			}
			role := "user"
			if m.Role == "assistant" {
				role = "assistant"
			}
			history = append(history, llm.Message{Role: role, Content: m.Content})
		}
		return strings.TrimSpace(entries[questionIdx].Content), history, true

	default:
		return "", nil, false
	}
}

// respondGeneratorError maps generator failures to the API error taxonomy
func (s *Server) respondGeneratorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		c.Header("Retry-After", "30")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "خدمة التوليد مشغولة — service de génération surchargé, réessayez plus tard",
			"retryAfter": 30,
		})
	case errors.Is(err, llm.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "طلب غير صالح — requête rejetée par le service de génération",
		})
	default:
		// Includes ErrAuth: invalid upstream credentials are our
		// misconfiguration, not the caller's problem.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "خطأ في خدمة التوليد — erreur du service de génération",
		})
	}
}
