package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dekut-chatbot/internal/bot"
)

// ChatHandler answers chat messages through the inference engine.
type ChatHandler struct {
	engine *bot.Engine
	logger *zap.Logger
}

// NewChatHandler creates a handler around an engine built in main; there is
// no package-level chatbot state.
func NewChatHandler(engine *bot.Engine, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{engine: engine, logger: logger}
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply returned to the web client.
type ChatResponse struct {
	Response   string  `json:"response"`
	Success    bool    `json:"success"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Blank input never reaches the engine.
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusOK, ChatResponse{Response: "Please enter a message.", Success: false})
		return
	}

	reply := h.engine.Respond(req.Message)

	h.logger.Info("Chat message handled",
		zap.String("message", req.Message),
		zap.String("intent", reply.Intent),
		zap.Float64("confidence", reply.Confidence))

	c.JSON(http.StatusOK, ChatResponse{
		Response:   reply.Text,
		Success:    true,
		Intent:     reply.Intent,
		Confidence: reply.Confidence,
	})
}

// Home handles GET / and serves the chat page.
func (h *ChatHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// Health handles GET /health.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
