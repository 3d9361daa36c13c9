// README: Chat, session, model, and telemetry handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atlas/internal/llm"
)

const defaultSessionID = "default"

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// HandleChat handles POST /api/chat.
func (s *Server) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if req.SessionID == "" {
		req.SessionID = defaultSessionID
	}

	reply := s.manager.Process(c.Request.Context(), req.SessionID, req.Message)
	writeJSON(c, http.StatusOK, chatResponse{Response: reply, SessionID: req.SessionID})
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

// HandleReset handles POST /api/reset.
func (s *Server) HandleReset(c *gin.Context) {
	var req resetRequest
	// Body is optional; an empty or absent body resets the default session.
	_ = c.ShouldBindJSON(&req)
	if req.SessionID == "" {
		req.SessionID = defaultSessionID
	}

	s.manager.Reset(req.SessionID)
	writeJSON(c, http.StatusOK, gin.H{"status": "success", "message": "Session reset"})
}

type modelsResponse struct {
	Models       []string `json:"models"`
	CurrentModel string   `json:"current_model"`
}

// HandleGetModels handles GET /api/models.
func (s *Server) HandleGetModels(c *gin.Context) {
	sessionID := c.DefaultQuery("session_id", defaultSessionID)
	writeJSON(c, http.StatusOK, modelsResponse{
		Models:       s.reg.DisplayNames(),
		CurrentModel: s.manager.CurrentModel(sessionID),
	})
}

type modelChangeRequest struct {
	ModelDisplayName string `json:"model_display_name"`
	SessionID        string `json:"session_id"`
}

// HandleChangeModel handles POST /api/models.
func (s *Server) HandleChangeModel(c *gin.Context) {
	var req modelChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID == "" {
		req.SessionID = defaultSessionID
	}

	if err := s.manager.SetModel(req.SessionID, req.ModelDisplayName); err != nil {
		if errors.Is(err, llm.ErrUnknownModel) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("model change failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "success", "current_model": req.ModelDisplayName})
}

// HandleTraces handles GET /api/traces.
func (s *Server) HandleTraces(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"traces": s.tracer.Recent(limit)})
}

// HandleUsage handles GET /api/usage.
func (s *Server) HandleUsage(c *gin.Context) {
	writeJSON(c, http.StatusOK, s.tracer.Summary())
}

// HandleRoot handles GET /.
func (s *Server) HandleRoot(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"message": "Travel Agent API", "version": apiVersion})
}

// HandleHealth handles GET /health.
func (s *Server) HandleHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "healthy"})
}
