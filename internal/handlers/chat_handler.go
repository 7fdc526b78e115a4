package handlers

import (
	"net/http"

	"agroai-api/internal/models"
	"agroai-api/internal/store"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
}

// GetChat returns the transcript
func (h *SessionHandler) GetChat(c *gin.Context) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"messages": s.Messages, "loading": s.ChatLoading})
}

// SendChat runs one chat turn. A failed call still answers 200 with the apology appended.
func (h *SessionHandler) SendChat(c *gin.Context) {
	id := c.Param("id")

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Noto'g'ri so'rov: "+err.Error())
		return
	}

	history, err := h.store.BeginChat(id, req.Message)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var s *store.Session
	reply, err := h.advisor.Chat(c.Request.Context(), history, req.Message)
	if err != nil {
		logAdapterError(h.logger, "chat", id, err)
		s, err = h.store.FailChat(id, models.ChatApology)
	} else {
		s, err = h.store.CompleteChat(id, reply)
	}
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"reply":    s.Messages[len(s.Messages)-1],
		"messages": s.Messages,
	})
}
