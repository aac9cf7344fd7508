package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if !s.bind(c, &req) {
		return
	}
	reply, err := s.svc.Companions.Chat(c.Request.Context(), currentUser(c), req.Message)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleHistory(c *gin.Context) {
	var (
		limit  int
		before *time.Time
	)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(c, common.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}
	if v := c.Query("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(c, common.Validation("before must be an RFC3339 timestamp"))
			return
		}
		before = &t
	}

	list, err := s.svc.Companions.History(c.Request.Context(), currentUser(c), limit, before)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.Message{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetCompanion(c *gin.Context) {
	companion, err := s.svc.Companions.GetOrCreate(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, companion)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var settings models.CompanionSettings
	if !s.bind(c, &settings) {
		return
	}
	companion, err := s.svc.Companions.UpdateSettings(c.Request.Context(), currentUser(c), settings)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, companion)
}
