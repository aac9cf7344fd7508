package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateEvent(c *gin.Context) {
	var data models.CreateEventData
	if !s.bind(c, &data) {
		return
	}
	event, err := s.svc.Events.Create(c.Request.Context(), currentUser(c), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully.", "event": event})
}

// eventWindow reads ?startDate&endDate. The window applies only when both
// are present.
func eventWindow(c *gin.Context) (*models.TimeRange, error) {
	from, to := c.Query("startDate"), c.Query("endDate")
	if from == "" || to == "" {
		return nil, nil
	}
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return nil, common.Validation("startDate must be an RFC3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return nil, common.Validation("endDate must be an RFC3339 timestamp")
	}
	return &models.TimeRange{From: start, To: end}, nil
}

func (s *Server) handleListEvents(c *gin.Context) {
	window, err := eventWindow(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	events, err := s.svc.Events.List(c.Request.Context(), currentUser(c), window)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) handleGetEvent(c *gin.Context) {
	event, err := s.svc.Events.Get(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (s *Server) handleUpdateEvent(c *gin.Context) {
	var patch models.UpdateEventData
	if !s.bind(c, &patch) {
		return
	}
	event, err := s.svc.Events.Update(c.Request.Context(), c.Param("id"), currentUser(c), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully.", "event": event})
}

func (s *Server) handleDeleteEvent(c *gin.Context) {
	if err := s.svc.Events.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
