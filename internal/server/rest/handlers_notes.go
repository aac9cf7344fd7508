package rest

import (
	"net/http"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/gin-gonic/gin"
)

type attachmentRequest struct {
	FileName string `json:"fileName"`
}

func (s *Server) handleCreateNote(c *gin.Context) {
	var data models.CreateNoteData
	if !s.bind(c, &data) {
		return
	}
	note, err := s.svc.Notes.Create(c.Request.Context(), currentUser(c), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Note created successfully.", "note": note})
}

func (s *Server) handleListNotes(c *gin.Context) {
	notes, err := s.svc.Notes.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (s *Server) handleGetNote(c *gin.Context) {
	note, err := s.svc.Notes.Get(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	var patch models.UpdateNoteData
	if !s.bind(c, &patch) {
		return
	}
	note, err := s.svc.Notes.Update(c.Request.Context(), c.Param("id"), currentUser(c), patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note updated successfully.", "note": note})
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if err := s.svc.Notes.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully."})
}

func (s *Server) handleCreateAttachment(c *gin.Context) {
	var req attachmentRequest
	if !s.bind(c, &req) {
		return
	}
	a, uploadURL, err := s.svc.Attachments.Create(c.Request.Context(), currentUser(c), c.Param("id"), req.FileName)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attachment": a, "uploadUrl": uploadURL})
}

func (s *Server) handleCompleteAttachment(c *gin.Context) {
	a, err := s.svc.Attachments.Complete(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachment": a})
}

func (s *Server) handleListAttachments(c *gin.Context) {
	list, err := s.svc.Attachments.List(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if list == nil {
		list = []*models.Attachment{}
	}
	c.JSON(http.StatusOK, gin.H{"attachments": list})
}

func (s *Server) handleDownloadAttachment(c *gin.Context) {
	a, downloadURL, err := s.svc.Attachments.DownloadURL(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachment": a, "downloadUrl": downloadURL})
}
