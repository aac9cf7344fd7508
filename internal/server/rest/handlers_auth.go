package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/dmitrijs2005/supreassistant/internal/server/services"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func authResponse(message string, res *services.AuthResult) gin.H {
	return gin.H{
		"message":      message,
		"user":         res.User,
		"token":        res.AccessToken,
		"refreshToken": res.RefreshToken,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var data models.UserRegistrationData
	if !s.bind(c, &data) {
		return
	}
	res, err := s.svc.Users.Register(c.Request.Context(), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse("User registered successfully.", res))
}

func (s *Server) handleLogin(c *gin.Context) {
	var data models.UserLoginData
	if !s.bind(c, &data) {
		return
	}
	res, err := s.svc.Users.Login(c.Request.Context(), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse("Login successful.", res))
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if !s.bind(c, &req) {
		return
	}
	pair, err := s.svc.Users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": pair.AccessToken, "refreshToken": pair.RefreshToken})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	user, err := s.svc.Users.GetProfile(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var data models.UpdateProfileData
	if !s.bind(c, &data) {
		return
	}
	if data.Username == nil && data.Email == nil && data.Password == nil {
		s.writeError(c, common.Validation("Nothing to update"))
		return
	}
	user, err := s.svc.Users.UpdateProfile(c.Request.Context(), currentUser(c), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully.", "user": user})
}

func (s *Server) handleDeleteProfile(c *gin.Context) {
	if err := s.svc.Users.DeleteProfile(c.Request.Context(), currentUser(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User account deleted successfully."})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()
	if err := s.svc.DB.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
