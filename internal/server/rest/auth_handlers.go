package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req, "All fields are required"); err != nil {
		s.writeError(c, err)
		return
	}

	res, err := s.auth.Register(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message:      "User registered successfully",
		User:         res.User,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req, ""); err != nil {
		s.writeError(c, common.WrapError(common.KindUnauthorized, "Invalid credentials", err))
		return
	}

	res, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message:      "Login successful",
		User:         res.User,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

func (s *HTTPServer) refresh(c *gin.Context) {
	var req refreshRequest
	if err := bindJSON(c, &req, ""); err != nil {
		s.writeError(c, common.WrapError(common.KindUnauthorized, "Refresh token required", err))
		return
	}

	pair, err := s.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (s *HTTPServer) logout(c *gin.Context) {
	var req refreshRequest
	if err := bindJSON(c, &req, ""); err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}
