package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

func (s *HTTPServer) listUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) getUser(c *gin.Context) {
	u, err := s.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *HTTPServer) createUser(c *gin.Context) {
	var req createUserRequest
	if err := bindJSON(c, &req, "All fields (username, email, password) are required"); err != nil {
		s.writeError(c, err)
		return
	}

	u, err := s.users.Create(c.Request.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userResponse{Message: "User created successfully", User: u})
}

func (s *HTTPServer) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := bindJSON(c, &req, ""); err != nil {
		s.writeError(c, err)
		return
	}

	u, err := s.users.Update(c.Request.Context(), principal(c), c.Param("id"), services.UserUpdate{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{Message: "User updated successfully", User: u})
}

func (s *HTTPServer) deleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
