package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listComments(c *gin.Context) {
	list, err := s.comments.List(c.Request.Context(), c.Query("postId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) getComment(c *gin.Context) {
	comment, err := s.comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *HTTPServer) createComment(c *gin.Context) {
	var req commentRequest
	if err := bindJSON(c, &req, "Content is required"); err != nil {
		s.writeError(c, err)
		return
	}

	comment, err := s.comments.Create(c.Request.Context(), principal(c), c.Param("postId"), req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *HTTPServer) updateComment(c *gin.Context) {
	var req commentRequest
	if err := bindJSON(c, &req, "Content is required"); err != nil {
		s.writeError(c, err)
		return
	}

	comment, err := s.comments.Update(c.Request.Context(), principal(c), c.Param("id"), req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *HTTPServer) deleteComment(c *gin.Context) {
	if err := s.comments.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
