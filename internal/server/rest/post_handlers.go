package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

func (s *HTTPServer) listPosts(c *gin.Context) {
	list, err := s.posts.List(c.Request.Context(), c.Query("sender"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) getPost(c *gin.Context) {
	post, err := s.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *HTTPServer) createPost(c *gin.Context) {
	var req createPostRequest
	if err := bindJSON(c, &req, "Title and content are required"); err != nil {
		s.writeError(c, err)
		return
	}

	post, err := s.posts.Create(c.Request.Context(), principal(c), req.Title, req.Content)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (s *HTTPServer) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := bindJSON(c, &req, ""); err != nil {
		s.writeError(c, err)
		return
	}

	post, err := s.posts.Update(c.Request.Context(), principal(c), c.Param("id"), services.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *HTTPServer) deletePost(c *gin.Context) {
	if err := s.posts.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}
