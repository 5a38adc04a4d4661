package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(
		s.recovery(),
		s.tracing(),
		s.requestLogger(),
		corsMiddleware(s.allowedOrigins),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	a := r.Group("/auth")
	{
		a.POST("/register", s.register)
		a.POST("/login", s.login)
		a.POST("/refresh", s.refresh)
		a.POST("/logout", s.logout)
	}

	protected := r.Group("/", s.authMiddleware())

	p := protected.Group("/posts")
	{
		p.GET("", s.listPosts)
		p.GET("/:id", s.getPost)
		p.POST("", s.createPost)
		p.PUT("/:id", s.updatePost)
		p.DELETE("/:id", s.deletePost)
	}

	c := protected.Group("/comments")
	{
		c.GET("", s.listComments)
		c.GET("/:id", s.getComment)
		c.POST("/:postId", s.createComment)
		c.PUT("/:id", s.updateComment)
		c.DELETE("/:id", s.deleteComment)
	}

	u := protected.Group("/users")
	{
		u.GET("", s.listUsers)
		u.GET("/:id", s.getUser)
		u.POST("", s.createUser)
		u.PUT("/:id", s.updateUser)
		u.DELETE("/:id", s.deleteUser)
	}

	return r
}
