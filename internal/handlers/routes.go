package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts /health, /metrics and the /api/v1 routes on r.
// apiMiddleware (rate limiting, tracing) runs on every /api/v1 route.
func (h *Handlers) RegisterRoutes(r *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := h.auth.Middleware()
	optionalAuth := h.auth.OptionalMiddleware()

	api := r.Group("/api/v1", apiMiddleware...)
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", requireAuth, h.Me)
		}

		events := api.Group("/events")
		{
			events.GET("", optionalAuth, h.ListEvents)
			events.POST("", requireAuth, h.CreateEvent)
			events.GET("/:id", optionalAuth, h.GetEvent)
			events.PUT("/:id", requireAuth, h.UpdateEvent)
			events.DELETE("/:id", requireAuth, h.DeleteEvent)
			events.POST("/:id/join", requireAuth, h.JoinEvent)
			events.DELETE("/:id/join", requireAuth, h.LeaveEvent)
			events.GET("/:id/attendees", optionalAuth, h.ListEventAttendees)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", optionalAuth, h.ListGroups)
			groups.POST("", requireAuth, h.CreateGroup)
			groups.GET("/:id", optionalAuth, h.GetGroup)
			groups.PUT("/:id", requireAuth, h.UpdateGroup)
			groups.DELETE("/:id", requireAuth, h.DeleteGroup)
			groups.POST("/:id/join", requireAuth, h.JoinGroup)
			groups.DELETE("/:id/join", requireAuth, h.LeaveGroup)
			groups.GET("/:id/members", optionalAuth, h.ListGroupMembers)
		}

		users := api.Group("/users")
		{
			users.GET("", optionalAuth, h.ListUsers)
			users.PUT("/me", requireAuth, h.UpdateMyProfile)
			users.GET("/:id", optionalAuth, h.GetUser)
			users.GET("/:id/events", optionalAuth, h.ListUserEvents)
			users.GET("/:id/groups", optionalAuth, h.ListUserGroups)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", optionalAuth, h.ListPosts)
			posts.POST("", requireAuth, h.CreatePost)
			posts.GET("/:id", optionalAuth, h.GetPost)
			posts.PUT("/:id", requireAuth, h.UpdatePost)
			posts.DELETE("/:id", requireAuth, h.DeletePost)
			posts.POST("/:id/like", requireAuth, h.LikePost)
			posts.DELETE("/:id/like", requireAuth, h.UnlikePost)
			posts.GET("/:id/comments", optionalAuth, h.ListComments)
			posts.POST("/:id/comments", requireAuth, h.CreateComment)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:id/replies", optionalAuth, h.ListReplies)
			comments.DELETE("/:id", requireAuth, h.DeleteComment)
		}

		reports := api.Group("/reports")
		{
			reports.POST("", requireAuth, h.CreateReport)
			reports.GET("", requireAuth, auth.RequireAdmin(), h.ListReports)
			reports.GET("/:id", requireAuth, auth.RequireAdmin(), h.GetReport)
			reports.PUT("/:id", requireAuth, auth.RequireAdmin(), h.ReviewReport)
		}

		api.GET("/dashboard", requireAuth, h.GetDashboard)
	}
}
