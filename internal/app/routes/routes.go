package routes

import (
	"github.com/csecl/interviewhub/internal/app/controllers"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP controller the router mounts
type Controllers struct {
	Forum         *controllers.ForumController
	Notifications *controllers.NotificationController
	Applications  *controllers.ApplicationController
	Admin         *controllers.AdminController
	WebSocket     *websocket.Handler
}

// Options tunes route registration
type Options struct {
	// IssueUserIDs hands a fresh identity to anonymous post and comment authors.
	IssueUserIDs bool
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, opts Options) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.UserIdentity())

	// --- Forum ---
	posts := v1.Group("/posts")
	{
		posts.GET("", c.Forum.ListPosts)
		posts.GET("/:id", c.Forum.GetPost)
		posts.GET("/:id/comments", c.Forum.ListComments)

		authoring := posts.Group("")
		authoring.Use(middleware.EnsureUserID(opts.IssueUserIDs))
		{
			authoring.POST("", c.Forum.CreatePost)
			authoring.POST("/:id/comments", c.Forum.CreateComment)
		}

		posts.POST("/:id/like", middleware.RequireUserID(), c.Forum.TogglePostLike)
	}
	v1.POST("/comments/:id/like", middleware.RequireUserID(), c.Forum.ToggleCommentLike)

	// --- Notifications ---
	notifications := v1.Group("/notifications")
	{
		notifications.GET("", c.Notifications.List)
		notifications.GET("/unread-count", c.Notifications.UnreadCount)
		notifications.GET("/ws", c.WebSocket.HandleConnection)

		identified := notifications.Group("")
		identified.Use(middleware.RequireUserID())
		{
			identified.POST("/:id/read", c.Notifications.MarkRead)
			identified.POST("/read-all", c.Notifications.MarkAllRead)
		}
	}

	// --- Applications ---
	applications := v1.Group("/applications")
	{
		applications.POST("", c.Applications.Submit)
		applications.POST("/result", c.Applications.QueryResult)
	}

	// --- Admin ---
	admin := v1.Group("/admin")
	admin.POST("/auth/login", c.Admin.Login)

	protected := admin.Group("")
	protected.Use(authMiddleware.AdminAuth())
	{
		adminApps := protected.Group("/applications")
		{
			adminApps.GET("", c.Applications.List)
			adminApps.GET("/by-name", c.Applications.SearchByName)
			adminApps.GET("/result", c.Applications.AdminQueryResult)
			adminApps.GET("/export", c.Applications.Export)
			adminApps.POST("", c.Applications.Create)
			adminApps.GET("/:id", c.Applications.Get)
			adminApps.PUT("/:id", c.Applications.Update)
			adminApps.DELETE("/:id", c.Applications.Delete)
			adminApps.POST("/:id/score", c.Applications.Score)
			adminApps.POST("/:id/remark", c.Applications.Remark)
		}

		results := protected.Group("/results")
		{
			results.POST("/release", c.Admin.ReleaseResults)
			results.POST("/hide", c.Admin.HideResults)
			results.GET("/status", c.Admin.ResultStatus)
		}

		protected.POST("/announcements", c.Admin.CreateAnnouncement)

		forum := protected.Group("/forum")
		{
			forum.GET("/posts", c.Forum.ListPosts)
			forum.POST("/posts/:id/pin", c.Forum.PinPost)
			forum.POST("/posts/:id/feature", c.Forum.FeaturePost)
			forum.DELETE("/posts/:id", c.Forum.DeletePost)
			forum.DELETE("/comments/:id", c.Forum.DeleteComment)
		}
	}
}
