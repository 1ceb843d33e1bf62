package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Prometheus
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.GinMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/signup", group.UserHandler.Signup)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
				loggedGroup.GET("/me", group.UserHandler.Me)
			}
		}

		userGroup := apiGroup.Group("/users")
		{
			// 无需登录即可访问的接口
			userGroup.GET("/:id", group.UserHandler.GetProfile)
			userGroup.GET("/:id/posts", group.UserHandler.GetUserPosts)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.PUT("/me", group.UserHandler.UpdateProfile)
				authGroup.PUT("/me/password", group.UserHandler.ChangePassword)
				authGroup.GET("/me/posts", group.UserHandler.GetMyPosts)
				authGroup.GET("/me/favorites", group.UserHandler.GetMyFavorites)
				authGroup.GET("/suggestions", group.UserFollowHandler.GetSuggestions)
				authGroup.POST("/:id/follow", group.UserFollowHandler.ToggleFollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/:id", group.PostHandler.GetPost)
			postGroup.GET("/:id/comments", group.PostActionHandler.GetComments)

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:id", group.PostHandler.DeletePost)

				authGroup.POST("/:id/reactions", group.PostActionHandler.React)
				authGroup.DELETE("/:id/reactions", group.PostActionHandler.RemoveReaction)
				authGroup.POST("/:id/favorite", group.PostActionHandler.ToggleFavorite)
				authGroup.POST("/:id/comments", group.PostActionHandler.CreateComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(middleware.AuthMiddleware())
		{
			commentGroup.POST("", group.PostActionHandler.CreateComment)
			commentGroup.DELETE("/:comment_id", group.PostActionHandler.DeleteComment)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.GET("/users", group.AdminHandler.ListUsers)
			adminGroup.PUT("/users/:id/ban", group.AdminHandler.SetBan)
			adminGroup.GET("/posts", group.PostHandler.AdminListPosts)
			adminGroup.DELETE("/posts/:id", group.PostHandler.DeletePost)
		}

		apiGroup.GET("/search", group.SearchHandler.Search)

		sysbox := apiGroup.Group("/sysbox")
		sysbox.Use(middleware.AuthMiddleware())
		{
			sysbox.GET("/list", group.SysBoxHandler.GetNotificationList)
			sysbox.GET("/unread", group.SysBoxHandler.GetUnreadCount)
			sysbox.POST("/read", group.SysBoxHandler.MarkRead)
			sysbox.POST("/read/all", group.SysBoxHandler.MarkAllRead)
		}

		apiGroup.GET("/metrics/prometheus", gin.WrapH(metrics.Handler()))

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.Use(middleware.AuthMiddleware())
			{
				metricsGroup.GET("/user/7d", group.UserMetricHandler.GetMetrics7Days)
				metricsGroup.GET("/user/30d", group.UserMetricHandler.GetMetrics30Days)
				metricsGroup.GET("/post/7d/:post_id", group.PostMetricHandler.GetMetrics7Days)
				metricsGroup.GET("/post/30d/:post_id", group.PostMetricHandler.GetMetrics30Days)
			}
		}
	}

	return r
}
