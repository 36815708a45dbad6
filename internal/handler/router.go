package handler

import (
	"net/http"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RouterOptions carries everything the routes are wired to.
type RouterOptions struct {
	Provider       auth.Provider
	AllowedOrigins []string
	// DB enables the phone verification check on write routes when set.
	DB *gorm.DB

	Auth       *AuthHandler
	Users      *UserHandler
	Friends    *FriendHandler
	Activities *ActivityHandler
	Statuses   *StatusHandler
	// Avatars is nil when object storage is not configured.
	Avatars *AvatarHandler
}

// Router builds the HTTP engine with every route registered.
func Router(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.Logger(), middleware.Metrics(), middleware.CORS(opts.AllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authenticated := auth.Middleware(opts.Provider)
	verified := func(c *gin.Context) { c.Next() }
	if opts.DB != nil {
		verified = auth.VerifiedMiddleware(opts.DB)
	}

	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/send-code", opts.Auth.SendCode)
			authRoutes.POST("/verify-code", opts.Auth.VerifyCode)
			authRoutes.POST("/logout", auth.OptionalMiddleware(opts.Provider), opts.Auth.Logout)
			authRoutes.GET("/me", authenticated, opts.Auth.Me)
		}

		apiV1.GET("/timeframes/suggestions", TimeframeSuggestions)

		userRoutes := apiV1.Group("/users")
		userRoutes.Use(authenticated)
		{
			userRoutes.GET("", opts.Users.Search)
			userRoutes.PATCH("/me", opts.Users.UpdateMe)
			userRoutes.GET("/:id/mutual-friends", opts.Users.MutualFriends)
			if opts.Avatars != nil {
				userRoutes.POST("/me/avatar/upload-url", opts.Avatars.UploadURL)
				userRoutes.PUT("/me/avatar", opts.Avatars.Confirm)
			}
		}

		apiV1.GET("/discover/previous-connections", authenticated, opts.Users.PreviousConnections)

		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(authenticated)
		{
			friendRoutes.GET("", opts.Friends.List)
			friendRoutes.GET("/requests", opts.Friends.Requests)
			friendRoutes.GET("/status", opts.Statuses.Friends)
			friendRoutes.POST("/requests", verified, opts.Friends.SendRequest)
			friendRoutes.PUT("/requests/:id", opts.Friends.AnswerRequest)
			friendRoutes.DELETE("/:id", opts.Friends.Remove)
		}

		statusRoutes := apiV1.Group("/status")
		statusRoutes.Use(authenticated)
		{
			statusRoutes.GET("", opts.Statuses.List)
			statusRoutes.POST("", opts.Statuses.Post)
		}

		activityRoutes := apiV1.Group("/activities")
		activityRoutes.Use(authenticated)
		{
			activityRoutes.GET("", opts.Activities.List)
			activityRoutes.GET("/sections", opts.Activities.Sections) // Must be before /:id
			activityRoutes.POST("", verified, opts.Activities.Create)
			activityRoutes.GET("/:id", opts.Activities.Get)
			activityRoutes.PUT("/:id", opts.Activities.Update)
			activityRoutes.DELETE("/:id", opts.Activities.Delete)
			activityRoutes.POST("/:id/complete", opts.Activities.Complete)
			activityRoutes.GET("/:id/events", opts.Activities.Events)

			activityRoutes.GET("/:id/responses", opts.Activities.ListResponses)
			activityRoutes.POST("/:id/responses", verified, opts.Activities.Respond)
			activityRoutes.DELETE("/:id/responses", opts.Activities.RemoveResponse)
		}
	}

	return router
}
