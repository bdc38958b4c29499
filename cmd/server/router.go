package main

import (
	"net/http"
	"slices"
	"time"

	"health-dashboard-go/internal/handler"
	"health-dashboard-go/internal/middleware"
	"health-dashboard-go/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// services 汇总路由需要的业务服务。
type services struct {
	user         service.UserService
	profile      service.ProfileService
	schedule     service.ScheduleService
	conversation service.ConversationService
	chat         service.ChatService
	disease      service.DiseaseService
	admin        service.AdminService
}

// newRouter 创建路由引擎并注册全部路由。
func newRouter(s services, allowedOrigins []string) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())
	if len(allowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}
		if slices.Contains(allowedOrigins, "*") {
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = allowedOrigins
		}
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := handler.NewUserHandler(s.user)
	profileHandler := handler.NewProfileHandler(s.profile)
	scheduleHandler := handler.NewScheduleHandler(s.schedule)
	conversationHandler := handler.NewConversationHandler(s.conversation)
	chatHandler := handler.NewChatHandler(s.chat, s.user)
	diseaseHandler := handler.NewDiseaseHandler(s.disease)
	adminHandler := handler.NewAdminHandler(s.admin)
	auth := middleware.AuthMiddleware(s.user)

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/auth/refreshToken", handler.NewAuthHandler(s.user).RefreshToken)

		users := apiV1.Group("/users")
		{
			// 无需认证的路由
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			authed := users.Group("")
			authed.Use(auth)
			{
				authed.GET("/me", userHandler.Me)
				authed.POST("/logout", userHandler.Logout)
				authed.GET("/profile", profileHandler.GetProfile)
				authed.PUT("/profile", profileHandler.UpdateProfile)
				authed.GET("/profile/bmi", profileHandler.GetBMI)
				authed.GET("/conversation", conversationHandler.GetConversations)
				authed.GET("/conversation/archive", conversationHandler.GetArchive)
			}
		}

		schedule := apiV1.Group("/schedule")
		schedule.Use(auth)
		{
			schedule.GET("", scheduleHandler.GetSchedule)
			schedule.POST("/appointments", scheduleHandler.AddAppointment)
			schedule.POST("/medications", scheduleHandler.AddMedication)
			schedule.POST("/activities", scheduleHandler.AddActivity)
			schedule.PATCH("/:type/:id/complete", scheduleHandler.ToggleComplete)
			schedule.DELETE("/:type/:id", scheduleHandler.DeleteItem)
		}

		chat := apiV1.Group("/chat")
		chat.Use(auth)
		{
			chat.GET("/greeting", chatHandler.Greeting)
			chat.POST("/messages", chatHandler.SendMessage)
		}

		diseases := apiV1.Group("/diseases")
		diseases.Use(auth)
		{
			diseases.GET("", diseaseHandler.List)
			diseases.GET("/:name", diseaseHandler.Get)
		}

		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(auth, middleware.AdminAuthMiddleware())
		{
			admin.GET("/users/list", adminHandler.ListUsers)
			admin.GET("/conversation", adminHandler.GetAllConversations)
		}
	}

	// WebSocket 聊天，token 通过路径参数传入
	r.GET("/chat/:token", chatHandler.Handle)

	return r
}
