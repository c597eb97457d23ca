package app

import (
	"campuslearn_backend/internal/middleware"
	"campuslearn_backend/internal/model"

	"campuslearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	// Course browsing works without a session; a valid token upgrades the
	// listing from the published-only view.
	browse := router.Group("/api", middleware.TryAuthMiddleware(a.Live))
	{
		browse.GET("/courses", c.course.List)
		browse.GET("/courses/:id", c.course.Get)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Live), middleware.ActivityMiddleware(repos.user))
	{
		a.registerGeneralRoutes(authGroup, c)
		a.registerStaffRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerGeneralRoutes holds the routes every signed-in user may call.
func (a *App) registerGeneralRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.GET("/users/:id", c.user.Get)
	rg.POST("/users/:id/subscribe", c.user.Subscribe)
	rg.DELETE("/users/:id/subscribe", c.user.Unsubscribe)

	rg.GET("/courses/:id/assignments", c.assignment.ListByCourse)

	rg.POST("/lessons/:lessonId/complete", c.course.CompleteLesson)
	rg.GET("/completions", c.course.ListCompletions)

	rg.POST("/topics", c.topic.Create)
	rg.GET("/topics", c.topic.List)
	rg.GET("/topics/:id", c.topic.Get)
	rg.POST("/topics/:id/replies", c.topic.Reply)
	rg.POST("/topics/:id/subscribe", c.topic.Subscribe)
	rg.DELETE("/topics/:id/subscribe", c.topic.Unsubscribe)
	rg.POST("/topics/:id/materials", c.topic.UploadMaterial)
	rg.GET("/topics/:id/quizzes", c.quiz.ListByTopic)

	rg.GET("/notifications", c.notification.List)
	rg.GET("/notifications/unread", c.notification.UnreadCount)
	rg.POST("/notifications/:id/read", c.notification.MarkRead)
	rg.POST("/notifications/read-all", c.notification.MarkAllRead)

	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)
	rg.GET("/quizzes/:id/attempts", c.quiz.ListAttempts)

	rg.GET("/assignments/:id", c.assignment.Get)
	rg.POST("/assignments/:id/submissions", c.assignment.Submit)
	rg.GET("/submissions", c.assignment.ListSubmissions)

	rg.POST("/ai/tutor", c.ai.TutorAnswer)
	rg.POST("/ai/summarize", c.ai.Summarize)
}

// registerStaffRoutes holds the routes restricted to lecturers and tutors.
// Admins pass the role check implicitly.
func (a *App) registerStaffRoutes(rg *gin.RouterGroup, c *controllers) {
	staff := rg.Group("/")
	staff.Use(middleware.RoleMiddleware(model.Lecturer, model.Tutor))
	{
		staff.POST("/courses", c.course.Create)
		staff.PUT("/courses/:id", c.course.Update)
		staff.PUT("/courses/:id/publish", c.course.SetPublished)
		staff.DELETE("/courses/:id", c.course.Delete)
		staff.POST("/courses/:id/assign", c.course.Assign)

		staff.POST("/courses/:id/modules", c.course.AddModule)
		staff.PUT("/modules/:moduleId", c.course.UpdateModule)
		staff.DELETE("/modules/:moduleId", c.course.DeleteModule)
		staff.POST("/modules/:moduleId/lessons", c.course.AddLesson)
		staff.PUT("/lessons/:lessonId", c.course.UpdateLesson)
		staff.DELETE("/lessons/:lessonId", c.course.DeleteLesson)
		staff.POST("/lessons/:lessonId/media", c.course.UploadLessonMedia)

		staff.PUT("/topics/:id/status", c.topic.SetStatus)

		staff.POST("/quizzes", c.quiz.Create)
		staff.DELETE("/quizzes/:id", c.quiz.Delete)

		staff.POST("/assignments", c.assignment.Create)
		staff.DELETE("/assignments/:id", c.assignment.Delete)
		staff.POST("/submissions/:id/grade", c.assignment.Grade)

		staff.POST("/ai/feedback", c.ai.GenerateFeedback)
		staff.POST("/ai/quiz", c.ai.GenerateQuiz)
	}

	// Platform stats are a lecturer view as well as an admin one; tutors
	// stay out.
	lecturers := rg.Group("/")
	lecturers.Use(middleware.RoleMiddleware(model.Lecturer))
	{
		lecturers.GET("/stats", c.analytics.PlatformStats)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.PATCH("/users/:id", c.user.Patch)
		admin.GET("/stats", c.analytics.PlatformStats)
	}
}
