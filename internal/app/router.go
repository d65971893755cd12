package app

import (
	"eduquiz_backend/docs"
	"eduquiz_backend/internal/config"
	"eduquiz_backend/internal/middleware"
	"eduquiz_backend/internal/model"
	"eduquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 学生端：测验作答
		authGroup.GET("/quizzes", c.quiz.ListQuizzes)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/attempts/start", c.quiz.StartAttempt)
		authGroup.POST("/quizzes/:id/attempts", c.quiz.SubmitAttempt)
		authGroup.GET("/quizzes/:id/attempts/:attemptId/review", c.quiz.GetReview)

		// 教师端：测验目录管理
		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
		{
			teacher.POST("/quizzes", c.quizAdmin.CreateQuiz)
			teacher.GET("/quizzes", c.quizAdmin.ListQuizzes)
			teacher.GET("/quizzes/archived", c.quizAdmin.ListArchivedQuizzes)
			teacher.GET("/quizzes/:id", c.quizAdmin.GetQuiz)
			teacher.PUT("/quizzes/:id", c.quizAdmin.UpdateQuiz)
			teacher.DELETE("/quizzes/:id", c.quizAdmin.ArchiveQuiz)
			teacher.POST("/quizzes/:id/restore", c.quizAdmin.RestoreQuiz)
			teacher.DELETE("/quizzes/:id/permanent", c.quizAdmin.PermanentDeleteQuiz)

			// 题目与选项管理
			teacher.POST("/quizzes/:id/questions", c.quizAdmin.CreateQuestion)
			teacher.PUT("/questions/:qid", c.quizAdmin.UpdateQuestion)
			teacher.DELETE("/questions/:qid", c.quizAdmin.DeleteQuestion)
			teacher.POST("/questions/:qid/answers", c.quizAdmin.CreateAnswer)
			teacher.PUT("/answers/:aid", c.quizAdmin.UpdateAnswer)
			teacher.DELETE("/answers/:aid", c.quizAdmin.DeleteAnswer)

			// 作答情况
			teacher.GET("/quizzes/:id/attempts", c.quizAdmin.ListAttempts)
			teacher.GET("/quizzes/:id/attempts/:attemptId", c.quizAdmin.GetAttemptDetail)
		}
	}
}
