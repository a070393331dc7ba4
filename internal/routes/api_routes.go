// igp-generator/internal/routes/api_routes.go
package routes

import (
	"github.com/SinSayWu/igp-generator-sub000/internal/handlers"
	"github.com/SinSayWu/igp-generator-sub000/internal/middleware"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- ПРОФИЛЬ ---
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}

		// --- КАТАЛОГ КУРСОВ ---
		courses := apiGroup.Group("/courses")
		{
			courses.GET("", handlers.ListCoursesHandler)
			courses.GET("/:id", handlers.GetCourseHandler)
			// Редактировать каталог могут только каунселоры (и админы).
			courses.POST("", middleware.RoleMiddleware(models.RoleCounselor), handlers.CreateCourseHandler)
			courses.PUT("/:id", middleware.RoleMiddleware(models.RoleCounselor), handlers.UpdateCourseHandler)
			courses.DELETE("/:id", middleware.RoleMiddleware(models.RoleCounselor), handlers.DeleteCourseHandler)
		}

		// --- ТРЕБОВАНИЯ К ВЫПУСКУ ---
		apiGroup.GET("/graduation-requirements", handlers.ListGraduationRequirementsHandler)

		// --- ЗАПИСИ КУРСОВ СТУДЕНТА ---
		studentCourses := apiGroup.Group("/student-courses")
		{
			studentCourses.POST("", handlers.AddStudentCourseHandler)
			studentCourses.PUT("/:id", handlers.UpdateStudentCourseHandler)
			studentCourses.DELETE("/planned", handlers.ClearPlannedCoursesHandler)
			studentCourses.DELETE("/:id", handlers.DeleteStudentCourseHandler)
		}

		// --- КОНВЕЙЕР ПЛАНИРОВАНИЯ ---
		plan := apiGroup.Group("/plan")
		{
			plan.POST("/chat", handlers.PlanChatHandler)
			plan.GET("/current", handlers.GetCurrentPlanHandler)
			plan.GET("/report", handlers.GetPlanReportHandler)
			plan.GET("/export", handlers.ExportPlanHandler)
		}

		// --- ПЛАН ПОСТУПЛЕНИЯ ---
		collegePlan := apiGroup.Group("/college-plan")
		{
			collegePlan.GET("", handlers.GetCollegePlanHandler)
			collegePlan.POST("", handlers.SaveCollegePlanHandler)
			collegePlan.POST("/colleges", handlers.AddTargetCollegeHandler)
			collegePlan.DELETE("/colleges/:id", handlers.DeleteTargetCollegeHandler)
		}

		// --- РЕКОМЕНДАЦИИ И КРУЖКИ ---
		apiGroup.GET("/recommendations", handlers.GetRecommendationsHandler)
		clubs := apiGroup.Group("/clubs")
		{
			clubs.POST("", handlers.AddClubHandler)
			clubs.DELETE("/:id", handlers.DeleteClubHandler)
		}

		// --- ЧАТ С СОВЕТНИКОМ ---
		chat := apiGroup.Group("/chat")
		{
			chat.GET("/ws", handlers.ChatWSEndpoint)
			chat.GET("/messages", handlers.GetAdvisingMessagesHandler)
		}
	}
}
