package routes

import (
	"github.com/gin-gonic/gin"

	"student_attendance/collaborator"
	"student_attendance/handlers"
	"student_attendance/middleware"
	"student_attendance/templates"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, client *collaborator.Client, tokenService *middleware.TokenService, revoker middleware.Revoker) error {
	handlers.InitValidation()

	tmpl, err := templates.Load()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", templates.Static())

	// Initialize handlers
	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(client, tokenService)
	studentHandler := handlers.NewStudentHandler(client)
	attendanceHandler := handlers.NewAttendanceHandler(client)
	userHandler := handlers.NewUserHandler()
	healthHandler := handlers.NewHealthHandler(revoker)

	// Public routes
	r.GET("/", pageHandler.Login())
	r.GET("/signup", pageHandler.Signup())
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/health", healthHandler.HealthCheck)

	// Pages send visitors without a session back to the login page
	pages := r.Group("/")
	pages.Use(middleware.AuthMiddleware(tokenService, middleware.RedirectToLogin))
	{
		pages.GET("/dashboard", pageHandler.Dashboard())
		pages.GET("/attendance", pageHandler.Attendance())
	}

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenService, middleware.RejectUnauthenticated))
	{
		// Student routes
		protected.POST("/students", studentHandler.AddStudent)
		protected.POST("/addStudent", studentHandler.AddStudent)

		// Attendance routes
		protected.POST("/attendance", attendanceHandler.MarkAttendance)
		protected.POST("/markAttendance", attendanceHandler.MarkAttendance)

		api := protected.Group("/api")
		api.GET("/me", userHandler.GetUserInfo)
		api.GET("/students", studentHandler.ListStudents)
		api.POST("/students/import", studentHandler.ImportStudents)
		api.GET("/attendance", attendanceHandler.ListAttendance)
		api.GET("/attendance/export", attendanceHandler.ExportAttendance)
	}

	return nil
}
