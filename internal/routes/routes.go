package routes

import (
	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/config"
	"jobforge_backend/internal/handlers"
	"jobforge_backend/internal/middleware"
	"jobforge_backend/internal/repositories"
)

// RegisterRoutes wires middleware and every HTTP route. Authentication is
// enforced by a single gate; the allow-list from config decides which
// routes accept anonymous callers.
func RegisterRoutes(
	engine *gin.Engine,
	cfg *config.Config,
	appHandlers *handlers.AppHandlers,
	codec *auth.TokenCodec,
	users repositories.UserRepository,
) {
	matcher := NewPublicMatcher(cfg.Security.PublicPaths)

	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.AuthGate(codec, users, matcher.IsPublic))

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/renewAccessToken", appHandlers.AuthHandler.RenewAccessToken)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.POST("/signup", appHandlers.AuthHandler.SignUp)
		usersGroup.POST("/login", appHandlers.AuthHandler.Login)
		usersGroup.POST("/logout", appHandlers.AuthHandler.Logout)
		usersGroup.POST("/recovery/initiate", appHandlers.AuthHandler.InitiateRecovery)
		usersGroup.POST("/recovery/complete", appHandlers.AuthHandler.CompleteRecovery)

		usersGroup.GET("", appHandlers.UserHandler.ListUsers)
		usersGroup.GET("/me", appHandlers.UserHandler.Me)
		usersGroup.POST("/me/password", appHandlers.UserHandler.ChangePassword)
		usersGroup.GET("/:id", appHandlers.UserHandler.GetUser)
		usersGroup.PATCH("/:id", appHandlers.UserHandler.UpdateUser)
		usersGroup.DELETE("/:id", appHandlers.UserHandler.DeactivateUser)
	}

	companiesGroup := api.Group("/companies")
	{
		companiesGroup.GET("", appHandlers.CompanyHandler.ListCompanies)
		companiesGroup.POST("", appHandlers.CompanyHandler.CreateCompany)
		companiesGroup.GET("/:id", appHandlers.CompanyHandler.GetCompany)
		companiesGroup.PATCH("/:id", appHandlers.CompanyHandler.UpdateCompany)
		companiesGroup.DELETE("/:id", appHandlers.CompanyHandler.DeleteCompany)
		companiesGroup.GET("/:id/recruiters", appHandlers.CompanyHandler.ListRecruiters)
		companiesGroup.POST("/:id/recruiters", appHandlers.CompanyHandler.AppointRecruiter)
		companiesGroup.DELETE("/:id/recruiters/:userId", appHandlers.CompanyHandler.RemoveRecruiter)
		companiesGroup.POST("/:id/employer", appHandlers.CompanyHandler.ChangeEmployer)
		companiesGroup.GET("/:id/jobs", appHandlers.JobHandler.ListCompanyJobs)
		companiesGroup.POST("/:id/jobs/transfer", appHandlers.JobHandler.TransferJobs)
	}

	jobsGroup := api.Group("/jobs")
	{
		jobsGroup.GET("", appHandlers.JobHandler.ListJobs)
		jobsGroup.POST("", appHandlers.JobHandler.CreateJob)
		jobsGroup.GET("/my", appHandlers.JobHandler.MyJobs)
		jobsGroup.GET("/:id", appHandlers.JobHandler.GetJob)
		jobsGroup.PATCH("/:id", appHandlers.JobHandler.UpdateJob)
		jobsGroup.DELETE("/:id", appHandlers.JobHandler.DeleteJob)
		jobsGroup.POST("/:id/repost", appHandlers.JobHandler.RepostJob)
		jobsGroup.POST("/:id/duplicate", appHandlers.JobHandler.DuplicateJob)
		jobsGroup.POST("/:id/applications", appHandlers.ApplicationHandler.Apply)
		jobsGroup.GET("/:id/applications", appHandlers.ApplicationHandler.ListByJob)
	}

	applicationsGroup := api.Group("/applications")
	{
		applicationsGroup.GET("/my", appHandlers.ApplicationHandler.MyApplications)
		applicationsGroup.GET("/:id", appHandlers.ApplicationHandler.GetApplication)
		applicationsGroup.PATCH("/:id", appHandlers.ApplicationHandler.Review)
		applicationsGroup.POST("/:id/withdraw", appHandlers.ApplicationHandler.Withdraw)
		applicationsGroup.DELETE("/:id", appHandlers.ApplicationHandler.DeleteApplication)
	}
}
