package router

import (
	"github.com/cuongbtq/jobboard/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	boardHandler := handler.NewBoardHandler(deps)
	companyHandler := handler.NewCompanyHandler(deps)
	jobHandler := handler.NewJobHandler(deps)

	// Health check endpoint
	r.GET("/health", boardHandler.Health)

	api := r.Group("/api")
	{
		api.GET("/stats", boardHandler.Stats)
		api.GET("/lookups", boardHandler.Lookups)

		companies := api.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.GET("/featured", companyHandler.FeaturedCompanies)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.GET("/:id/jobs", companyHandler.CompanyJobs)
			companies.POST("", companyHandler.CreateCompany)
			companies.PATCH("/:id", companyHandler.UpdateCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/recent", jobHandler.RecentJobs)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.POST("", jobHandler.CreateJob)
			jobs.PATCH("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
		}
	}

	return r
}
