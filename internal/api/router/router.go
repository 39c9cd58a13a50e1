package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/netooze/jobapi/internal/api/dto"
	"github.com/netooze/jobapi/internal/api/handler"
	"github.com/netooze/jobapi/shared/metrics"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Middleware
	r.Use(RecoveryMiddleware(deps.Logger))
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Standard overrides: unknown routes and wrong methods answer with the
	// same envelope as every other error.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: dto.ErrorBody{Code: http.StatusNotFound, Message: "No endpoint resource found"},
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
			Error: dto.ErrorBody{Code: http.StatusMethodNotAllowed, Message: "Method not allowed"},
		})
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "job-api-service",
		})
	})

	// Prometheus exposition
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	jobHandler := handler.NewJobHandler(deps)
	fileHandler := handler.NewFileHandler(deps)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		jobs := v1.Group("/jobs")
		{
			// GET /v1/jobs/:user - all jobs for the user
			jobs.GET("/:user", jobHandler.ListJobs)

			// GET /v1/jobs/:user/:filter - status literal or id token
			jobs.GET("/:user/:filter", jobHandler.GetJobs)

			// POST /v1/jobs/:user - submit a job
			jobs.POST("/:user", jobHandler.CreateJob)

			// DELETE /v1/jobs/:user/:filter - delete a job by id token
			jobs.DELETE("/:user/:filter", jobHandler.DeleteJob)
		}

		// Reserved, always 501
		v1.GET("/data/:id", jobHandler.GetData)

		files := v1.Group("/file")
		{
			// POST /v1/file - upload a document for parsing
			files.POST("", fileHandler.UploadFile)

			// GET /v1/file/:id - file metadata by content hash
			files.GET("/:id", fileHandler.GetFile)
		}
	}

	return r
}
