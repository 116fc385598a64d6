package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "smarthr_backend/docs"
	"smarthr_backend/internal/auth"
	"smarthr_backend/internal/handlers"
	"smarthr_backend/internal/middleware"
	"smarthr_backend/internal/models"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers, tokens *auth.TokenManager) {
	authRequired := middleware.AuthMiddleware(tokens)
	authOptional := middleware.OptionalAuthMiddleware(tokens)

	employerOnly := middleware.RequireRoles(models.UserRoleEmployer)
	candidateOnly := middleware.RequireRoles(models.UserRoleCandidate)
	govOrAdmin := middleware.RequireRoles(models.UserRoleGovernment, models.UserRoleAdmin)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	router.GET("/api/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/schema/", serveSchema)

	// Local storage file serving. S3-backed deployments return storage
	// URLs directly and never hit this route.
	router.GET("/files/*path", h.FileHandler.Serve)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.AuthHandler.Register)
			authGroup.POST("/login", h.AuthHandler.Login)
			authGroup.POST("/refresh", h.AuthHandler.RefreshToken)
			authGroup.POST("/logout", h.AuthHandler.Logout)

			authed := authGroup.Group("")
			authed.Use(authRequired)
			{
				authed.POST("/phone/send-code", h.AuthHandler.SendPhoneCode)
				authed.POST("/phone/verify", h.AuthHandler.VerifyPhone)
				authed.POST("/change-password", h.AuthHandler.ChangePassword)
			}
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/me", h.UserHandler.GetMe)
			users.PATCH("/me", h.UserHandler.UpdateMe)
			users.DELETE("/me", h.UserHandler.DeleteMe)

			users.GET("", adminOnly, h.UserHandler.ListUsers)
			users.GET("/:id", adminOnly, h.UserHandler.GetUser)
		}

		profiles := api.Group("/profiles")
		profiles.Use(authRequired)
		{
			profiles.GET("/me", h.ProfileHandler.GetMyProfile)
			profiles.PATCH("/me", h.ProfileHandler.UpdateMyProfile)
			profiles.GET("/me/quality", h.ProfileHandler.GetQuality)

			profiles.POST("/me/cv", h.ProfileHandler.UploadCV)
			profiles.DELETE("/me/cv/:id", h.ProfileHandler.DeleteCV)
			profiles.GET("/me/cv/:id/download", h.ProfileHandler.DownloadCV)

			profiles.POST("/me/avatar", h.ProfileHandler.UploadAvatar)

			profiles.POST("/me/certificates", h.ProfileHandler.AddCertificate)
			profiles.DELETE("/me/certificates/:id", h.ProfileHandler.DeleteCertificate)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", h.JobHandler.ListJobs)
			jobs.GET("/:id", authOptional, h.JobHandler.GetJob)

			jobs.GET("/recommendations", authRequired, candidateOnly, h.JobHandler.Recommendations)

			employer := jobs.Group("")
			employer.Use(authRequired, employerOnly)
			{
				employer.POST("", h.JobHandler.CreateJob)
				employer.GET("/mine", h.JobHandler.ListMyJobs)
				employer.PATCH("/:id", h.JobHandler.UpdateJob)
				employer.POST("/:id/publish", h.JobHandler.PublishJob)
				employer.POST("/:id/close", h.JobHandler.CloseJob)
				employer.DELETE("/:id", h.JobHandler.DeleteJob)
				employer.GET("/:id/stats", h.JobHandler.JobStats)
				employer.GET("/:id/applications", h.ApplicationHandler.ListForJob)
				employer.GET("/:id/shortlist", h.ApplicationHandler.Shortlist)
			}
		}

		applications := api.Group("/applications")
		applications.Use(authRequired)
		{
			applications.POST("", candidateOnly, h.ApplicationHandler.Apply)
			applications.GET("/mine", candidateOnly, h.ApplicationHandler.ListMine)
			applications.GET("/:id", h.ApplicationHandler.GetApplication)
			applications.POST("/:id/withdraw", candidateOnly, h.ApplicationHandler.Withdraw)

			applications.PATCH("/:id/status", employerOnly, h.ApplicationHandler.UpdateStatus)
			applications.POST("/bulk-status", employerOnly, h.ApplicationHandler.BulkUpdateStatus)
			applications.POST("/:id/notes", employerOnly, h.ApplicationHandler.AddNote)
			applications.GET("/:id/notes", employerOnly, h.ApplicationHandler.ListNotes)
		}

		interviews := api.Group("/interviews")
		interviews.Use(authRequired)
		{
			interviews.GET("", h.InterviewHandler.ListInterviews)
			interviews.GET("/:id", h.InterviewHandler.GetInterview)

			interviews.POST("", employerOnly, h.InterviewHandler.Schedule)
			interviews.POST("/:id/reschedule", employerOnly, h.InterviewHandler.Reschedule)
			interviews.POST("/:id/cancel", employerOnly, h.InterviewHandler.Cancel)
			interviews.POST("/:id/complete", employerOnly, h.InterviewHandler.Complete)
			interviews.POST("/:id/questions", employerOnly, h.InterviewHandler.AddQuestion)
			interviews.PATCH("/:id/questions/:question_id", employerOnly, h.InterviewHandler.AnswerQuestion)

			interviews.POST("/:id/feedback", candidateOnly, h.InterviewHandler.LeaveFeedback)
		}

		analytics := api.Group("/analytics")
		analytics.Use(authRequired, govOrAdmin)
		{
			analytics.GET("/dashboard", h.AnalyticsHandler.Dashboard)
			analytics.GET("/regions", h.AnalyticsHandler.RegionStats)
			analytics.GET("/regions/map", h.AnalyticsHandler.RegionMap)
			analytics.GET("/industries", h.AnalyticsHandler.IndustryStats)
			analytics.GET("/industries/trends", h.AnalyticsHandler.IndustryTrends)
			analytics.GET("/skill-demand", h.AnalyticsHandler.SkillDemand)
			analytics.GET("/skill-gap", h.AnalyticsHandler.SkillGap)
			analytics.GET("/trends", h.AnalyticsHandler.Trends)
			analytics.GET("/forecasts", h.AnalyticsHandler.ListForecasts)
			analytics.POST("/forecasts", h.AnalyticsHandler.GenerateForecast)
		}
	}
}

// serveSchema exposes the raw OpenAPI document as JSON, next to the
// interactive viewer under /api/docs/.
func serveSchema(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
