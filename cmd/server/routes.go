package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"jobboard.backend/internal/domain/entities"
	"jobboard.backend/internal/interfaces/http/handlers"
	"jobboard.backend/internal/interfaces/http/middleware"
	"jobboard.backend/internal/usecases"
	"jobboard.backend/pkg/metrics"
)

const (
	serviceName    = "jobboard-backend"
	serviceVersion = "0.1.0"
)

var (
	adminOnly = usecases.Policy{Roles: []entities.UserRole{entities.UserRoleAdmin}}
	// approvedEmployer rejects employers still waiting for admin approval
	approvedEmployer = usecases.Policy{
		Roles:           []entities.UserRole{entities.UserRoleEmployer},
		RequireApproved: true,
	}
	jobSeeker = usecases.Policy{Roles: []entities.UserRole{entities.UserRoleUser}}
)

type routeDeps struct {
	authHandler  *handlers.AuthHandler
	adminHandler *handlers.AdminHandler
	jobHandler   *handlers.JobHandler
	gate         middleware.Authorizer
}

func newRouter(allowedOrigins []string, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, allowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, d)
	return r
}

// applyCORSMiddleware allows credentialed requests so browsers send the token cookie
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})

	r.Use(func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	requireAny := middleware.RequireAuth(d.gate, usecases.AnyRole)

	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify-otp", d.authHandler.VerifyOTP)
			auth.POST("/resend-otp", d.authHandler.ResendOTP)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", requireAny, d.authHandler.GetMe)
			auth.POST("/change-password", requireAny, d.authHandler.ChangePassword)
		}

		// Job routes (public read)
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", d.jobHandler.ListJobs)
			jobs.GET("/:id", d.jobHandler.GetJob)
			jobs.POST("", middleware.RequireAuth(d.gate, approvedEmployer), d.jobHandler.CreateJob)
			jobs.POST("/:id/apply", middleware.RequireAuth(d.gate, jobSeeker), d.jobHandler.Apply)
			jobs.GET("/:id/applications", middleware.RequireAuth(d.gate, approvedEmployer), d.jobHandler.ListApplications)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(d.gate, adminOnly))
		{
			admin.GET("/employers/pending", d.adminHandler.ListPendingEmployers)
			admin.POST("/employers/:id/approve", d.adminHandler.ApproveEmployer)
		}
	}
}
