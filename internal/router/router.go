// internal/router/router.go
package router

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/plmining/licensing-backend/internal/cache"
	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/handlers"
	"github.com/plmining/licensing-backend/internal/middleware"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

// Services is the wired service graph shared by the HTTP layer and the
// background scheduler.
type Services struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Licenses      *services.LicenseService
	Samples       *services.SampleService
	Regions       *services.RegionService
	Reports       *services.ReportService
	Audit         *services.AuditService
	Storage       *services.StorageService
	Notifications *services.NotificationService
}

func NewServices(db *gorm.DB, cfg *config.Config, sessions cache.SessionRevocationStore) (*Services, error) {
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	licenseRepo := repository.NewLicenseRepository(db)
	sampleRepo := repository.NewSampleRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	tokens, err := utils.NewTokenManager(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session tokens: %w", err)
	}

	notificationService := services.NewNotificationService(services.NewEmailSender(cfg.Email), cfg)
	regionService := services.NewRegionService(regionRepo, cfg.Cache.RegionMaxEntries, time.Duration(cfg.Cache.RegionTTLSeconds)*time.Second)

	return &Services{
		Auth:          services.NewAuthService(userRepo, resetRepo, sessions, tokens, notificationService),
		Users:         services.NewUserService(userRepo),
		Licenses:      services.NewLicenseService(licenseRepo, regionService, cfg.Scheduler),
		Samples:       services.NewSampleService(sampleRepo),
		Regions:       regionService,
		Reports:       services.NewReportService(licenseRepo),
		Audit:         services.NewAuditService(auditRepo),
		Storage:       storageService,
		Notifications: notificationService,
	}, nil
}

func Initialize(db *gorm.DB, cfg *config.Config, svc *Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)
	licenseHandler := handlers.NewLicenseHandler(svc.Licenses)
	sampleHandler := handlers.NewSampleHandler(svc.Samples)
	regionHandler := handlers.NewRegionHandler(svc.Regions)
	verificationHandler := handlers.NewVerificationHandler(svc.Licenses)
	catalogHandler := handlers.NewCatalogHandler()
	uploadHandler := handlers.NewUploadHandler(svc.Storage)
	adminHandler := handlers.NewAdminHandler(svc.Reports, svc.Audit)

	cookie := cfg.JWT.CookieName
	authRequired := middleware.AuthRequired(svc.Auth, cookie)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Frontend.CORSOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit())
	api.Use(middleware.AuditLogMiddleware(svc.Audit))
	{
		// Public
		api.GET("/verify-license", middleware.VerifyRateLimit(), middleware.OptionalAuth(svc.Auth, cookie), verificationHandler.VerifyLicense)
		api.GET("/license-types", catalogHandler.LicenseTypes)
		api.GET("/license-fees", catalogHandler.LicenseFees)

		auth := api.Group("/auth")
		{
			auth.POST("/sign-up", middleware.AuthRateLimit(), authHandler.SignUp)
			auth.POST("/sign-in", middleware.AuthRateLimit(), authHandler.SignIn)
			auth.POST("/forgot-password", middleware.AuthRateLimit(), authHandler.ForgotPassword)
			auth.GET("/reset-password/:token", authHandler.ValidateResetToken)
			auth.POST("/reset-password", middleware.AuthRateLimit(), authHandler.ResetPassword)
			auth.POST("/sign-out", authRequired, authHandler.SignOut)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(authRequired)
		{
			licenses := protected.Group("/licenses")
			{
				licenses.GET("", licenseHandler.ListLicenses)
				licenses.GET("/expiring", licenseHandler.ExpiringLicenses)
				licenses.GET("/:id", licenseHandler.GetLicense)
				licenses.POST("", licenseHandler.CreateLicense)
				licenses.PUT("/:id", licenseHandler.UpdateLicense)
				licenses.PATCH("/:id/status", licenseHandler.ChangeStatus)
				licenses.PATCH("/:id/signature", licenseHandler.SetSignature)
				licenses.DELETE("/:id", licenseHandler.DeleteLicense)
			}

			samples := protected.Group("/samples")
			{
				samples.GET("", sampleHandler.ListSamples)
				samples.GET("/by-ref", sampleHandler.GetSampleByRef)
				samples.GET("/:id", sampleHandler.GetSample)
				samples.POST("", sampleHandler.CreateSample)
				samples.PUT("/:id", sampleHandler.UpdateSample)
				samples.PATCH("/:id/signature", sampleHandler.SetSignature)
				samples.DELETE("/:id", sampleHandler.DeleteSample)
			}
			protected.GET("/ref-id", sampleHandler.NextRefID)

			protected.GET("/regions", regionHandler.ListRegions)
			protected.GET("/districts", regionHandler.ListDistricts)

			users := protected.Group("/users")
			{
				users.PUT("/me/profile", userHandler.UpdateProfile)
				users.PUT("/me/password", userHandler.ChangePassword)
				users.GET("/:id", userHandler.GetUser)

				admin := users.Group("")
				admin.Use(middleware.RequireAction(policy.ActionUserManage))
				{
					admin.GET("", userHandler.ListUsers)
					admin.POST("", userHandler.CreateUser)
					admin.PUT("/:id", userHandler.UpdateUser)
					admin.DELETE("/:id", userHandler.DeleteUser)
				}
			}

			protected.GET("/reports/summary", middleware.RequireAction(policy.ActionReportView), adminHandler.ReportSummary)
			protected.GET("/audit-logs", middleware.RequireAction(policy.ActionAuditView), adminHandler.ListAuditLogs)
			protected.POST("/uploads", middleware.UploadRateLimit(), uploadHandler.UploadDocument)
		}
	}

	if cfg.App.UploadDir != "" && cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.App.UploadDir)
	}

	r.NoRoute(
		func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") || cfg.Frontend.Dir == "" {
				utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
				c.Abort()
				return
			}
			c.Next()
		},
		middleware.RouteGuard(svc.Auth, cookie),
		func(c *gin.Context) { serveFrontend(c, cfg.Frontend.Dir) },
	)

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	}
}

// serveFrontend serves a built file when one exists and falls back to
// index.html so client-side routes resolve.
func serveFrontend(c *gin.Context, dir string) {
	clean := filepath.Clean("/" + c.Request.URL.Path)
	target := filepath.Join(dir, filepath.FromSlash(clean))
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		c.File(target)
		return
	}
	if info, err := os.Stat(target + ".html"); err == nil && !info.IsDir() {
		c.File(target + ".html")
		return
	}
	c.File(filepath.Join(dir, "index.html"))
}
