package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/docs"
	"github.com/linskybing/programhub/internal/api/handlers"
	"github.com/linskybing/programhub/internal/api/middleware"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/pkg/metrics"
	"github.com/linskybing/programhub/pkg/notify"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, hub *notify.Hub, limiter *middleware.RateLimiter) *handlers.Handlers {
	handlers_instance := handlers.New(svc, hub)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	if limiter != nil {
		auth.Use(limiter.Middleware())
	}
	{
		auth.GET("/ws/applications", handlers_instance.Notification.Stream)

		apps := auth.Group("/applications")
		{
			apps.POST("", handlers_instance.Application.CreateDraft)
			apps.GET("", handlers_instance.Application.ListMine)
			apps.GET("/search", handlers_instance.Application.Search)
			apps.GET("/buckets", handlers_instance.Application.Buckets)
			apps.GET("/:id", handlers_instance.Application.GetByID)
			apps.PUT("/:id", handlers_instance.Application.UpdateDraft)
			apps.DELETE("/:id", handlers_instance.Application.DeleteDraft)
			apps.POST("/:id/submit", handlers_instance.Application.Submit)
			apps.POST("/:id/withdraw", handlers_instance.Application.Withdraw)
			apps.GET("/:id/history", handlers_instance.Application.History)
		}

		admin := auth.Group("/admin/applications")
		admin.Use(middleware.Admin())
		{
			admin.PUT("/:id/review", handlers_instance.Application.MarkUnderReview)
			admin.PUT("/:id/decision", handlers_instance.Application.Decide)
		}
	}

	return handlers_instance
}
