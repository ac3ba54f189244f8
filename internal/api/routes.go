package api

import (
	"time"

	"liftlog/api/internal/metrics"
	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth        service.AuthService
	Profile     service.ProfileService
	Plans       service.PlanService
	Sessions    service.SessionService
	Workouts    service.WorkoutService
	Performance service.PerformanceService
	Contact     service.ContactService
	Export      service.ExportService
}

// Options carries the infrastructure the router needs besides the services.
type Options struct {
	DB       Pinger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// StoreTimeout bounds the request context handed to the services. Zero means no bound.
	StoreTimeout time.Duration
}

func SetupRoutes(router *gin.Engine, svc Services, opts Options) {
	router.Use(RequestID(), RequestLogger(), Metrics(opts.Metrics), Recovery(opts.Metrics))

	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profile)
	planHandler := NewPlanHandler(svc.Plans, svc.Sessions)
	sessionHandler := NewSessionHandler(svc.Sessions)
	workoutHandler := NewWorkoutHandler(svc.Workouts)
	performanceHandler := NewPerformanceHandler(svc.Performance)
	contactHandler := NewContactHandler(svc.Contact)
	exportHandler := NewExportHandler(svc.Export)

	router.GET("/health", HealthHandler(opts.DB))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(RequestTimeout(opts.StoreTimeout))
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		apiV1.POST("/contact", contactHandler.SubmitMessage)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(svc.Auth))
	{
		protected.GET("/me", profileHandler.GetMe)
		protected.PUT("/me", profileHandler.UpdateMe)

		plans := protected.Group("/plans")
		{
			plans.GET("", planHandler.ListPlans)
			plans.POST("", planHandler.CreatePlan)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.PUT("/:planId", planHandler.UpdatePlan)
			plans.DELETE("/:planId", planHandler.DeletePlan)
			plans.GET("/:planId/last-session", planHandler.LastSession)
			plans.GET("/:planId/resume", planHandler.Resume)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("", sessionHandler.ListSessions)
			sessions.POST("", sessionHandler.CompleteSession)
		}

		workouts := protected.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.LogWorkout)
			workouts.GET("/grouped", workoutHandler.GroupedWorkouts)
			workouts.GET("/history/:exerciseName", workoutHandler.ExerciseHistory)
			workouts.DELETE("/:workoutId", workoutHandler.DeleteWorkout)
		}

		performance := protected.Group("/performance")
		{
			performance.GET("", performanceHandler.ListPerformance)
			performance.POST("", performanceHandler.RecordPerformance)
			performance.GET("/:exerciseName", performanceHandler.GetPerformance)
		}

		protected.POST("/exports", exportHandler.CreateExport)

		admin := protected.Group("/admin")
		admin.Use(AdminMiddleware())
		{
			admin.GET("/contact", contactHandler.ListMessages)
			admin.PUT("/contact/:messageId/read", contactHandler.MarkRead)
			admin.DELETE("/contact/:messageId", contactHandler.DeleteMessage)
		}
	}
}
