package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/metrics"
	"launchpath/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// metricsHandler puede ser nil; en ese caso /metrics no se monta.
func NewRouter(
	logger *zap.Logger,
	m *metrics.Metrics,
	metricsHandler http.Handler,
	jwtSvc *service.JWTService,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, metricas, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), metricsMiddleware(m), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", h.Health)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	paths := r.Group("/paths")
	paths.GET("", h.Paths.ListPaths)
	paths.POST("/rank", h.Paths.Rank)
	paths.GET("/:id", h.Paths.GetPath)
	paths.GET("/:id/milestones", h.Paths.PathMilestones)

	r.POST("/users", h.Users.CreateUser)
	auth := r.Group("/auth")
	auth.POST("/login", h.Users.Login)
	auth.POST("/refresh", h.Users.RefreshToken)
	auth.POST("/logout", h.Users.Logout)

	private := r.Group("", JWTAuthMiddleware(jwtSvc))
	private.GET("/me", h.Users.Me)
	private.GET("/state", h.Journey.GetState)
	private.POST("/orient/complete", h.Journey.CompleteOrientation)
	private.GET("/evaluation/questions", h.Journey.Questions)
	private.POST("/evaluation", h.Journey.SubmitEvaluation)
	private.GET("/evaluation/ranking", h.Journey.Ranking)
	private.POST("/commit", h.Journey.Commit)
	private.POST("/directions/eliminate", h.Journey.EliminateDirection)

	private.GET("/check-in/options", h.CheckIns.Options)
	private.POST("/check-in", h.CheckIns.Submit)
	private.GET("/check-ins", h.CheckIns.History)
	private.GET("/dashboard", h.CheckIns.Dashboard)

	private.GET("/chapters/current", h.Progress.CurrentChapter)
	private.GET("/chapters/outputs", h.Progress.ChapterOutputs)
	private.POST("/chapters/:id/complete", h.Progress.CompleteChapter)
	private.GET("/milestones", h.Progress.Milestones)
	private.POST("/milestones/:key/complete", h.Progress.CompleteMilestone)
	private.GET("/summary", h.Progress.Summary)

	private.GET("/profile", h.Profiles.GetProfile)
	private.PUT("/profile", h.Profiles.UpdateProfile)

	private.POST("/finances", h.Finances.AddEntry)
	private.GET("/finances", h.Finances.Report)
	private.PUT("/weekly-check-ins", h.Finances.UpsertWeekly)
	private.GET("/weekly-check-ins", h.Finances.Weekly)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// metricsMiddleware mide la latencia por ruta registrada, no por URL concreta.
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
