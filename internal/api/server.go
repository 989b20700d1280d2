package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/andescode/event-registration-api/docs"
	"github.com/andescode/event-registration-api/internal/analytics"
	v1 "github.com/andescode/event-registration-api/internal/api/handler/v1"
	"github.com/andescode/event-registration-api/internal/api/middleware"
	"github.com/andescode/event-registration-api/internal/config"
	"github.com/andescode/event-registration-api/internal/notifier"
	"github.com/andescode/event-registration-api/internal/repository"
	"github.com/andescode/event-registration-api/internal/repository/dao"
	"github.com/andescode/event-registration-api/internal/service"
	"github.com/andescode/event-registration-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	Auth          *service.AuthService
	Catalog       *service.CatalogService
	Registrations *service.RegistrationService
	Analytics     *service.AnalyticsService

	// Poller caches dashboard snapshots in the background. The app owns
	// its lifecycle and starts it with the process context.
	Poller *analytics.Poller
}

func NewServer(conf *config.AppConfig, db *gorm.DB, uploader storage.Uploader, notify notifier.Notifier, optionCache service.OptionCache) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.initServices(db, uploader, notify, optionCache)

	refresh := time.Minute
	if conf.Analytics != nil && conf.Analytics.RefreshSeconds > 0 {
		refresh = time.Duration(conf.Analytics.RefreshSeconds) * time.Second
	}
	s.Poller = analytics.NewPoller(s.Analytics.Snapshot, refresh)

	s.MountMiddlewares()

	authHandler := v1.NewAuthHandler(s.Config.API, s.Auth)
	publicHandler := v1.NewPublicHandler(s.Catalog, s.Registrations)
	registrationHandler := v1.NewAdminRegistrationHandler(s.Registrations, service.NewExportService(s.Registrations), s.Catalog)
	catalogHandler := v1.NewAdminCatalogHandler(s.Catalog)
	analyticsHandler := v1.NewAdminAnalyticsHandler(s.Analytics, s.Poller)
	s.MountHandlers(authHandler, publicHandler, registrationHandler, catalogHandler, analyticsHandler)

	return s
}

func (s *Server) initServices(db *gorm.DB, uploader storage.Uploader, notify notifier.Notifier, optionCache service.OptionCache) {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(db))

	s.Auth = service.NewAuthService(adminRepo)
	s.Catalog = service.NewCatalogService(eventRepo, catalogRepo, optionCache)
	s.Registrations = service.NewRegistrationService(registrationRepo, s.Catalog, uploader, notify)
	s.Analytics = service.NewAnalyticsService(registrationRepo, s.Catalog)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	publicHandler *v1.PublicHandler,
	registrationHandler *v1.AdminRegistrationHandler,
	catalogHandler *v1.AdminCatalogHandler,
	analyticsHandler *v1.AdminAnalyticsHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/event", publicHandler.HandleGetActiveEvent)
		public.GET("/event/regions", publicHandler.HandleGetRegions)
		public.GET("/event/roles", publicHandler.HandleGetRoles)
		public.GET("/event/pricing", publicHandler.HandleGetPricing)
		public.GET("/health-entities", publicHandler.HandleGetHealthEntities)
		public.GET("/registrations/quote", publicHandler.HandleQuote)
		public.POST("/registrations", publicHandler.HandleSubmitRegistration)

		public.POST("/admin/auth/login", authHandler.HandleLogin)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.POST("/admins", authHandler.HandleCreateAdmin)

		admin.GET("/registrations", registrationHandler.HandleListRegistrations)
		admin.GET("/registrations/export", registrationHandler.HandleExportRegistrations)
		admin.GET("/registrations/:registrationID", registrationHandler.HandleGetRegistration)
		admin.PATCH("/registrations/:registrationID/status", registrationHandler.HandleUpdateStatus)
		admin.PATCH("/registrations/:registrationID/payment", registrationHandler.HandleUpdateAmountPaid)

		admin.POST("/regions", catalogHandler.HandleCreateRegion)
		admin.PUT("/regions/:regionID", catalogHandler.HandleUpdateRegion)
		admin.DELETE("/regions/:regionID", catalogHandler.HandleDeleteRegion)

		admin.POST("/roles", catalogHandler.HandleCreateRoleProfile)
		admin.PUT("/roles/:roleID", catalogHandler.HandleUpdateRoleProfile)
		admin.DELETE("/roles/:roleID", catalogHandler.HandleDeleteRoleProfile)

		admin.PUT("/pricing", catalogHandler.HandleUpdatePricingConfig)

		admin.GET("/events", catalogHandler.HandleListEvents)
		admin.POST("/events", catalogHandler.HandleCreateEvent)
		admin.POST("/events/:eventID/activate", catalogHandler.HandleActivateEvent)

		admin.GET("/analytics", analyticsHandler.HandleGetDashboard)
		admin.GET("/analytics/summary", analyticsHandler.HandleGetSummary)
		admin.GET("/analytics/trend", analyticsHandler.HandleGetTrend)
		admin.GET("/analytics/regions", analyticsHandler.HandleGetRegionStats)
		admin.GET("/analytics/roles", analyticsHandler.HandleGetRoleStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Receipts stored on local disk are served back under /uploads.
	if s.Config.Storage != nil && s.Config.Storage.ReceiptsDir != "" {
		s.Router.Static("/uploads", s.Config.Storage.ReceiptsDir)
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Registration API"
	docs.SwaggerInfo.Description = "Registration, pricing and reporting API for recurring events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
