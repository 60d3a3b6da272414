package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/cerebrexia/fest-backend/docs"
	v1 "github.com/cerebrexia/fest-backend/internal/api/handler/v1"
	"github.com/cerebrexia/fest-backend/internal/api/middleware"
	"github.com/cerebrexia/fest-backend/internal/config"
	"github.com/cerebrexia/fest-backend/internal/mailer"
	"github.com/cerebrexia/fest-backend/internal/payment"
	"github.com/cerebrexia/fest-backend/internal/repository"
	"github.com/cerebrexia/fest-backend/internal/repository/dao"
	"github.com/cerebrexia/fest-backend/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	gateway := payment.NewRazorpayGateway(conf.Razorpay)
	notifier := mailer.NewMailer(conf.SMTP, conf.Fest)

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	registrationHandler := s.initRegistrationHandler(db, gateway, notifier)
	paymentHandler := s.initPaymentHandler(db, gateway, notifier)
	scanHandler := s.initScanHandler(db, notifier)
	s.MountHandlers(authHandler, userHandler, registrationHandler, paymentHandler, scanHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB, gateway payment.Gateway, notifier service.Notifier) *v1.RegistrationHandler {
	regDAO := dao.NewRegistrationDAO(db)
	repo := repository.NewRegistrationRepository(regDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	fees := service.NewFestPassWaiverPolicy(repo, s.Config.Fest.WaiverCollege)
	svc := service.NewRegistrationService(repo, userRepo, gateway, notifier, fees)
	handler := v1.NewRegistrationHandler(s.Config.Razorpay, svc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB, gateway payment.Gateway, notifier service.Notifier) *v1.PaymentHandler {
	regDAO := dao.NewRegistrationDAO(db)
	repo := repository.NewRegistrationRepository(regDAO)
	svc := service.NewPaymentService(repo, gateway, notifier, s.Config.Razorpay.KeySecret)
	handler := v1.NewPaymentHandler(svc)

	return handler
}

func (s *Server) initScanHandler(db *gorm.DB, notifier service.Notifier) *v1.ScanHandler {
	regDAO := dao.NewRegistrationDAO(db)
	repo := repository.NewRegistrationRepository(regDAO)
	svc := service.NewEntryService(repo, notifier)
	handler := v1.NewScanHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	registrationHandler *v1.RegistrationHandler,
	paymentHandler *v1.PaymentHandler,
	scanHandler *v1.ScanHandler,
) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/register", registrationHandler.HandleRegisterFest)
		public.POST("/register-event", registrationHandler.HandleRegisterEvent)
		public.POST("/payment/callback", paymentHandler.HandlePaymentCallback)
		public.POST("/scan-qr", scanHandler.HandleScanQR)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Fest registration API"
	docs.SwaggerInfo.Description = "Fest pass and event registration backend with payment confirmation and gate scanning."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
