package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rifasoft/raffle-admin/docs"
	v1 "github.com/rifasoft/raffle-admin/internal/api/handler/v1"
	"github.com/rifasoft/raffle-admin/internal/api/middleware"
	"github.com/rifasoft/raffle-admin/internal/config"
	"github.com/rifasoft/raffle-admin/internal/email"
	"github.com/rifasoft/raffle-admin/internal/repository"
	"github.com/rifasoft/raffle-admin/internal/repository/dao"
	"github.com/rifasoft/raffle-admin/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, store *dao.Store) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	ticketRepo := repository.NewTicketRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	configRepo := repository.NewRaffleConfigRepository(store)

	notifier := email.NewSMTPNotifier(configRepo, conf.API.BaseURL, time.Duration(conf.Notify.TimeoutSeconds)*time.Second)

	salesSvc := service.NewSalesService(ticketRepo, customerRepo, notifier)
	customerSvc := service.NewCustomerService(customerRepo, ticketRepo, salesSvc)
	dashboardSvc := service.NewDashboardService(ticketRepo, customerRepo, configRepo)

	authSvc, err := service.NewAuthService(conf.API.AdminUsername, conf.API.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("service.NewAuthService -> %w", err)
	}

	ticketHandler := v1.NewTicketHandler(ticketRepo, salesSvc, customerRepo)
	customerHandler := v1.NewCustomerHandler(customerSvc)
	dashboardHandler := v1.NewDashboardHandler(dashboardSvc, notifier)
	printHandler := v1.NewPrintHandler(ticketRepo, customerRepo, configRepo, conf.API.BaseURL)
	authHandler := v1.NewAuthHandler(authSvc, []byte(conf.API.JWTSigningKey))

	s.MountHandlers(ticketHandler, customerHandler, dashboardHandler, printHandler, authHandler)

	return s, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	ticketHandler *v1.TicketHandler,
	customerHandler *v1.CustomerHandler,
	dashboardHandler *v1.DashboardHandler,
	printHandler *v1.PrintHandler,
	authHandler *v1.AuthHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	// Ticket reads and the printable view stay public; the QR code on a
	// printed ticket links straight to them.
	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/tickets", ticketHandler.HandleListTickets)
		public.GET("/tickets/stats", ticketHandler.HandleGetStats)
		public.GET("/tickets/:number", ticketHandler.HandleGetTicket)
		public.GET("/print/:number", printHandler.HandlePrintTicket)
	}

	tickets := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		tickets.POST("/tickets/sell-batch", ticketHandler.HandleSellBatch)
		tickets.PUT("/tickets/:number/sell", ticketHandler.HandleSellTicket)
		tickets.PUT("/tickets/:number/reserve", ticketHandler.HandleReserveTicket)
		tickets.PUT("/tickets/:number/release", ticketHandler.HandleReleaseTicket)
	}

	customers := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		customers.GET("/customers", customerHandler.HandleListCustomers)
		customers.GET("/customers/:id", customerHandler.HandleGetCustomer)
		customers.POST("/customers", customerHandler.HandleCreateCustomer)
		customers.PUT("/customers/:id", customerHandler.HandleUpdateCustomer)
		customers.DELETE("/customers/:id", customerHandler.HandleDeleteCustomer)
	}

	dashboard := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		dashboard.GET("/dashboard", dashboardHandler.HandleGetMetrics)
		dashboard.GET("/dashboard/config", dashboardHandler.HandleGetConfig)
		dashboard.PUT("/dashboard/config", dashboardHandler.HandleUpdateConfig)
		dashboard.POST("/dashboard/test-email", dashboardHandler.HandleTestEmail)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffle Admin API"
	docs.SwaggerInfo.Description = "Ticket inventory, sales and customer administration for a raffle."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
