package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/organization"
	"laundry/internal/core/domain/model/staff"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CommandHandler is satisfied by every handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, command C) error
}

// QueryHandler is satisfied by every handler in the queries package.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers lists the use cases exposed over HTTP.
type Handlers struct {
	CreateOrganization CommandHandler[commands.CreateOrganizationCommand]
	RegisterOutlet     CommandHandler[commands.RegisterOutletCommand]
	RegisterUser       CommandHandler[commands.RegisterUserCommand]
	CreateOrder        CommandHandler[commands.CreateOrderCommand]
	TransitionOrder    CommandHandler[commands.TransitionOrderCommand]
	ApplyDiscount      CommandHandler[commands.ApplyDiscountCommand]
	RecordPayment      CommandHandler[commands.RecordPaymentCommand]
	RefundOrder        CommandHandler[commands.RefundOrderCommand]
	UpdateItem         CommandHandler[commands.UpdateItemCommand]
	AdvanceItem        CommandHandler[commands.AdvanceItemCommand]
	RecordHandover     CommandHandler[commands.RecordHandoverCommand]
	ReportDefect       CommandHandler[commands.ReportDefectCommand]
	ResolveDefect      CommandHandler[commands.ResolveDefectCommand]
	CreateDispatch     CommandHandler[commands.CreateDispatchCommand]
	AcceptDispatch     CommandHandler[commands.DispatchCommand]
	StartDispatch      CommandHandler[commands.DispatchCommand]
	CompleteDispatch   CommandHandler[commands.DispatchCommand]
	CancelDispatch     CommandHandler[commands.DispatchCommand]

	GetOrder              QueryHandler[queries.GetOrderQuery, *queries.GetOrderQueryResponse]
	GetItemHistory        QueryHandler[queries.GetItemHistoryQuery, *queries.GetItemHistoryQueryResponse]
	ListActiveDispatches  QueryHandler[queries.ListActiveDispatchesQuery, []queries.DispatchView]
	ListUnresolvedDefects QueryHandler[queries.ListUnresolvedDefectsQuery, []queries.DefectView]
	ListOverdueOrders     QueryHandler[queries.ListOverdueOrdersQuery, []queries.OverdueOrderView]
	ResolveActor          QueryHandler[queries.ResolveActorQuery, staff.Actor]
}

// OutletDirectory finds the organization an outlet belongs to.
type OutletDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (*organization.Outlet, error)
}

// Board attaches websocket clients to a room of the event hub.
type Board interface {
	Serve(w http.ResponseWriter, r *http.Request, room string) error
}

// Metrics instruments requests and serves /metrics.
type Metrics interface {
	Middleware() echo.MiddlewareFunc
	Handler() http.Handler
}

// Options tune the outer middleware stack.
type Options struct {
	RateLimit       int
	RateLimitWindow time.Duration
	Development     bool
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h       Handlers
	outlets OutletDirectory
	board   Board
	metrics Metrics
	logger  *slog.Logger
	clock   func() time.Time
}

func NewServer(h Handlers, outlets OutletDirectory, board Board, metrics Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:       h,
		outlets: outlets,
		board:   board,
		metrics: metrics,
		logger:  logger.With("component", "http"),
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Echo builds the router with the full middleware stack.
func (s *Server) Echo(doc *openapi3.T, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// echo's own logger only reports framework internals; requests go through slog.
	e.Logger.SetLevel(log.WARN)
	if opts.Development {
		e.Logger.SetLevel(log.DEBUG)
	}
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(securityHeaders(opts.Development))
	if opts.RateLimit > 0 {
		e.Use(rateLimit(opts.RateLimit, opts.RateLimitWindow))
	}
	if s.metrics != nil {
		e.Use(s.metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	e.Use(requestLogger(s.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	validate, err := validateRequests(doc)
	if err != nil {
		return nil, err
	}
	api := e.Group("/api/v1", validate, s.identify)
	s.register(api)

	return e, nil
}

func (s *Server) register(g *echo.Group) {
	g.POST("/organizations", s.CreateOrganization)
	g.POST("/organizations/:organizationId/outlets", s.RegisterOutlet)
	g.GET("/organizations/:organizationId/orders/overdue", s.ListOverdueOrders)
	g.GET("/organizations/:organizationId/dispatches/active", s.ListActiveDispatches)
	g.GET("/organizations/:organizationId/defects/unresolved", s.ListUnresolvedDefects)
	g.GET("/organizations/:organizationId/board", s.OrganizationBoard)
	g.GET("/outlets/:outletId/board", s.OutletBoard)

	g.POST("/users", s.RegisterUser)

	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/transitions", s.TransitionOrder)
	g.PUT("/orders/:orderId/discount", s.ApplyDiscount)
	g.POST("/orders/:orderId/payments", s.RecordPayment)
	g.POST("/orders/:orderId/refunds", s.RefundOrder)

	g.PUT("/items/:itemId", s.UpdateItem)
	g.POST("/items/:itemId/stage", s.AdvanceItem)
	g.GET("/items/:itemId/history", s.GetItemHistory)
	g.POST("/items/:itemId/handovers", s.RecordHandover)
	g.POST("/items/:itemId/defects", s.ReportDefect)

	g.POST("/defects/:defectId/resolve", s.ResolveDefect)

	g.POST("/dispatches", s.CreateDispatch)
	g.POST("/dispatches/:dispatchId/:action", s.ChangeDispatch)
}
