// Package http exposes order administration over a JSON HTTP API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (commands.TransitionResult, error)
}

type ImportBooksHandler interface {
	Handle(ctx context.Context, cmd commands.ImportBooksCommand) (int, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
}

type OrderDetailsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
}

// Server maps HTTP requests onto application use cases.
type Server struct {
	// Command handlers
	transitionOrderHandler TransitionOrderHandler
	importBooksHandler     ImportBooksHandler

	// Query handlers
	listOrdersHandler   ListOrdersHandler
	orderDetailsHandler OrderDetailsHandler

	logger *slog.Logger
}

// NewServer creates a server with the required command and query handlers.
func NewServer(
	transitionOrderHandler TransitionOrderHandler,
	importBooksHandler ImportBooksHandler,
	listOrdersHandler ListOrdersHandler,
	orderDetailsHandler OrderDetailsHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		transitionOrderHandler: transitionOrderHandler,
		importBooksHandler:     importBooksHandler,
		listOrdersHandler:      listOrdersHandler,
		orderDetailsHandler:    orderDetailsHandler,
		logger:                 logger.With("component", "http"),
	}
}

// NewEcho builds the echo instance with API routes, request validation,
// the swagger UI and the health probe.
func NewEcho(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	router, err := newOpenAPIRouter(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(s.logger)
	e.Use(middleware.Recover())
	e.Use(requestValidator(router))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrderDetails)
	api.POST("/orders/:orderId/transitions", s.TransitionOrder)
	api.POST("/books/import", s.ImportBooks)

	return e, nil
}

type TransitionRequest struct {
	Action string `json:"action"`
}

type TransitionResponse struct {
	OrderID        int64  `json:"orderId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Action)
	if err != nil {
		return err
	}

	result, err := s.transitionOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TransitionResponse{
		OrderID:        result.OrderID.Int64(),
		PreviousStatus: result.PreviousStatus.String(),
		NewStatus:      result.NewStatus.String(),
	})
}

type OrderSummary struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"orderDate"`
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed := order.ParseStatus(raw)
		if parsed.String() != raw {
			return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", raw))
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return err
	}

	orders, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:          o.ID.Int64(),
			Username:    o.Username,
			ItemCount:   o.ItemCount,
			TotalAmount: o.TotalAmount,
			Status:      o.Status.String(),
			OrderDate:   o.OrderDate,
		}
	}

	return c.JSON(http.StatusOK, response)
}

type OrderLine struct {
	BookID    int64           `json:"bookId"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type OrderDetails struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
	Lines       []OrderLine     `json:"lines"`
	LinesTotal  decimal.Decimal `json:"linesTotal"`
}

// GetOrderDetails handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderDetails(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return err
	}

	details, err := s.orderDetailsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	lines := make([]OrderLine, len(details.Lines))
	for i, l := range details.Lines {
		lines[i] = OrderLine{
			BookID:    l.BookID.Int64(),
			Title:     l.Title,
			Author:    l.Author,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		}
	}

	return c.JSON(http.StatusOK, OrderDetails{
		ID:          details.ID.Int64(),
		Username:    details.Username,
		Status:      details.Status.String(),
		TotalAmount: details.TotalAmount,
		OrderDate:   details.OrderDate,
		Lines:       lines,
		LinesTotal:  details.LinesTotal,
	})
}

type BookRecord struct {
	ID         int64           `json:"id"`
	CategoryID *int64          `json:"categoryId"`
	Title      string          `json:"title"`
	Author     string          `json:"author"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Image      string          `json:"image"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}

// ImportBooks handles POST /api/v1/books/import.
func (s *Server) ImportBooks(c echo.Context) error {
	var req []BookRecord
	if err := c.Bind(&req); err != nil {
		return err
	}

	records := make([]commands.BookRecord, len(req))
	for i, r := range req {
		records[i] = commands.BookRecord{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			Title:      r.Title,
			Author:     r.Author,
			Price:      r.Price,
			Stock:      r.Stock,
			Image:      r.Image,
		}
	}

	cmd, err := commands.NewImportBooksCommand(records)
	if err != nil {
		return err
	}

	imported, err := s.importBooksHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.logger.InfoContext(c.Request().Context(), "books imported", "count", imported)
	return c.JSON(http.StatusOK, ImportResult{Imported: imported})
}

func bindOrderID(c echo.Context) (int64, error) {
	var orderID int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}
