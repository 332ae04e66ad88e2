package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransitionHandler struct{ mock.Mock }

func (m *MockTransitionHandler) Handle(
	ctx context.Context,
	cmd commands.TransitionOrderCommand,
) (commands.TransitionResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransitionResult), args.Error(1)
}

type MockImportHandler struct{ mock.Mock }

func (m *MockImportHandler) Handle(ctx context.Context, cmd commands.ImportBooksCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ListOrdersQueryResponse), args.Error(1)
}

type MockOrderDetailsHandler struct{ mock.Mock }

func (m *MockOrderDetailsHandler) Handle(
	ctx context.Context,
	query queries.GetOrderDetailsQuery,
) (queries.GetOrderDetailsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderDetailsQueryResponse), args.Error(1)
}

type fixture struct {
	echo         *echo.Echo
	transition   *MockTransitionHandler
	importBooks  *MockImportHandler
	listOrders   *MockListOrdersHandler
	orderDetails *MockOrderDetailsHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		transition:   new(MockTransitionHandler),
		importBooks:  new(MockImportHandler),
		listOrders:   new(MockListOrdersHandler),
		orderDetails: new(MockOrderDetailsHandler),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(f.transition, f.importBooks, f.listOrders, f.orderDetails, logger)

	e, err := httpadapter.NewEcho(t.Context(), server)
	require.NoError(t, err)
	f.echo = e
	return f
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.ErrorResponse {
	t.Helper()
	var body httpadapter.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func commandFor(orderID int64, action order.Action) any {
	return mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
		return cmd.OrderID() == kernel.ID(orderID) && cmd.Action() == action
	})
}

func TestTransitionOrder_Success(t *testing.T) {
	f := newFixture(t)
	f.transition.On("Handle", mock.Anything, commandFor(8, order.ActionComplete)).
		Return(commands.TransitionResult{
			OrderID:        8,
			PreviousStatus: order.Pending,
			NewStatus:      order.Completed,
		}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/8/transitions", `{"action":"complete"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body httpadapter.TransitionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httpadapter.TransitionResponse{
		OrderID:        8,
		PreviousStatus: "pending",
		NewStatus:      "completed",
	}, body)
	f.transition.AssertExpectations(t)
}

func TestTransitionOrder_ErrorKinds(t *testing.T) {
	tests := map[string]struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		"insufficient stock": {
			err:        errs.NewInsufficientStockError(kernel.ID(2), 2, 1),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "InsufficientStock",
		},
		"invalid transition": {
			err:        errs.NewInvalidTransitionError("complete", "completed"),
			wantStatus: http.StatusConflict,
			wantKind:   "InvalidTransition",
		},
		"not found": {
			err:        errs.NewObjectNotFoundError("order", kernel.ID(8)),
			wantStatus: http.StatusNotFound,
			wantKind:   "NotFound",
		},
		"stock conflict": {
			err:        errs.NewStockConflictError(kernel.ID(2), -3),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "StorageFailure",
		},
		"storage": {
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   "StorageFailure",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.transition.On("Handle", mock.Anything, mock.Anything).
				Return(commands.TransitionResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders/8/transitions", `{"action":"complete"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestTransitionOrder_StorageFailureHidesCause(t *testing.T) {
	f := newFixture(t)
	f.transition.On("Handle", mock.Anything, mock.Anything).
		Return(commands.TransitionResult{}, errors.New("pq: password authentication failed")).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/8/transitions", `{"action":"cancel"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestTransitionOrder_BadRequests(t *testing.T) {
	tests := map[string]struct {
		target string
		body   string
	}{
		"unknown action":   {target: "/api/v1/orders/8/transitions", body: `{"action":"ship"}`},
		"empty action":     {target: "/api/v1/orders/8/transitions", body: `{"action":""}`},
		"missing action":   {target: "/api/v1/orders/8/transitions", body: `{}`},
		"zero order id":    {target: "/api/v1/orders/0/transitions", body: `{"action":"complete"}`},
		"negative id":      {target: "/api/v1/orders/-3/transitions", body: `{"action":"complete"}`},
		"non numeric id":   {target: "/api/v1/orders/abc/transitions", body: `{"action":"complete"}`},
		"malformed body":   {target: "/api/v1/orders/8/transitions", body: `{"action":`},
		"missing body":     {target: "/api/v1/orders/8/transitions", body: ""},
		"wrong field type": {target: "/api/v1/orders/8/transitions", body: `{"action":1}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "BadRequest", decodeError(t, rec).Kind)
			f.transition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	placed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() == nil
	})).Return([]queries.ListOrdersQueryResponse{
		{ID: 8, Username: "alice", ItemCount: 2, TotalAmount: decimal.RequireFromString("12.50"),
			Status: order.Pending, OrderDate: placed},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []httpadapter.OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(8), body[0].ID)
	assert.Equal(t, "alice", body[0].Username)
	assert.Equal(t, "pending", body[0].Status)
	assert.True(t, decimal.RequireFromString("12.5").Equal(body[0].TotalAmount))
	assert.True(t, placed.Equal(body[0].OrderDate))
}

func TestListOrders_StatusFilter(t *testing.T) {
	f := newFixture(t)
	f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() != nil && *q.Status() == order.Completed
	})).Return([]queries.ListOrdersQueryResponse{}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders?status=completed", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	f.listOrders.AssertExpectations(t)
}

func TestListOrders_UnknownStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders?status=shipped", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.listOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrderDetails(t *testing.T) {
	f := newFixture(t)
	f.orderDetails.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderDetailsQuery) bool {
		return q.OrderID() == 8
	})).Return(queries.GetOrderDetailsQueryResponse{
		ID:          8,
		Username:    "alice",
		Status:      order.Completed,
		TotalAmount: decimal.NewFromInt(30),
		Lines: []queries.OrderLineResponse{
			{BookID: 1, Title: "Dune", Author: "Frank Herbert", Quantity: 3,
				UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(30)},
		},
		LinesTotal: decimal.NewFromInt(30),
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/8", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body httpadapter.OrderDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Status)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, int64(1), body.Lines[0].BookID)
	assert.Equal(t, 3, body.Lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(body.LinesTotal))
}

func TestGetOrderDetails_NotFound(t *testing.T) {
	f := newFixture(t)
	f.orderDetails.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", kernel.ID(99))).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeError(t, rec).Kind)
}

func TestImportBooks(t *testing.T) {
	f := newFixture(t)
	f.importBooks.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ImportBooksCommand) bool {
		books := cmd.Books()
		return len(books) == 2 &&
			books[0].ID() == 1 && books[0].Image() == "image/dune.jpg" &&
			books[1].ID() == 2 && books[1].CategoryID() != nil
	})).Return(2, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/books/import", `[
		{"id": 1, "title": "Dune", "author": "Frank Herbert", "price": 85000, "stock": 5, "image": "dune.jpg"},
		{"id": 2, "categoryId": 3, "title": "Emma", "price": 12.5, "stock": 0}
	]`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imported": 2}`, rec.Body.String())
	f.importBooks.AssertExpectations(t)
}

func TestImportBooks_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty batch":    `[]`,
		"negative stock": `[{"id": 1, "title": "Dune", "price": 1, "stock": -1}]`,
		"missing title":  `[{"id": 1, "price": 1, "stock": 1}]`,
		"not an array":   `{"id": 1}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/books/import", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			f.importBooks.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSwaggerDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders/{orderId}/transitions")
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/authors", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeError(t, rec).Kind)
}
