package httptransport_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
	httptransport "github.com/salesdesk/oms/internal/transport/http"
)

type stubService struct {
	listOrdersFn           func(ctx context.Context) ([]order.Order, error)
	getOrderFn             func(ctx context.Context, id int64) (*order.Order, error)
	createOrderFn          func(ctx context.Context, input order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error)
	deleteOrderFn          func(ctx context.Context, id int64) error
	totalSaleFn            func(ctx context.Context) (*salesreport.Total, error)
	totalSalePerCustomerFn func(ctx context.Context) ([]salesreport.CustomerTotal, error)
}

func (s *stubService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.listOrdersFn(ctx)
}

func (s *stubService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	return s.getOrderFn(ctx, id)
}

func (s *stubService) CreateOrder(ctx context.Context, input order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error) {
	return s.createOrderFn(ctx, input)
}

func (s *stubService) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteOrderFn(ctx, id)
}

func (s *stubService) TotalSale(ctx context.Context) (*salesreport.Total, error) {
	return s.totalSaleFn(ctx)
}

func (s *stubService) TotalSalePerCustomer(ctx context.Context) ([]salesreport.CustomerTotal, error) {
	return s.totalSalePerCustomerFn(ctx)
}

func newTestRouter(svc *stubService) http.Handler {
	transport := httptransport.NewHTTPTransport(svc)
	transport.RegisterRoutes()
	return transport.Router()
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestListOrders(t *testing.T) {
	svc := &stubService{
		listOrdersFn: func(_ context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: 1, Date: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), OrderItems: []orderitem.OrderItem{}},
			}, nil
		},
	}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Orders []order.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Orders, 1)
	assert.NotNil(t, response.Orders[0].OrderItems)
	assert.Empty(t, response.Orders[0].OrderItems)
}

func TestGetOrder(t *testing.T) {
	t.Run("missing order returns 200 with null order", func(t *testing.T) {
		svc := &stubService{
			getOrderFn: func(_ context.Context, _ int64) (*order.Order, error) {
				return nil, nil
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodGet, "/orders/404", "")

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "null", string(response["order"]))
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		svc := &stubService{
			getOrderFn: func(_ context.Context, _ int64) (*order.Order, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodGet, "/orders/abc", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("service failure returns 500 with the failure message", func(t *testing.T) {
		svc := &stubService{
			getOrderFn: func(_ context.Context, _ int64) (*order.Order, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodGet, "/orders/1", "")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "connection refused", response["message"])
	})
}

func TestCreateOrder(t *testing.T) {
	t.Run("valid request returns 201 with order and items", func(t *testing.T) {
		var gotInput order.NewOrderInput
		svc := &stubService{
			createOrderFn: func(_ context.Context, input order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error) {
				gotInput = input
				items := []orderitem.OrderItem{
					{ID: 10, OrderID: 5, ProductID: 7, Amount: 3, Price: 10, Discount: 0.1},
				}
				return &order.Order{ID: 5, CustomerID: 1, EmployeeID: 2, OrderItems: items}, items, nil
			},
		}
		router := newTestRouter(svc)

		body := `{"customerId":1,"employeeId":2,"items":[{"productId":7,"amount":3,"discount":0.1}]}`
		recorder := doRequest(t, router, http.MethodPost, "/orders", body)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, int64(1), gotInput.CustomerID)
		require.Len(t, gotInput.Items, 1)
		assert.Equal(t, int64(7), gotInput.Items[0].ProductID)

		var response struct {
			Order      *order.Order          `json:"order"`
			OrderItems []orderitem.OrderItem `json:"orderItems"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.NotNil(t, response.Order)
		assert.Equal(t, int64(5), response.Order.ID)
		require.Len(t, response.OrderItems, 1)
		assert.Equal(t, 10.0, response.OrderItems[0].Price)
	})

	t.Run("missing items returns 400", func(t *testing.T) {
		svc := &stubService{
			createOrderFn: func(_ context.Context, _ order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error) {
				t.Fatal("service must not be called")
				return nil, nil, nil
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodPost, "/orders", `{"customerId":1,"employeeId":2}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("discount of 1 or more returns 400", func(t *testing.T) {
		svc := &stubService{
			createOrderFn: func(_ context.Context, _ order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error) {
				t.Fatal("service must not be called")
				return nil, nil, nil
			},
		}
		router := newTestRouter(svc)

		body := `{"customerId":1,"employeeId":2,"items":[{"productId":7,"amount":3,"discount":1}]}`
		recorder := doRequest(t, router, http.MethodPost, "/orders", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		svc := &stubService{}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodPost, "/orders", `{"customerId":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("returns 204 with empty body", func(t *testing.T) {
		var gotID int64
		svc := &stubService{
			deleteOrderFn: func(_ context.Context, id int64) error {
				gotID = id
				return nil
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodDelete, "/orders/42", "")

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		assert.Equal(t, int64(42), gotID)
	})

	t.Run("failure returns 500", func(t *testing.T) {
		svc := &stubService{
			deleteOrderFn: func(_ context.Context, _ int64) error {
				return errors.New("tx aborted")
			},
		}
		router := newTestRouter(svc)

		recorder := doRequest(t, router, http.MethodDelete, "/orders/42", "")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestTotalSale(t *testing.T) {
	svc := &stubService{
		totalSaleFn: func(_ context.Context) (*salesreport.Total, error) {
			return &salesreport.Total{TotalAmount: 3, TotalSale: 27}, nil
		},
	}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodGet, "/orders/total-sale", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Total salesreport.Total `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, int64(3), response.Total.TotalAmount)
	assert.Equal(t, 27.0, response.Total.TotalSale)
}

func TestCustomerTotals(t *testing.T) {
	svc := &stubService{
		totalSalePerCustomerFn: func(_ context.Context) ([]salesreport.CustomerTotal, error) {
			return []salesreport.CustomerTotal{
				{CustomerID: 1, Name: "Acme", TotalAmount: 500, TotalSale: 12500},
			}, nil
		},
	}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodGet, "/orders/total-sale/customers", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Total []salesreport.CustomerTotal `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Total, 1)
	assert.Equal(t, "Acme", response.Total[0].Name)
	assert.Equal(t, 12500.0, response.Total[0].TotalSale)
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(&stubService{})

	for _, path := range []string{"/nope", "/orders/1/items", "/"} {
		recorder := doRequest(t, router, http.MethodGet, path, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code, path)

		var response map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "path not found on this server", response["message"])
	}
}

func TestPanicRecovery(t *testing.T) {
	svc := &stubService{
		listOrdersFn: func(_ context.Context) ([]order.Order, error) {
			panic("boom")
		},
	}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodGet, "/orders", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "boom", response["message"])
}
