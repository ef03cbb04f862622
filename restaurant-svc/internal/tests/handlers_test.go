package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	httpapi "restaurant-api/restaurant-svc/internal/api/http"
	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/mocks"
	"restaurant-api/restaurant-svc/internal/rating"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serve(handler *httpapi.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestCreateDishHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.DishRepository)
		wantCode  int
	}{
		{
			name: "valid request",
			body: `{"id":1,"name":"Pizza","price":12.5,"description":"Cheese"}`,
			setupMock: func(m *mocks.DishRepository) {
				m.On("CreateDish", mock.Anything, mock.AnythingOfType("*domain.Dish")).Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(m *mocks.DishRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "id beyond integer column",
			body:      `{"id":3000000000,"name":"Pizza","price":1}`,
			setupMock: func(m *mocks.DishRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing name",
			body:      `{"id":1,"price":3}`,
			setupMock: func(m *mocks.DishRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "negative price",
			body:      `{"id":1,"name":"Pizza","price":-3}`,
			setupMock: func(m *mocks.DishRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate id",
			body: `{"id":1,"name":"Pizza","price":12.5}`,
			setupMock: func(m *mocks.DishRepository) {
				m.On("CreateDish", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists).Once()
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "database error",
			body: `{"id":1,"name":"Pizza"}`,
			setupMock: func(m *mocks.DishRepository) {
				m.On("CreateDish", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewDishRepository(t)
			handler := httpapi.NewHandler(service.NewDishService(mockRepo, nil), nil, nil)

			testCase.setupMock(mockRepo)

			w := serve(handler, "POST", "/create/", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestGetDishHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		mockDish   *domain.Dish
		mockError  error
		callsRepo  bool
		wantCode   int
		wantDetail string
	}{
		{
			name:      "found",
			id:        "1",
			mockDish:  &domain.Dish{ID: 1, Name: "Pizza", AverageRating: 13.0 / 3.0, TotalRatings: 3},
			callsRepo: true,
			wantCode:  http.StatusOK,
		},
		{
			name:       "not found",
			id:         "999",
			mockError:  domain.ErrNotFound,
			callsRepo:  true,
			wantCode:   http.StatusNotFound,
			wantDetail: "Dish not found",
		},
		{
			name:     "non-numeric id",
			id:       "abc",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "id beyond integer column",
			id:       "3000000000",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewDishRepository(t)
			handler := httpapi.NewHandler(service.NewDishService(mockRepo, nil), nil, nil)

			if testCase.callsRepo {
				mockRepo.On("GetDish", mock.Anything, mock.Anything).Return(testCase.mockDish, testCase.mockError).Once()
			}

			w := serve(handler, "GET", "/dishes/"+testCase.id, "")

			assert.Equal(t, testCase.wantCode, w.Code)
			if testCase.wantDetail != "" {
				assert.Equal(t, testCase.wantDetail, detail(t, w))
			}
			if testCase.wantCode == http.StatusOK {
				assert.JSONEq(t,
					`{"id":1,"name":"Pizza","price":0,"description":"","average_rating":4.33,"total_ratings":3,"rating":4.33}`,
					w.Body.String())
			}
		})
	}
}

func TestListDishesHandler_EmptyIsArray(t *testing.T) {
	mockRepo := mocks.NewDishRepository(t)
	handler := httpapi.NewHandler(service.NewDishService(mockRepo, nil), nil, nil)

	mockRepo.On("ListDishes", mock.Anything).Return([]domain.Dish{}, nil).Once()

	w := serve(handler, "GET", "/dishes/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateDishHandler_PathIDWins(t *testing.T) {
	mockRepo := mocks.NewDishRepository(t)
	handler := httpapi.NewHandler(service.NewDishService(mockRepo, nil), nil, nil)

	mockRepo.On("UpdateDish", mock.Anything, mock.MatchedBy(func(d *domain.Dish) bool {
		return d.ID == 4 && d.Name == "Soup"
	})).Return(nil).Once()

	w := serve(handler, "PUT", "/dishes/4", `{"id":99,"name":"Soup","price":5}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteDishHandler(t *testing.T) {
	tests := []struct {
		name      string
		mockError error
		wantCode  int
	}{
		{name: "deleted", wantCode: http.StatusOK},
		{name: "not found", mockError: domain.ErrNotFound, wantCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewDishRepository(t)
			handler := httpapi.NewHandler(service.NewDishService(mockRepo, nil), nil, nil)

			mockRepo.On("DeleteDish", mock.Anything, 3).Return(testCase.mockError).Once()

			w := serve(handler, "DELETE", "/dishes/3", "")

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestRateDishHandler_Scenario(t *testing.T) {
	mockRepo := mocks.NewRatingRepository(t)
	handler := httpapi.NewHandler(nil, service.NewRatingService(mockRepo, nil), nil)

	mockRepo.On("SaveRating", mock.Anything, 1, "u1", mock.Anything, mock.Anything).
		Return(statefulRatings(rating.Aggregate{Average: 4.0, Count: 2}), nil).Twice()

	w := serve(handler, "POST", "/dishes/1/rate", `{"rating":5,"user_id":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average_rating":4.33,"total_ratings":3}`, w.Body.String())

	w = serve(handler, "POST", "/dishes/1/rate", `{"rating":1,"user_id":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average_rating":3,"total_ratings":3}`, w.Body.String())
}

func TestRateDishHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{name: "rating above range", path: "/dishes/1/rate", body: `{"rating":6,"user_id":"u1"}`, wantCode: http.StatusBadRequest},
		{name: "rating below range", path: "/dishes/1/rate", body: `{"rating":0,"user_id":"u1"}`, wantCode: http.StatusBadRequest},
		{name: "missing user", path: "/dishes/1/rate", body: `{"rating":3}`, wantCode: http.StatusBadRequest},
		{name: "non-integer rating", path: "/dishes/1/rate", body: `{"rating":"five","user_id":"u1"}`, wantCode: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewRatingRepository(t)
			handler := httpapi.NewHandler(nil, service.NewRatingService(mockRepo, nil), nil)

			w := serve(handler, "POST", testCase.path, testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestRateDishHandler_UnknownDish(t *testing.T) {
	mockRepo := mocks.NewRatingRepository(t)
	handler := httpapi.NewHandler(nil, service.NewRatingService(mockRepo, nil), nil)

	mockRepo.On("SaveRating", mock.Anything, 42, "u1", 3, mock.Anything).
		Return(rating.Aggregate{}, domain.ErrNotFound).Once()

	w := serve(handler, "POST", "/dishes/42/rate", `{"rating":3,"user_id":"u1"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Dish not found", detail(t, w))
}

// memoryOrders keeps orders in a map so a create/read/delete sequence can be
// exercised end to end over HTTP.
type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: map[string]domain.Order{}}
}

func (m *memoryOrders) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.orders[order.ID] = *order
	return nil
}

func (m *memoryOrders) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &order, nil
}

func (m *memoryOrders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return m.ListOrdersByUser(ctx, "")
}

func (m *memoryOrders) ListOrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []domain.Order{}
	for _, order := range m.orders {
		if userID == "" || order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (m *memoryOrders) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus, check func(domain.OrderStatus) error) (domain.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	if err := check(order.Status); err != nil {
		return "", err
	}
	previous := order.Status
	order.Status = status
	m.orders[id] = order
	return previous, nil
}

func (m *memoryOrders) DeleteOrder(_ context.Context, id string) (domain.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	delete(m.orders, id)
	return order.Status, nil
}

func (m *memoryOrders) OrderExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[id]
	return ok, nil
}

var _ service.OrderRepository = (*memoryOrders)(nil)

const orderO1 = `{
	"id": "o1",
	"userId": "u1",
	"customer_name": "John Doe",
	"total": 25.5,
	"timestamp": "2024-03-01T12:00:00Z",
	"items": [{"name": "pizza", "quantity": 2}, {"name": "salad", "quantity": 1}]
}`

func newOrderHandler(repo service.OrderRepository) *httpapi.Handler {
	qr := service.DefaultQRGenerator{BaseURL: "http://localhost:8000"}
	return httpapi.NewHandler(nil, nil, service.NewOrderService(repo, qr, nil))
}

func TestOrderLifecycleHandlers(t *testing.T) {
	handler := newOrderHandler(newMemoryOrders())

	w := serve(handler, "POST", "/Createorders/", orderO1)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Order created successfully","order_id":"o1"}`, w.Body.String())

	w = serve(handler, "GET", "/orders/o1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, []domain.Item{{Name: "pizza", Quantity: 2}, {Name: "salad", Quantity: 1}}, order.Items)

	w = serve(handler, "GET", "/View_orders/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"o1"`)

	w = serve(handler, "DELETE", "/orders/o1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(handler, "GET", "/orders/o1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", detail(t, w))
}

func TestCreateOrderHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "no items", body: `{"id":"o2","userId":"u1","customer_name":"Jane","total":1,"items":[]}`, wantCode: http.StatusBadRequest},
		{name: "zero quantity", body: `{"id":"o2","userId":"u1","customer_name":"Jane","total":1,"items":[{"name":"tea","quantity":0}]}`, wantCode: http.StatusBadRequest},
		{name: "bad timestamp", body: `{"id":"o2","userId":"u1","customer_name":"Jane","timestamp":"yesterday","items":[{"name":"tea","quantity":1}]}`, wantCode: http.StatusBadRequest},
		{name: "terminal initial status", body: `{"id":"o2","userId":"u1","customer_name":"Jane","status":"delivered","items":[{"name":"tea","quantity":1}]}`, wantCode: http.StatusBadRequest},
		{name: "duplicate id", body: orderO1, wantCode: http.StatusConflict},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := newMemoryOrders()
			handler := newOrderHandler(repo)
			require.Equal(t, http.StatusCreated, serve(handler, "POST", "/Createorders/", orderO1).Code)

			w := serve(handler, "POST", "/Createorders/", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			order, err := repo.GetOrder(context.Background(), "o1")
			require.NoError(t, err)
			assert.Equal(t, "John Doe", order.CustomerName)
		})
	}
}

func TestCreateOrderHandler_PersistenceFailureIsBadRequest(t *testing.T) {
	mockRepo := mocks.NewOrderRepository(t)
	mockRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(errors.New(`pq: insert or update on table "items" violates foreign key constraint`)).Once()
	handler := newOrderHandler(mockRepo)

	w := serve(handler, "POST", "/Createorders/", orderO1)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, detail(t, w), "violates foreign key constraint")
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		body     string
		wantCode int
	}{
		{name: "legal transition", id: "o1", body: `{"status":"confirmed"}`, wantCode: http.StatusOK},
		{name: "same status", id: "o1", body: `{"status":"pending"}`, wantCode: http.StatusOK},
		{name: "illegal transition", id: "o1", body: `{"status":"delivered"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "unknown status", id: "o1", body: `{"status":"lost"}`, wantCode: http.StatusBadRequest},
		{name: "empty body", id: "o1", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "missing order", id: "o9", body: `{"status":"confirmed"}`, wantCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			handler := newOrderHandler(newMemoryOrders())
			require.Equal(t, http.StatusCreated, serve(handler, "POST", "/Createorders/", orderO1).Code)

			w := serve(handler, "PUT", "/orders/"+testCase.id+"/status", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
		})
	}
}

func TestListOrdersHandler_EmptyIsArray(t *testing.T) {
	handler := newOrderHandler(newMemoryOrders())

	for _, path := range []string{"/orders", "/View_orders/nobody", "/users/nobody/orders/"} {
		w := serve(handler, "GET", path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestOrderQRCodeHandler(t *testing.T) {
	handler := newOrderHandler(newMemoryOrders())
	require.Equal(t, http.StatusCreated, serve(handler, "POST", "/Createorders/", orderO1).Code)

	w := serve(handler, "GET", "/orders/o1/qrcode", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), w.Body.Bytes()[:4])

	w = serve(handler, "GET", "/orders/missing/qrcode", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	router := httpapi.NewRouter(httpapi.NewHandler(nil, nil, nil))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"message":"Welcome to Restaurant API"}`, w.Body.String())
}
