package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Dishes  service.DishServiceInterface
	Ratings service.RatingServiceInterface
	Orders  service.OrderServiceInterface
}

func NewHandler(dishSvc service.DishServiceInterface, ratingSvc service.RatingServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Dishes:  dishSvc,
		Ratings: ratingSvc,
		Orders:  orderSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.welcome).Methods("GET")
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/dishes/", h.getDishes).Methods("GET")
	r.HandleFunc("/dishes/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/create/", h.createDish).Methods("POST")
	r.HandleFunc("/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/dishes/{id}", h.deleteDish).Methods("DELETE")
	r.HandleFunc("/dishes/{id}/rate", h.rateDish).Methods("POST")
	r.HandleFunc("/dishes/{id}/ratings", h.getDishRatings).Methods("GET")

	r.HandleFunc("/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/View_orders/{userId}", h.getUserOrders).Methods("GET")
	r.HandleFunc("/users/{userId}/orders/", h.getUserOrders).Methods("GET")
	r.HandleFunc("/Createorders/", h.createOrder).Methods("POST")
	r.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Welcome to Restaurant API")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// dishID parses the path id into the range of the INTEGER key column.
func dishID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("dish id %q is not a 32-bit integer: %w", raw, domain.ErrInvalidArgument)
	}
	return int(id), nil
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.Dishes.List(r.Context())
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	response := make([]dishResponse, 0, len(dishes))
	for _, dish := range dishes {
		response = append(response, newDishResponse(dish))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	id, err := dishID(r)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	dish, err := h.Dishes.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeJSON(w, http.StatusOK, newDishResponse(*dish))
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var req createDishRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, "Dish")
		return
	}
	dish := domain.Dish{ID: req.ID, Name: req.Name, Price: req.Price, Description: req.Description}
	if err := h.Dishes.Create(r.Context(), &dish); err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeJSON(w, http.StatusOK, newDishResponse(dish))
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	id, err := dishID(r)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	var req updateDishRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, "Dish")
		return
	}
	dish := domain.Dish{ID: id, Name: req.Name, Price: req.Price, Description: req.Description}
	if err := h.Dishes.Update(r.Context(), &dish); err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeJSON(w, http.StatusOK, newDishResponse(dish))
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := dishID(r)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	if err := h.Dishes.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeMessage(w, http.StatusOK, "Dish deleted successfully")
}

func (h *Handler) rateDish(w http.ResponseWriter, r *http.Request) {
	id, err := dishID(r)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	var req rateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, "Dish")
		return
	}
	summary, err := h.Ratings.Submit(r.Context(), id, req.UserID, req.Rating)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getDishRatings(w http.ResponseWriter, r *http.Request) {
	id, err := dishID(r)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	ratings, err := h.Ratings.List(r.Context(), id)
	if err != nil {
		writeError(w, err, "Dish")
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, err, "Order")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err, "Order")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, "Order")
		return
	}
	id, err := h.Orders.Create(r.Context(), req.order())
	if err != nil {
		writeError(w, err, "Order")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Order created successfully",
		"order_id": id,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, "Order")
		return
	}
	if err := h.Orders.SetStatus(r.Context(), mux.Vars(r)["id"], req.Status); err != nil {
		writeError(w, err, "Order")
		return
	}
	writeMessage(w, http.StatusOK, "Order status updated successfully")
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Order")
		return
	}
	writeMessage(w, http.StatusOK, "Order deleted successfully")
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Order")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}
