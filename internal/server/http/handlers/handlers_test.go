package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
	"github.com/polkiloo/marketplace/internal/test/facade"
	"github.com/polkiloo/marketplace/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
		c.Set(middleware.UserRoleContextKey, string(model.RoleUser))
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func validRegisterBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: "+4915111111111", Gender: "female", Address: "Somewhere 1",
		Password: testhelpers.RandomASCIIString(8, 12),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func TestAuthHandlerRegister(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/register", "/register",
		NewAuthHandler(facade.AuthFacadeStub{}).Register, nil, validRegisterBody(t))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	var result dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Token != "token" || result.User.Email != "jane@example.com" {
		t.Fatalf("unexpected response: %+v", result)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		stub   facade.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name:   "missing fields",
			body:   []byte(`{"email":"a@b.c"}`),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			stub: facade.AuthFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
				return nil, "", domainErrors.ErrAlreadyExists
			}},
			body:   nil,
			status: http.StatusConflict,
		},
		{
			name: "internal error",
			stub: facade.AuthFacadeStub{RegisterFn: func(context.Context, usecase.RegisterInput) (*model.User, string, error) {
				return nil, "", errors.New("boom")
			}},
			body:   nil,
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.body
			if body == nil {
				body = validRegisterBody(t)
			}
			resp := performRequest(t, http.MethodPost, "/register", "/register",
				NewAuthHandler(tc.stub).Register, nil, body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	resp := performRequest(t, http.MethodPost, "/login", "/login",
		NewAuthHandler(facade.AuthFacadeStub{}).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	badCreds := facade.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login",
		NewAuthHandler(badCreds).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func validOrderBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.PlaceOrderRequest{
		ProductID: 3,
		Quantity:  2,
		Delivery: dto.DeliveryPayload{
			Name: "Jane Doe", Email: "jane@example.com", Phone: "+4915111111111",
			Address: "Somewhere 1", City: "Berlin", PostalCode: "10115",
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func TestOrderHandlerPlace(t *testing.T) {
	stub := facade.OrderFacadeStub{PlaceFn: func(ctx context.Context, in usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error) {
		if in.BuyerID != 9 || in.ProductID != 3 || in.Quantity != 2 {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &usecase.PlaceOrderResult{
			Order: &model.Order{
				ID: 1, ProductID: 3, BuyerID: 9, SellerID: 7, Quantity: 2,
				Price: 39.98, CommissionRate: 0.05, CommissionAmount: 2.00, TotalAmount: 41.98,
			},
			Product:        &model.Product{ID: 3, Quantity: 3, Status: model.ProductStatusApproved},
			CommissionRate: 0.05,
		}, nil
	}}

	resp := performRequest(t, http.MethodPost, "/orders", "/orders",
		NewOrderHandler(stub).Place, asUser(9), validOrderBody(t))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var result dto.PlaceOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Order.TotalAmount != 41.98 || result.CommissionRate != 0.05 {
		t.Fatalf("unexpected response: %+v", result)
	}
	if result.Product.Quantity != 3 {
		t.Fatalf("unexpected product snapshot: %+v", result.Product)
	}
}

func TestOrderHandlerPlaceFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"product unavailable", domainErrors.ErrProductUnavailable, http.StatusNotFound},
		{"self purchase", domainErrors.ErrSelfPurchase, http.StatusBadRequest},
		{"insufficient quantity", domainErrors.InsufficientQuantityError{Available: 2}, http.StatusBadRequest},
		{"reservation lost", domainErrors.ErrReservationLost, http.StatusConflict},
		{"invalid quantity", domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := facade.OrderFacadeStub{PlaceFn: func(context.Context, usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/orders", "/orders",
				NewOrderHandler(stub).Place, asUser(9), validOrderBody(t))
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		resp := performRequest(t, http.MethodPost, "/orders", "/orders",
			NewOrderHandler(facade.OrderFacadeStub{}).Place, asUser(9), []byte(`{"productId":3}`))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})

	t.Run("insufficient quantity message", func(t *testing.T) {
		stub := facade.OrderFacadeStub{PlaceFn: func(context.Context, usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error) {
			return nil, domainErrors.InsufficientQuantityError{Available: 2}
		}}
		resp := performRequest(t, http.MethodPost, "/orders", "/orders",
			NewOrderHandler(stub).Place, asUser(9), validOrderBody(t))
		var body map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["error"] != "only 2 units available" {
			t.Fatalf("unexpected error message: %q", body["error"])
		}
	})
}

func TestOrderHandlerHistory(t *testing.T) {
	handler := NewOrderHandler(facade.OrderFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/orders/purchases", "/orders/purchases", handler.Purchases, asUser(9), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/sales", "/orders/sales", handler.Sales, asUser(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	failing := NewOrderHandler(facade.OrderFacadeStub{PurchasesFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, errors.New("boom")
	}})
	resp = performRequest(t, http.MethodGet, "/orders/purchases", "/orders/purchases", failing.Purchases, asUser(9), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	body, _ := json.Marshal(dto.CreateProductRequest{
		Title: "Vintage Lamp", Category: "home", Condition: "good",
		Price: 19.99, Quantity: 5, Location: "Berlin", Description: "A lamp",
		Status: "pending",
	})

	stub := facade.ProductFacadeStub{CreateFn: func(ctx context.Context, sellerID int64, in usecase.CreateProductInput) (*model.Product, error) {
		if sellerID != 7 || in.Status != model.ProductStatusPending {
			t.Fatalf("unexpected input: seller=%d %+v", sellerID, in)
		}
		return &model.Product{ID: 1, SellerID: sellerID, Title: in.Title, Status: in.Status}, nil
	}}

	resp := performRequest(t, http.MethodPost, "/products", "/products",
		NewProductHandler(stub).Create, asUser(7), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	t.Run("invalid status rejected by binding", func(t *testing.T) {
		bad, _ := json.Marshal(map[string]any{
			"title": "x", "category": "home", "condition": "good",
			"quantity": 1, "location": "Berlin", "description": "y",
			"status": "approved",
		})
		resp := performRequest(t, http.MethodPost, "/products", "/products",
			NewProductHandler(facade.ProductFacadeStub{}).Create, asUser(7), bad)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})
}

func TestProductHandlerGet(t *testing.T) {
	t.Run("approved visible", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/products/:id", "/products/3",
			NewProductHandler(facade.ProductFacadeStub{}).Get, nil, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("pending hidden", func(t *testing.T) {
		stub := facade.ProductFacadeStub{GetFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return &model.Product{ID: id, Status: model.ProductStatusPending}, nil
		}}
		resp := performRequest(t, http.MethodGet, "/products/:id", "/products/3",
			NewProductHandler(stub).Get, nil, nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})

	t.Run("missing", func(t *testing.T) {
		stub := facade.ProductFacadeStub{GetFn: func(context.Context, int64) (*model.Product, error) {
			return nil, domainErrors.ErrNotFound
		}}
		resp := performRequest(t, http.MethodGet, "/products/:id", "/products/3",
			NewProductHandler(stub).Get, nil, nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/products/:id", "/products/abc",
			NewProductHandler(facade.ProductFacadeStub{}).Get, nil, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})
}

func TestWishlistHandler(t *testing.T) {
	handler := NewWishlistHandler(facade.WishlistFacadeStub{})

	t.Run("add new", func(t *testing.T) {
		resp := performRequest(t, http.MethodPost, "/wishlist/:productId", "/wishlist/3", handler.Add, asUser(9), nil)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.Code)
		}
	})

	t.Run("add existing", func(t *testing.T) {
		existing := NewWishlistHandler(facade.WishlistFacadeStub{AddFn: func(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
			return &model.WishlistItem{ID: 1, UserID: userID, ProductID: productID}, false, nil
		}})
		resp := performRequest(t, http.MethodPost, "/wishlist/:productId", "/wishlist/3", existing.Add, asUser(9), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("add unavailable product", func(t *testing.T) {
		missing := NewWishlistHandler(facade.WishlistFacadeStub{AddFn: func(context.Context, int64, int64) (*model.WishlistItem, bool, error) {
			return nil, false, domainErrors.ErrNotFound
		}})
		resp := performRequest(t, http.MethodPost, "/wishlist/:productId", "/wishlist/3", missing.Add, asUser(9), nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})

	t.Run("remove", func(t *testing.T) {
		resp := performRequest(t, http.MethodDelete, "/wishlist/:productId", "/wishlist/3", handler.Remove, asUser(9), nil)
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/wishlist", "/wishlist", handler.List, asUser(9), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})
}

func TestUserHandler(t *testing.T) {
	handler := NewUserHandler(facade.UserFacadeStub{})

	t.Run("me", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/users/me", "/users/me", handler.Me, asUser(9), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		body, _ := json.Marshal(dto.UpdateProfileRequest{FirstName: ptr("Janet")})
		resp := performRequest(t, http.MethodPatch, "/users/me", "/users/me", handler.UpdateMe, asUser(9), body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("empty update", func(t *testing.T) {
		resp := performRequest(t, http.MethodPatch, "/users/me", "/users/me", handler.UpdateMe, asUser(9), []byte(`{}`))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})

	t.Run("notifications", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/users/notifications", "/users/notifications", handler.Notifications, asUser(9), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})
}

func ptr(s string) *string { return &s }

func TestAdminHandlerModeration(t *testing.T) {
	handler := NewAdminHandler(facade.AdminFacadeStub{}, facade.ProductFacadeStub{})

	t.Run("listings", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/admin/listings", "/admin/listings?status=pending", handler.Listings, asUser(1), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("approve", func(t *testing.T) {
		resp := performRequest(t, http.MethodPatch, "/admin/listings/:id/approve", "/admin/listings/3/approve", handler.Approve, asUser(1), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
		var product dto.ProductResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &product); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if product.Status != string(model.ProductStatusApproved) {
			t.Fatalf("unexpected status: %q", product.Status)
		}
	})

	t.Run("reject unknown id", func(t *testing.T) {
		failing := NewAdminHandler(facade.AdminFacadeStub{RejectFn: func(context.Context, int64) (*model.Product, error) {
			return nil, domainErrors.ErrNotFound
		}}, facade.ProductFacadeStub{})
		resp := performRequest(t, http.MethodPatch, "/admin/listings/:id/reject", "/admin/listings/99/reject", failing.Reject, asUser(1), nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})

	t.Run("notifications", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/admin/notifications", "/admin/notifications", handler.Notifications, asUser(1), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})
}

func TestAdminHandlerCommission(t *testing.T) {
	handler := NewAdminHandler(facade.AdminFacadeStub{RateVal: 0.07}, facade.ProductFacadeStub{})

	t.Run("get", func(t *testing.T) {
		resp := performRequest(t, http.MethodGet, "/admin/commission", "/admin/commission", handler.Commission, asUser(1), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
		var result dto.CommissionResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if result.Rate != 0.07 {
			t.Fatalf("unexpected rate: %v", result.Rate)
		}
	})

	t.Run("update", func(t *testing.T) {
		body, _ := json.Marshal(dto.UpdateCommissionRequest{Rate: 7})
		resp := performRequest(t, http.MethodPut, "/admin/commission", "/admin/commission", handler.UpdateCommission, asUser(1), body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("invalid rate", func(t *testing.T) {
		failing := NewAdminHandler(facade.AdminFacadeStub{UpdateRateFn: func(context.Context, float64, int64) (float64, error) {
			return 0, domainErrors.ErrInvalidRate
		}}, facade.ProductFacadeStub{})
		body, _ := json.Marshal(dto.UpdateCommissionRequest{Rate: 150})
		resp := performRequest(t, http.MethodPut, "/admin/commission", "/admin/commission", failing.UpdateCommission, asUser(1), body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})
}
