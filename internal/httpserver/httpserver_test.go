package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

// stubStore satisfies blobstore.Store without a bucket.
type stubStore struct{}

func (stubStore) SignedURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://signed.example/" + key, nil
}

func (stubStore) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "products/" + name, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *repo.GormRepo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	rp := &repo.GormRepo{DB: db}
	store := stubStore{}

	authSvc := &service.AuthService{Repo: rp, JWTSecret: testJWTSecret}

	e := echo.New()
	Register(e, &Deps{
		Auth:      &AuthHTTP{Svc: authSvc},
		Catalog:   &CatalogHTTP{Svc: &service.CatalogService{Repo: rp, Store: store}},
		Cart:      &CartHTTP{Svc: &service.CartService{Repo: rp, Store: store}},
		Order:     &OrderHTTP{Svc: &service.OrderService{Repo: rp, Store: store}},
		Rating:    &RatingHTTP{Svc: &service.RatingService{Repo: rp}},
		Profile:   &ProfileHTTP{Svc: authSvc},
		JWTSecret: testJWTSecret,
	})
	return e, rp
}

func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "tester", "email": email, "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "secret", "role": "user",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// Missing token is 401, a token that fails verification is 400.
func TestRequireAuth_StatusSplit(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth_BearerPrefixOptional(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "bearer@example.com")

	rec := doJSON(e, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/cart", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, _ := newTestServer(t)

	body := map[string]string{"name": "dup", "email": "dup@example.com", "password": "secret"}

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_AdminGateStatuses(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "plain", "email": "plain@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "plain@example.com", "password": "secret", "role": "admin",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "secret", "role": "user",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	e, rp := newTestServer(t)
	token := registerAndLogin(t, e, "cart@example.com")

	product := models.Product{Title: "oats", NewPrice: "49", Img: "products/oats.png"}
	require.NoError(t, rp.CreateProduct(context.Background(), &product))

	rec := doJSON(e, http.MethodPost, "/cart", token, map[string]any{
		"productId": product.ID.String(), "quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Cart struct {
			Products []struct {
				Quantity uint `json:"quantity"`
				Product  *struct {
					Img *string `json:"img"`
				} `json:"product"`
			} `json:"products"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Products, 1)
	assert.Equal(t, uint(2), resp.Cart.Products[0].Quantity)
	require.NotNil(t, resp.Cart.Products[0].Product)
	require.NotNil(t, resp.Cart.Products[0].Product.Img)
	assert.Equal(t, "https://signed.example/products/oats.png", *resp.Cart.Products[0].Product.Img)

	rec = doJSON(e, http.MethodDelete, "/cart/"+product.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderFlow(t *testing.T) {
	e, rp := newTestServer(t)
	token := registerAndLogin(t, e, "order@example.com")

	// an empty cart cannot be placed
	rec := doJSON(e, http.MethodPost, "/order", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	product := models.Product{Title: "rice", NewPrice: "99"}
	require.NoError(t, rp.CreateProduct(context.Background(), &product))

	rec = doJSON(e, http.MethodPost, "/cart", token, map[string]any{
		"productId": product.ID.String(), "quantity": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/order", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed struct {
		Order struct {
			ID          string `json:"id"`
			OrderStatus string `json:"orderStatus"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, "open", placed.Order.OrderStatus)

	rec = doJSON(e, http.MethodPatch, "/order/"+placed.Order.ID+"/place", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, "placed", placed.Order.OrderStatus)
}

func TestGetRatings_PublicAndLenient(t *testing.T) {
	e, _ := newTestServer(t)

	// no auth, garbage id, still a zero aggregate
	rec := doJSON(e, http.MethodGet, "/products/not-a-uuid/ratings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var agg struct {
		Ratings       []json.RawMessage `json:"ratings"`
		AverageRating float64           `json:"averageRating"`
		TotalRatings  int               `json:"totalRatings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agg))
	assert.Empty(t, agg.Ratings)
	assert.Zero(t, agg.AverageRating)
	assert.Zero(t, agg.TotalRatings)
}

func TestRateProduct(t *testing.T) {
	e, rp := newTestServer(t)
	token := registerAndLogin(t, e, "rater@example.com")

	product := models.Product{Title: "jam", NewPrice: "30"}
	require.NoError(t, rp.CreateProduct(context.Background(), &product))

	rec := doJSON(e, http.MethodPost, "/products/"+product.ID.String()+"/rate", token, map[string]any{
		"rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/products/"+product.ID.String()+"/rate", token, map[string]any{
		"rating": 4, "review": "good",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var agg struct {
		AverageRating float64 `json:"averageRating"`
		TotalRatings  int     `json:"totalRatings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agg))
	assert.Equal(t, 4.0, agg.AverageRating)
	assert.Equal(t, 1, agg.TotalRatings)
}

func TestProfile(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerAndLogin(t, e, "profile@example.com")

	rec := doJSON(e, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "profile@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")
}
