package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/cart/repository"
	"github.com/fekuna/omnipos-register-service/internal/cart/usecase"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() { gin.SetMode(gin.TestMode) }

// newRouter signs every request in as user when it is non-nil.
func newRouter(t *testing.T, user *auth.UserContext) *gin.Engine {
	t.Helper()
	s := store.New(memory.New(), logger.NewNop(), store.Options{SeedDemoData: true, PINHashCost: bcrypt.MinCost})
	require.NoError(t, s.Load(context.Background()))

	uc := usecase.NewCartUseCase(repository.NewStoreRepository(s), cart.NewRegistry(), nil, logger.NewNop())
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), *user))
			c.Next()
		})
	}
	NewCartHandler(uc, logger.NewNop()).Register(&r.RouterGroup)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Items []struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
		Qty          int    `json:"qty"`
		LineTotal    string `json:"line_total"`
		LineDiscount string `json:"line_discount"`
	} `json:"items"`
	GlobalDiscount string `json:"global_discount_percent"`
	Totals         struct {
		Subtotal       string `json:"subtotal"`
		ItemDiscounts  string `json:"item_discounts"`
		GlobalDiscount string `json:"global_discount"`
		TotalDiscount  string `json:"total_discount"`
		TaxAmount      string `json:"tax_amount"`
		ServiceCharge  string `json:"service_charge"`
		GrandTotal     string `json:"grand_total"`
		ItemCount      int    `json:"item_count"`
	} `json:"totals"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestCartRoundTrip(t *testing.T) {
	r := newRouter(t, &auth.UserContext{UserID: "3", Name: "Kasir Dewi", Role: model.RoleCashier})

	body := decode(t, serve(r, http.MethodPost, "/cart/items", `{"product_id":"p1"}`))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "p1", body.Items[0].Product.ID)

	body = decode(t, serve(r, http.MethodPut, "/cart/items/p1", `{"qty":3}`))
	assert.Equal(t, 3, body.Items[0].Qty)
	assert.Equal(t, "54000", body.Items[0].LineTotal)

	body = decode(t, serve(r, http.MethodPut, "/cart/items/p1/discount", `{"discount_type":"percent","discount_value":"7.5"}`))
	assert.Equal(t, "4050", body.Items[0].LineDiscount)

	body = decode(t, serve(r, http.MethodPut, "/cart/discount", `{"percent":"3"}`))
	assert.Equal(t, "3", body.GlobalDiscount)
	assert.Equal(t, "54000", body.Totals.Subtotal)
	assert.Equal(t, "4050", body.Totals.ItemDiscounts)
	assert.Equal(t, "1499", body.Totals.GlobalDiscount, "1498.5")
	assert.Equal(t, "5549", body.Totals.TotalDiscount)
	assert.Equal(t, "5330", body.Totals.TaxAmount, "5329.665")
	assert.Equal(t, "2423", body.Totals.ServiceCharge, "2422.575")
	assert.Equal(t, "56204", body.Totals.GrandTotal)
	assert.Equal(t, 3, body.Totals.ItemCount)

	body = decode(t, serve(r, http.MethodGet, "/cart", ""))
	assert.Equal(t, "56204", body.Totals.GrandTotal)

	body = decode(t, serve(r, http.MethodDelete, "/cart", ""))
	assert.Empty(t, body.Items)
	assert.Equal(t, "0", body.Totals.GrandTotal)
	assert.Equal(t, "0", body.GlobalDiscount)
}

func TestCartErrors(t *testing.T) {
	r := newRouter(t, &auth.UserContext{UserID: "3", Name: "Kasir Dewi", Role: model.RoleCashier})

	w := serve(r, http.MethodPost, "/cart/items", `{"product_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))

	w = serve(r, http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/cart/items", `{"product_id":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodPut, "/cart/items/p1", `{"qty":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "item not in cart")
}

func TestCartRequiresUser(t *testing.T) {
	r := newRouter(t, nil)

	w := serve(r, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", errorCode(t, w))

	w = serve(r, http.MethodPost, "/cart/items", `{"product_id":"p1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
