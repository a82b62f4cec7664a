package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(t *testing.T, lang string, err error) (*httptest.ResponseRecorder, map[string]map[string]string) {
	t.Helper()
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Error(c, logger.NewNop(), err) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Accept-Language", lang)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.ErrInsufficientPayment, http.StatusBadRequest, "insufficient_payment"},
		{apperror.ErrProductNotFound.WithDetail("p99"), http.StatusNotFound, "product_not_found"},
		{apperror.ErrCategoryInUse, http.StatusConflict, "category_in_use"},
		{apperror.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{apperror.ErrForbidden, http.StatusForbidden, "forbidden"},
		{errors.New("db exploded"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w, body := serve(t, "en", tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body["error"]["code"])
		})
	}
}

func TestError_Localized(t *testing.T) {
	_, body := serve(t, "id", apperror.ErrCartEmpty)
	assert.Equal(t, "Keranjang kosong", body["error"]["message"])

	_, body = serve(t, "id", errors.New("secret internals"))
	assert.NotContains(t, body["error"]["message"], "secret")
}
