package webserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.JSONSerializer = jsoniterSerializer{}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{query: "", page: 1, pageSize: 20},
		{query: "page=3&perPage=50", page: 3, pageSize: 50},
		{query: "page=2&pageSize=10", page: 2, pageSize: 10},
		{query: "perPage=25&pageSize=10", page: 1, pageSize: 25},
		{query: "page=-1&perPage=501", page: 1, pageSize: 20},
		{query: "page=x&perPage=y", page: 1, pageSize: 20},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := newContext("/?" + tt.query)
			page, pageSize := ParsePagination(c)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	for value, want := range map[string]int64{"1": 1, "9007199254740993": 9007199254740993} {
		c, _ := newContext("/")
		c.SetParamNames("id")
		c.SetParamValues(value)
		id, err := ParseIDParam(c, "id")
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	for _, value := range []string{"0", "-4", "abc", ""} {
		c, _ := newContext("/")
		c.SetParamNames("id")
		c.SetParamValues(value)
		_, err := ParseIDParam(c, "id")
		assert.Error(t, err, value)
	}
}

func TestEnvelope(t *testing.T) {
	c, rec := newContext("/")
	require.NoError(t, Paged(c, []int{1, 2}, 12, 2, 2))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":"OK","data":[1,2],"meta":{"total":12,"page":2,"pageSize":2}}`, rec.Body.String())

	c, rec = newContext("/")
	require.NoError(t, Fail(c, http.StatusConflict, "CART_EMPTY", "Your cart is empty", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"code":"CART_EMPTY","message":"Your cart is empty"}`, rec.Body.String())
}

func TestFailValidation(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	err := validator.New().Struct(&payload{})
	require.Error(t, err)

	c, rec := newContext("/")
	require.NoError(t, FailValidation(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"Name":"required"`), rec.Body.String())
}
