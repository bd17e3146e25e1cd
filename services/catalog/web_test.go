package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storeapi/lib/mycache"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

var (
	racket = shopmodel.Product{
		UID:     "product_tennis_racket",
		Name:    "Tennis racket",
		Price:   10000,
		InStock: true,
	}
	balls = shopmodel.Product{
		UID:     "product_tennis_balls",
		Name:    "Tennis balls",
		Price:   1000,
		InStock: true,
	}
)

func TestCatalogService(t *testing.T) {

	t.Run("List products", func(t *testing.T) {
		// setup
		ctx, router, storer := setup(t)

		// given
		storer.Put(ctx, racket.UID, racket)
		storer.Put(ctx, balls.UID, balls)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/product/all", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)

		got := struct {
			Success bool                `json:"success"`
			Data    []shopmodel.Product `json:"data"`
		}{}
		err = json.Unmarshal(response.Body.Bytes(), &got)
		assert.NoError(t, err)
		assert.True(t, got.Success)
		// sorted by name
		assert.Equal(t, []shopmodel.Product{balls, racket}, got.Data)
	})

	t.Run("Fetch product", func(t *testing.T) {
		// setup
		ctx, router, storer := setup(t)

		// given
		storer.Put(ctx, racket.UID, racket)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/product/product_tennis_racket", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": true`)
		assert.Contains(t, got, `"name": "Tennis racket"`)
		assert.Contains(t, got, `"price": 10000`)
	})

	t.Run("Fetch unknown product", func(t *testing.T) {
		// setup
		_, router, _ := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/product/product_nonexistent", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": false`)
		assert.Contains(t, got, "Product not found")
	})

	t.Run("Seed when empty", func(t *testing.T) {
		// setup
		ctx, _, storer := setup(t)

		sut := NewService(storer, nopCache(t))
		err := sut.SeedWhenEmpty(ctx)
		assert.NoError(t, err)

		all, err := storer.List(ctx)
		assert.NoError(t, err)
		assert.NotEmpty(t, all)

		// a second seed must not duplicate or overwrite
		err = sut.SeedWhenEmpty(ctx)
		assert.NoError(t, err)

		again, err := storer.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, len(all), len(again))
	})
}

func setup(t *testing.T) (context.Context, *mux.Router, mystore.Store[shopmodel.Product]) {
	c := context.TODO()
	storer, _, _ := mystore.New[shopmodel.Product](c)

	sut := NewService(storer, nopCache(t))
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, storer
}

func nopCache(t *testing.T) mycache.Cache[shopmodel.Product] {
	cache, _, err := mycache.New[shopmodel.Product](context.TODO())
	assert.NoError(t, err)
	return cache
}
