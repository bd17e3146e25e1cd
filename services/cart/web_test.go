package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

func TestCartService(t *testing.T) {

	t.Run("Add product to cart", func(t *testing.T) {
		// setup
		ctx, router, userStore, _ := setup(t)

		// when
		response := doCartRequest(t, router, "/api/cart/add", "user_1", "product_tennis_racket")

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": true`)
		assert.Contains(t, got, "Added to cart")

		user, _, _ := userStore.Get(ctx, "user_1")
		assert.Equal(t, []shopmodel.LineItem{{ProductUID: "product_tennis_racket", Quantity: 1}}, user.Cart)
	})

	t.Run("Add same product twice bumps quantity", func(t *testing.T) {
		// setup
		ctx, router, userStore, _ := setup(t)

		// when
		doCartRequest(t, router, "/api/cart/add", "user_1", "product_tennis_racket")
		response := doCartRequest(t, router, "/api/cart/add", "user_1", "product_tennis_racket")

		// then
		assert.Equal(t, 200, response.Code)

		user, _, _ := userStore.Get(ctx, "user_1")
		assert.Equal(t, []shopmodel.LineItem{{ProductUID: "product_tennis_racket", Quantity: 2}}, user.Cart)
	})

	t.Run("Add unknown product", func(t *testing.T) {
		// setup
		ctx, router, userStore, _ := setup(t)

		// when
		response := doCartRequest(t, router, "/api/cart/add", "user_1", "product_nonexistent")

		// then
		assert.Equal(t, 404, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": false`)
		assert.Contains(t, got, "Product not found")

		user, _, _ := userStore.Get(ctx, "user_1")
		assert.Empty(t, user.Cart)
	})

	t.Run("Add for unknown user", func(t *testing.T) {
		// setup
		_, router, _, _ := setup(t)

		// when
		response := doCartRequest(t, router, "/api/cart/add", "user_42", "product_tennis_racket")

		// then
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "User not found")
	})

	t.Run("Remove product from cart", func(t *testing.T) {
		// setup
		ctx, router, userStore, _ := setup(t)
		doCartRequest(t, router, "/api/cart/add", "user_1", "product_tennis_racket")

		// when
		response := doCartRequest(t, router, "/api/cart/remove", "user_1", "product_tennis_racket")

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": true`)
		assert.Contains(t, got, "Removed from cart")

		user, _, _ := userStore.Get(ctx, "user_1")
		assert.Empty(t, user.Cart)
	})

	t.Run("Remove product that is not in cart", func(t *testing.T) {
		// setup
		_, router, _, _ := setup(t)

		// when
		response := doCartRequest(t, router, "/api/cart/remove", "user_1", "product_tennis_racket")

		// then: removing an absent product is not an error
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Removed from cart")
	})

	t.Run("Concurrent adds do not lose updates", func(t *testing.T) {
		// setup
		ctx, router, userStore, _ := setup(t)

		// when
		const n = 20
		wg := sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				response := doCartRequest(t, router, "/api/cart/add", "user_1", "product_tennis_racket")
				assert.Equal(t, 200, response.Code)
			}()
		}
		wg.Wait()

		// then
		user, _, _ := userStore.Get(ctx, "user_1")
		assert.Equal(t, []shopmodel.LineItem{{ProductUID: "product_tennis_racket", Quantity: n}}, user.Cart)
	})
}

func doCartRequest(t *testing.T, router *mux.Router, path string, userUID string, productUID string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodPost, path,
		strings.NewReader(`{"userId":"`+userUID+`","productId":"`+productUID+`"}`))
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T) (context.Context, *mux.Router, mystore.Store[shopmodel.User], mystore.Store[shopmodel.Product]) {
	c := context.TODO()
	userStore, _, _ := mystore.New[shopmodel.User](c)
	productStore, _, _ := mystore.New[shopmodel.Product](c)

	userStore.Put(c, "user_1", shopmodel.User{
		UID:       "user_1",
		Name:      "Eva",
		Email:     "eva@example.com",
		Cart:      []shopmodel.LineItem{},
		CreatedAt: mytime.ExampleTime,
	})
	productStore.Put(c, "product_tennis_racket", shopmodel.Product{
		UID:     "product_tennis_racket",
		Name:    "Tennis racket",
		Price:   10000,
		InStock: true,
	})

	sut := NewService(userStore, productStore)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, userStore, productStore
}
