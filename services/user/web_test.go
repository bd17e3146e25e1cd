package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storeapi/lib/myevents"
	"github.com/MarcGrol/storeapi/lib/myhasher"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mypubsub"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/mytoken"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

func TestUserService(t *testing.T) {

	t.Run("Register", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, hasher, tokener, nower, uuider, publisher := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("user_1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		hasher.EXPECT().Hash("secret123").Return("$hashed$", nil)
		publisher.EXPECT().Publish(gomock.Any(), "user", gomock.Any()).Return(nil)
		tokener.EXPECT().Issue("user_1").Return("my-token", nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"name":"Eva","email":"Eva@Example.com","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": true`)
		assert.Contains(t, got, `"token": "my-token"`)

		user, exists, _ := storer.Get(ctx, "user_1")
		assert.True(t, exists)
		assert.Equal(t, "eva@example.com", user.Email)
		assert.Equal(t, "$hashed$", user.PasswordHash)
		assert.Empty(t, user.Cart)
	})

	t.Run("Register with invalid email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"name":"Eva","email":"not-an-email","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": false`)
		assert.Contains(t, got, "Please enter a valid email")
	})

	t.Run("Register with weak password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"name":"Eva","email":"eva@example.com","password":"short"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), "Please enter a strong password")
	})

	t.Run("Register with existing email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, hasher, tokener, nower, uuider, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "user_1", existingUser())
		uuider.EXPECT().Create().Return("user_2")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		hasher.EXPECT().Hash("secret123").Return("$hashed$", nil)
		tokener.EXPECT().Issue("user_2").Return("unused-token", nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"name":"Other","email":"eva@example.com","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 409, response.Code)
		assert.Contains(t, response.Body.String(), "User already exists")

		_, exists, _ := storer.Get(ctx, "user_2")
		assert.False(t, exists)
	})

	t.Run("Register with failing token signer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, hasher, tokener, nower, uuider, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("user_1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		hasher.EXPECT().Hash("secret123").Return("$hashed$", nil)
		tokener.EXPECT().Issue("user_1").Return("", fmt.Errorf("signer unavailable"))

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`{"name":"Eva","email":"eva@example.com","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: no account is left behind, so a retry can still succeed
		assert.Equal(t, 500, response.Code)
		_, exists, _ := storer.Get(ctx, "user_1")
		assert.False(t, exists)
	})

	t.Run("Register via form post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, hasher, tokener, nower, uuider, publisher := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("user_1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		hasher.EXPECT().Hash("secret123").Return("$hashed$", nil)
		publisher.EXPECT().Publish(gomock.Any(), "user", gomock.Any()).Return(nil)
		tokener.EXPECT().Issue("user_1").Return("my-token", nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/register",
			strings.NewReader(`name=Eva&email=eva@example.com&password=secret123`))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"token": "my-token"`)
	})

	t.Run("Login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, hasher, tokener, _, _, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "user_1", existingUser())
		hasher.EXPECT().Verify("$hashed$", "secret123").Return(true)
		tokener.EXPECT().Issue("user_1").Return("my-token", nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/login",
			strings.NewReader(`{"email":"eva@example.com","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": true`)
		assert.Contains(t, got, `"token": "my-token"`)
	})

	t.Run("Login with unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/login",
			strings.NewReader(`{"email":"nobody@example.com","password":"secret123"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "User doesn't exist")
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, hasher, _, _, _, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "user_1", existingUser())
		hasher.EXPECT().Verify("$hashed$", "wrong-password").Return(false)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/login",
			strings.NewReader(`{"email":"eva@example.com","password":"wrong-password"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 401, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"success": false`)
		assert.Contains(t, got, "Invalid credentials")
	})

	t.Run("Fetch profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, _, _, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "user_1", existingUser())

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/profile",
			strings.NewReader(`{"userId":"user_1"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, `"name": "Eva"`)
		assert.Contains(t, got, `"email": "eva@example.com"`)
		// the password hash must never leave the service
		assert.NotContains(t, got, "$hashed$")
	})

	t.Run("Process order-placed event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, _, nower, _, _ := setup(t, ctrl)

		// given
		storer.Put(ctx, "user_1", existingUser())
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when: pubsub pushes an order.placed envelope to the webhook
		request, err := http.NewRequest(http.MethodPost, "/api/user/event",
			strings.NewReader(orderPlacedPushRequest(t)))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully processed event")

		user, _, _ := storer.Get(ctx, "user_1")
		assert.NotNil(t, user.LastOrderAt)
		assert.Equal(t, mytime.ExampleTime, *user.LastOrderAt)
	})

	t.Run("Fetch profile of unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/user/profile",
			strings.NewReader(`{"userId":"user_42"}`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "User not found")
	})
}

func orderPlacedPushRequest(t *testing.T) string {
	envelope, err := json.Marshal(myevents.EventEnvelope{
		UID:           "event_1",
		Topic:         "order",
		AggregateUID:  "order_1",
		EventTypeName: "order.placed",
		EventPayload:  `{"OrderUID":"order_1","UserUID":"user_1","TotalPrice":21000}`,
	})
	assert.NoError(t, err)

	pushRequest, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: envelope,
			ID:   "push_1",
		},
		Subscription: "order",
	})
	assert.NoError(t, err)

	return string(pushRequest)
}

func existingUser() shopmodel.User {
	return shopmodel.User{
		UID:          "user_1",
		Name:         "Eva",
		Email:        "eva@example.com",
		PasswordHash: "$hashed$",
		Cart:         []shopmodel.LineItem{},
		CreatedAt:    mytime.ExampleTime,
	}
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[shopmodel.User], *myhasher.MockHasher, *mytoken.MockIssuer, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.New[shopmodel.User](c)
	hasher := myhasher.NewMockHasher(ctrl)
	tokener := mytoken.NewMockIssuer(ctrl)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	subscriber := mypubsub.NewMockPubSub(ctrl)

	publisher.EXPECT().CreateTopic(gomock.Any(), "user").Return(nil)
	subscriber.EXPECT().CreateTopic(gomock.Any(), "order").Return(nil)
	subscriber.EXPECT().Subscribe(gomock.Any(), "order", gomock.Any()).Return(nil)

	sut := NewService(storer, hasher, tokener, nower, uuider, publisher, subscriber)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, hasher, tokener, nower, uuider, publisher
}
