package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storeapi/lib/mycache"
	"github.com/MarcGrol/storeapi/lib/myhasher"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mypubsub"
	"github.com/MarcGrol/storeapi/lib/myqueue"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/mytoken"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/lib/myvault"
	"github.com/MarcGrol/storeapi/services/cart"
	"github.com/MarcGrol/storeapi/services/catalog"
	"github.com/MarcGrol/storeapi/services/order"
	"github.com/MarcGrol/storeapi/services/shopmodel"
	"github.com/MarcGrol/storeapi/services/user"
)

func main() {
	c := context.Background()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	hasher := myhasher.NewBcryptHasher()

	router := mux.NewRouter()

	userStore, userStoreCleanup, err := mystore.New[shopmodel.User](c)
	if err != nil {
		log.Fatalf("Error creating user store: %s", err)
	}
	defer userStoreCleanup()

	productStore, productStoreCleanup, err := mystore.New[shopmodel.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	orderStore, orderStoreCleanup, err := mystore.New[shopmodel.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}
	defer orderStoreCleanup()

	productCache, productCacheCleanup, err := mycache.New[shopmodel.Product](c)
	if err != nil {
		log.Fatalf("Error creating product cache: %s", err)
	}
	defer productCacheCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating event publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	tokenSigningSecret, vaultCleanup, err := fetchTokenSigningSecret(c)
	if err != nil {
		log.Fatalf("Error fetching token signing secret: %s", err)
	}
	defer vaultCleanup()
	tokener := mytoken.NewJWTIssuer(tokenSigningSecret, tokenExpiry(), nower)

	userService := user.NewService(userStore, hasher, tokener, nower, uuider, publisher, pubsub)
	err = userService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering user endpoints: %s", err)
	}

	catalogService := catalog.NewService(productStore, productCache)
	catalogService.RegisterEndpoints(c, router)
	err = catalogService.SeedWhenEmpty(c)
	if err != nil {
		log.Fatalf("Error seeding catalog: %s", err)
	}

	cartService := cart.NewService(userStore, productStore)
	cartService.RegisterEndpoints(c, router)

	orderService := order.NewService(userStore, productStore, orderStore, nower, uuider, publisher)
	err = orderService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering order endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

// fetchTokenSigningSecret prefers the secret stored in the vault. On first
// start the secret comes from the environment and is persisted, so restarts
// keep signing with the same key and issued tokens stay valid.
func fetchTokenSigningSecret(c context.Context) (string, func(), error) {
	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		return "", nil, fmt.Errorf("error creating vault: %s", err)
	}

	secret, found, err := vault.Get(c, myvault.TokenSigningKey)
	if err != nil {
		vaultCleanup()
		return "", nil, fmt.Errorf("error reading vault: %s", err)
	}
	if found {
		return secret.Value, vaultCleanup, nil
	}

	value := os.Getenv("JWT_SECRET")
	if value == "" {
		value = "insecure-dev-only-secret"
		log.Printf("JWT_SECRET not set, using insecure development secret")
	}

	err = vault.Put(c, myvault.TokenSigningKey, myvault.Secret{
		UID:   myvault.TokenSigningKey,
		Value: value,
	})
	if err != nil {
		vaultCleanup()
		return "", nil, fmt.Errorf("error storing secret in vault: %s", err)
	}

	return value, vaultCleanup, nil
}

func tokenExpiry() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("TOKEN_EXPIRY_HOURS"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
