package order

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storeapi/lib/mycontext"
	"github.com/MarcGrol/storeapi/lib/myhttp"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/services/order/orderevents"
	"github.com/MarcGrol/storeapi/services/shopapi"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(userStore mystore.Store[shopmodel.User], productStore mystore.Store[shopmodel.Product], orderStore mystore.Store[shopmodel.Order], nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	logger := mylog.New("order")
	return &webService{
		service: newService(userStore, productStore, orderStore, nower, uuider, logger, pub),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/order/place", s.placeOrderPage()).Methods("POST")
	router.HandleFunc("/api/order/get", s.ordersPage()).Methods("POST")

	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

func (s *webService) placeOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.PlaceOrderRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		order, err := s.service.placeOrder(c, req.UserUID, req.Address)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.OrderPlacedResponse{
			Success:  true,
			Message:  "Order placed successfully",
			OrderUID: order.UID,
		})
	}
}

func (s *webService) ordersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.OrdersRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		orders, err := s.service.getOrders(c, req.UserUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.DataResponse{
			Success: true,
			Data:    orders,
		})
	}
}
