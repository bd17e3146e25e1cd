package cart

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storeapi/lib/mycontext"
	"github.com/MarcGrol/storeapi/lib/myhttp"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/shopapi"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(userStore mystore.Store[shopmodel.User], productStore mystore.Store[shopmodel.Product]) *webService {
	logger := mylog.New("cart")
	return &webService{
		service: newService(userStore, productStore, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/cart/add", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/remove", s.removeItemPage()).Methods("POST")
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.CartRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.addItem(c, req.UserUID, req.ProductUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Success: true,
			Message: "Added to cart",
		})
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.CartRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.removeItem(c, req.UserUID, req.ProductUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Success: true,
			Message: "Removed from cart",
		})
	}
}
