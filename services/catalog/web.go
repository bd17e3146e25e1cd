package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storeapi/lib/mycache"
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
func NewService(productStore mystore.Store[shopmodel.Product], productCache mycache.Cache[shopmodel.Product]) *webService {
	logger := mylog.New("catalog")
	return &webService{
		service: newService(productStore, productCache, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/product/all", s.productListPage()).Methods("GET")
	router.HandleFunc("/api/product/{productUID}", s.productDetailPage()).Methods("GET")
}

func (s *webService) productListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.DataResponse{
			Success: true,
			Data:    products,
		})
	}
}

func (s *webService) productDetailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, err := s.service.getProduct(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.DataResponse{
			Success: true,
			Data:    product,
		})
	}
}
