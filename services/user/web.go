package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storeapi/lib/mycontext"
	"github.com/MarcGrol/storeapi/lib/myhasher"
	"github.com/MarcGrol/storeapi/lib/myhttp"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mypubsub"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/mytoken"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/services/order/orderevents"
	"github.com/MarcGrol/storeapi/services/shopapi"
	"github.com/MarcGrol/storeapi/services/shopmodel"
	"github.com/MarcGrol/storeapi/services/user/userevents"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(userStore mystore.Store[shopmodel.User], hasher myhasher.Hasher, tokener mytoken.Issuer, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher, subscriber mypubsub.PubSub) *webService {
	logger := mylog.New("user")
	return &webService{
		service: newService(userStore, hasher, tokener, nower, uuider, logger, pub, subscriber),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/user/register", s.registerPage()).Methods("POST")
	router.HandleFunc("/api/user/login", s.loginPage()).Methods("POST")
	router.HandleFunc("/api/user/profile", s.profilePage()).Methods("POST")
	router.HandleFunc("/api/user/event", s.eventPage()).Methods("POST")

	err := s.service.publisher.CreateTopic(c, userevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", userevents.TopicName, err)
	}

	return s.service.Subscribe(c)
}

func (s *webService) registerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.RegisterRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		_, token, err := s.service.register(c, req.Name, req.Email, req.Password)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.TokenResponse{
			Success: true,
			Token:   token,
		})
	}
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.LoginRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		_, token, err := s.service.login(c, req.Email, req.Password)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.TokenResponse{
			Success: true,
			Token:   token,
		})
	}
}

func (s *webService) profilePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := shopapi.ProfileRequest{}
		err := shopapi.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		user, err := s.service.getProfile(c, req.UserUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, shopapi.DataResponse{
			Success: true,
			Data:    user.Summary(),
		})
	}
}

func (s *webService) eventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := orderevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Success: true,
			Message: "Successfully processed event",
		})
	}
}
