package shopapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/storeapi/lib/myerrors"
)

// Request records per operation: the API accepts JSON bodies and classic
// form posts.

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ProfileRequest struct {
	UserUID string `json:"userId" form:"userId"`
}

type CartRequest struct {
	UserUID    string `json:"userId" form:"userId"`
	ProductUID string `json:"productId" form:"productId"`
}

type PlaceOrderRequest struct {
	UserUID string `json:"userId" form:"userId"`
	Address string `json:"address" form:"address"`
}

type OrdersRequest struct {
	UserUID string `json:"userId" form:"userId"`
}

func DecodeRequest(r *http.Request, target any) error {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		err := r.ParseForm()
		if err != nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err))
		}
		err = formcodec.NewDecoder().Decode(target, r.Form)
		if err != nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
		}
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error decoding request: %s", err))
	}
	return nil
}
