package cart

import (
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type service struct {
	userStore    mystore.Store[shopmodel.User]
	productStore mystore.Store[shopmodel.Product]
	logger       mylog.Logger
}

func newService(userStore mystore.Store[shopmodel.User], productStore mystore.Store[shopmodel.Product], logger mylog.Logger) *service {
	return &service{
		userStore:    userStore,
		productStore: productStore,
		logger:       logger,
	}
}
