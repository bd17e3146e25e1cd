package order

import (
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type service struct {
	userStore    mystore.Store[shopmodel.User]
	productStore mystore.Store[shopmodel.Product]
	orderStore   mystore.Store[shopmodel.Order]
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(userStore mystore.Store[shopmodel.User], productStore mystore.Store[shopmodel.Product], orderStore mystore.Store[shopmodel.Order], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher) *service {
	return &service{
		userStore:    userStore,
		productStore: productStore,
		orderStore:   orderStore,
		publisher:    pub,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
