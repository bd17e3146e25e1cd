package catalog

import (
	"github.com/MarcGrol/storeapi/lib/mycache"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type service struct {
	productStore mystore.Store[shopmodel.Product]
	productCache mycache.Cache[shopmodel.Product]
	logger       mylog.Logger
}

func newService(productStore mystore.Store[shopmodel.Product], productCache mycache.Cache[shopmodel.Product], logger mylog.Logger) *service {
	return &service{
		productStore: productStore,
		productCache: productCache,
		logger:       logger,
	}
}
