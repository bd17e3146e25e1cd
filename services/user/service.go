package user

import (
	"github.com/MarcGrol/storeapi/lib/myhasher"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mypublisher"
	"github.com/MarcGrol/storeapi/lib/mypubsub"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/lib/mytime"
	"github.com/MarcGrol/storeapi/lib/mytoken"
	"github.com/MarcGrol/storeapi/lib/myuuid"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

type service struct {
	userStore  mystore.Store[shopmodel.User]
	hasher     myhasher.Hasher
	tokener    mytoken.Issuer
	publisher  mypublisher.Publisher
	subscriber mypubsub.PubSub
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(userStore mystore.Store[shopmodel.User], hasher myhasher.Hasher, tokener mytoken.Issuer, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher, subscriber mypubsub.PubSub) *service {
	return &service{
		userStore:  userStore,
		hasher:     hasher,
		tokener:    tokener,
		publisher:  pub,
		subscriber: subscriber,
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}
