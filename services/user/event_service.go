package user

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/myhttp"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/services/order/orderevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, orderevents.TopicName, myhttp.HostnameWithScheme()+"/api/user/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// OnOrderPlaced stamps the moment of the user's latest order on the profile.
func (s *service) OnOrderPlaced(c context.Context, topic string, event orderevents.OrderPlaced) error {
	s.logger.Log(c, event.UserUID, mylog.SeverityInfo, "Order %s placed by user %s", event.OrderUID, event.UserUID)

	return s.userStore.RunInTransaction(c, func(c context.Context) error {
		user, found, err := s.userStore.Get(c, event.UserUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			// the user may have been removed since the order was placed
			return nil
		}

		now := s.nower.Now()
		user.LastOrderAt = &now

		return s.userStore.Put(c, user.UID, user)
	})
}
