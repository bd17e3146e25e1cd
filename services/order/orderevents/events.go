package orderevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/myevents"
)

const (
	TopicName       = "order"
	orderPlacedName = TopicName + ".placed"
)

type OrderEventService interface {
	Subscribe(c context.Context) error
	OnOrderPlaced(c context.Context, topic string, event OrderPlaced) error
}

func DispatchEvent(c context.Context, reader io.Reader, service OrderEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderPlacedName:
		{
			event := OrderPlaced{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderPlaced(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event %s", envelope.EventTypeName))
	}
}

type OrderPlaced struct {
	OrderUID   string
	UserUID    string
	TotalPrice int
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.OrderUID
}
