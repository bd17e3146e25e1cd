package order

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/order/orderevents"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

// placeOrder turns the user's cart into an order. A single transaction covers
// the order write, the cart clear and the outbox publish, so checkout either
// fully happens or not at all.
func (s *service) placeOrder(c context.Context, userUID string, address string) (shopmodel.Order, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Place order for user %s", userUID)

	order := shopmodel.Order{}

	err := s.userStore.RunInTransaction(c, func(c context.Context) error {
		user, found, err := s.userStore.Get(c, userUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("User not found"))
		}

		if len(user.Cart) == 0 {
			return myerrors.NewInvalidInputError(fmt.Errorf("Cart is empty"))
		}

		lines, totalPrice, err := s.priceCart(c, user.Cart)
		if err != nil {
			return err
		}

		order = shopmodel.Order{
			UID:        s.uuider.Create(),
			UserUID:    user.UID,
			Lines:      lines,
			TotalPrice: totalPrice,
			Address:    address,
			Status:     shopmodel.OrderStatusPlaced,
			CreatedAt:  s.nower.Now(),
		}

		err = s.orderStore.Put(c, order.UID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		user.Cart = nil
		err = s.userStore.Put(c, user.UID, user)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:   order.UID,
			UserUID:    order.UserUID,
			TotalPrice: order.TotalPrice,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return order, err
	}

	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Placed order %s for user %s (%d cents)", order.UID, userUID, order.TotalPrice)

	return order, nil
}

// priceCart snapshots name and price of every cart line from the catalog.
// Prices are fixed at checkout time: later catalog changes do not touch
// existing orders.
func (s *service) priceCart(c context.Context, cart []shopmodel.LineItem) ([]shopmodel.OrderLine, int, error) {
	lines := []shopmodel.OrderLine{}
	totalPrice := 0

	for _, item := range cart {
		product, found, err := s.productStore.Get(c, item.ProductUID)
		if err != nil {
			return nil, 0, myerrors.NewInternalError(err)
		}
		if !found {
			return nil, 0, myerrors.NewNotFoundError(fmt.Errorf("Product %s not found", item.ProductUID))
		}

		line := shopmodel.OrderLine{
			ProductUID: product.UID,
			Name:       product.Name,
			Price:      product.Price,
			Quantity:   item.Quantity,
		}
		lines = append(lines, line)
		totalPrice += line.TotalPrice()
	}

	return lines, totalPrice, nil
}

func (s *service) getOrders(c context.Context, userUID string) ([]shopmodel.Order, error) {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Fetch orders of user %s", userUID)

	orders, err := s.orderStore.Query(c, []mystore.Filter{
		{Field: "UserUID", Compare: "=", Value: userUID},
	}, "-CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching orders: %s", err))
	}

	return orders, nil
}
