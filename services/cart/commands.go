package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/mylog"
)

func (s *service) addItem(c context.Context, userUID string, productUID string) error {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Add product %s to cart of user %s", productUID, userUID)

	// The transaction serializes concurrent mutation of the same cart:
	// the read-modify-write below cannot lose updates
	return s.userStore.RunInTransaction(c, func(c context.Context) error {
		user, found, err := s.userStore.Get(c, userUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("User not found"))
		}

		_, found, err = s.productStore.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
		}

		user.AddToCart(productUID)

		err = s.userStore.Put(c, userUID, user)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) removeItem(c context.Context, userUID string, productUID string) error {
	s.logger.Log(c, userUID, mylog.SeverityInfo, "Remove product %s from cart of user %s", productUID, userUID)

	return s.userStore.RunInTransaction(c, func(c context.Context) error {
		user, found, err := s.userStore.Get(c, userUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("User not found"))
		}

		// removing an absent product is a no-op, not a failure
		user.RemoveFromCart(productUID)

		err = s.userStore.Put(c, userUID, user)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}
