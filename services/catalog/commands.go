package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/services/shopmodel"
)

func (s *service) listProducts(c context.Context) ([]shopmodel.Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products")

	products, err := s.productStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})

	return products, nil
}

func (s *service) getProduct(c context.Context, productUID string) (shopmodel.Product, error) {
	product, hit, err := s.productCache.Get(c, productUID)
	if err != nil {
		// a broken cache must never break a lookup
		s.logger.Log(c, productUID, mylog.SeverityWarn, "Error reading product %s from cache: %s", productUID, err)
	}
	if hit {
		return product, nil
	}

	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return shopmodel.Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return shopmodel.Product{}, myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
	}

	err = s.productCache.Set(c, productUID, product)
	if err != nil {
		s.logger.Log(c, productUID, mylog.SeverityWarn, "Error caching product %s: %s", productUID, err)
	}

	return product, nil
}
