package catalog

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storeapi/services/shopmodel"
)

// SeedWhenEmpty loads the default catalog on first start so the shop is
// usable out of the box.
func (s *webService) SeedWhenEmpty(c context.Context) error {
	existing, err := s.service.productStore.List(c)
	if err != nil {
		return fmt.Errorf("error checking catalog: %s", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range defaultCatalog() {
		err := s.service.productStore.Put(c, p.UID, p)
		if err != nil {
			return fmt.Errorf("error seeding product %s: %s", p.UID, err)
		}
	}

	return nil
}

func defaultCatalog() []shopmodel.Product {
	return []shopmodel.Product{
		{
			UID:          "product_tennis_racket",
			Name:         "Tennis racket",
			Description:  "Carbon fibre tennis racket, grip size 2",
			Price:        10000,
			Image:        "/images/tennis_racket.jpg",
			Category:     "sport",
			SubCategory:  "tennis",
			Rating:       4.5,
			InStock:      true,
			FreeShipping: true,
			Reviews: []shopmodel.Review{
				{User: "eva", Comment: "Great balance", Rating: 5},
			},
		},
		{
			UID:         "product_tennis_balls",
			Name:        "Tennis balls",
			Description: "Tube of 4 pressurized balls",
			Price:       1000,
			Image:       "/images/tennis_balls.jpg",
			Category:    "sport",
			SubCategory: "tennis",
			Rating:      4.1,
			InStock:     true,
		},
		{
			UID:         "product_running_shoes",
			Name:        "Running shoes",
			Description: "Lightweight trainers for road running",
			Price:       8900,
			Image:       "/images/running_shoes.jpg",
			Category:    "sport",
			SubCategory: "running",
			Rating:      3.9,
			InStock:     true,
		},
	}
}
