package myvault

import (
	"context"

	"github.com/MarcGrol/storeapi/lib/mystore"
)

func New(c context.Context) (VaultReadWriter, func(), error) {
	return mystore.New[Secret](c)
}
