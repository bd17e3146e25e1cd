package myvault

import (
	"context"
)

const (
	// TokenSigningKey is the uid under which the JWT signing secret lives
	TokenSigningKey = "tokenSigningKey"
)

type Secret struct {
	UID   string
	Value string `datastore:",noindex"`
}

type VaultReader interface {
	Get(c context.Context, uid string) (Secret, bool, error)
}

//go:generate mockgen -source=api.go -package myvault -destination vault_mock.go VaultReadWriter
type VaultReadWriter interface {
	Get(c context.Context, uid string) (Secret, bool, error)
	Put(c context.Context, uid string, value Secret) error
}
