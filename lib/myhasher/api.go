package myhasher

//go:generate mockgen -source=api.go -package myhasher -destination hasher_mock.go Hasher

// Hasher is the capability interface for one-way password hashing.
// Verify must compare in constant time.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hashed string, password string) bool
}
