package mytoken

//go:generate mockgen -source=api.go -package mytoken -destination issuer_mock.go Issuer

// Issuer is the capability interface for signing and verifying the bearer
// tokens that carry a user identity claim.
type Issuer interface {
	Issue(userUID string) (string, error)
	Verify(token string) (string, error)
}
