package mytoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcGrol/storeapi/lib/mytime"
)

type claims struct {
	UserUID string `json:"userId"`
	jwt.RegisteredClaims
}

type jwtIssuer struct {
	secret []byte
	expiry time.Duration
	nower  mytime.Nower
}

func NewJWTIssuer(secret string, expiry time.Duration, nower mytime.Nower) Issuer {
	return jwtIssuer{
		secret: []byte(secret),
		expiry: expiry,
		nower:  nower,
	}
}

func (i jwtIssuer) Issue(userUID string) (string, error) {
	now := i.nower.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %s", err)
	}

	return signed, nil
}

func (i jwtIssuer) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.nower.Now))
	if err != nil {
		return "", fmt.Errorf("error parsing token: %s", err)
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || tokenClaims.UserUID == "" {
		return "", fmt.Errorf("token carries no user identity")
	}

	return tokenClaims.UserUID, nil
}
