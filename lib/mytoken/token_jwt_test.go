package mytoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storeapi/lib/mytime"
)

func TestJWTIssuer(t *testing.T) {

	t.Run("Issue and verify round-trip", func(t *testing.T) {
		issuer, nower := setup(t)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		token, err := issuer.Issue("user-123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		userUID, err := issuer.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userUID)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		issuer, nower := setup(t)
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		token, err := issuer.Issue("user-123")
		assert.NoError(t, err)

		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(2 * time.Hour))
		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		issuer, nower := setup(t)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		other := NewJWTIssuer("other-secret", time.Hour, nower)
		token, err := other.Issue("user-123")
		assert.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		issuer, _ := setup(t)
		_, err := issuer.Verify("not.a.token")
		assert.Error(t, err)
	})
}

func setup(t *testing.T) (Issuer, *mytime.MockNower) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	nower := mytime.NewMockNower(ctrl)

	return NewJWTIssuer("test-secret", time.Hour, nower), nower
}
