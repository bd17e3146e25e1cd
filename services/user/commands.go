package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcGrol/storeapi/lib/myerrors"
	"github.com/MarcGrol/storeapi/lib/mylog"
	"github.com/MarcGrol/storeapi/lib/mystore"
	"github.com/MarcGrol/storeapi/services/shopmodel"
	"github.com/MarcGrol/storeapi/services/user/userevents"
)

func (s *service) register(c context.Context, name string, email string, password string) (shopmodel.User, string, error) {
	email = normalizeEmail(email)

	// All validation happens before any mutating store call
	if !isValidEmail(email) {
		return shopmodel.User{}, "", myerrors.NewInvalidInputError(fmt.Errorf("Please enter a valid email"))
	}
	if !isStrongPassword(password) {
		return shopmodel.User{}, "", myerrors.NewInvalidInputError(fmt.Errorf("Please enter a strong password"))
	}

	userUID := s.uuider.Create()
	createdAt := s.nower.Now()

	s.logger.Log(c, userUID, mylog.SeverityInfo, "Registering user %s with uid %s", email, userUID)

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return shopmodel.User{}, "", myerrors.NewInternalError(err)
	}

	// Issue the token before the commit: a signing failure must not leave
	// behind an account the caller never got a token for
	token, err := s.tokener.Issue(userUID)
	if err != nil {
		return shopmodel.User{}, "", myerrors.NewInternalError(err)
	}

	user := shopmodel.User{
		UID:          userUID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Cart:         []shopmodel.LineItem{},
		CreatedAt:    createdAt,
	}

	err = s.userStore.RunInTransaction(c, func(c context.Context) error {
		_, found, err := s.lookupByEmail(c, email)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found {
			return myerrors.NewConflictError(fmt.Errorf("User already exists"))
		}

		err = s.userStore.Put(c, userUID, user)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, userevents.TopicName, userevents.UserRegistered{
			UserUID: userUID,
			Email:   email,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return shopmodel.User{}, "", err
	}

	return user, token, nil
}

func (s *service) login(c context.Context, email string, password string) (shopmodel.User, string, error) {
	email = normalizeEmail(email)

	s.logger.Log(c, "", mylog.SeverityInfo, "Login attempt for %s", email)

	user, found, err := s.lookupByEmail(c, email)
	if err != nil {
		return shopmodel.User{}, "", myerrors.NewInternalError(err)
	}
	if !found {
		// distinct from a bad password, even though both render as a failure
		return shopmodel.User{}, "", myerrors.NewNotFoundError(fmt.Errorf("User doesn't exist"))
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return shopmodel.User{}, "", myerrors.NewAuthenticationError(fmt.Errorf("Invalid credentials"))
	}

	token, err := s.tokener.Issue(user.UID)
	if err != nil {
		return shopmodel.User{}, "", myerrors.NewInternalError(err)
	}

	return user, token, nil
}

func (s *service) getProfile(c context.Context, userUID string) (shopmodel.User, error) {
	user, found, err := s.userStore.Get(c, userUID)
	if err != nil {
		return shopmodel.User{}, myerrors.NewInternalError(err)
	}
	if !found {
		return shopmodel.User{}, myerrors.NewNotFoundError(fmt.Errorf("User not found"))
	}

	return user, nil
}

func (s *service) lookupByEmail(c context.Context, email string) (shopmodel.User, bool, error) {
	users, err := s.userStore.Query(c, []mystore.Filter{
		{Field: "Email", Compare: "=", Value: email},
	}, "")
	if err != nil {
		return shopmodel.User{}, false, err
	}
	if len(users) == 0 {
		return shopmodel.User{}, false, nil
	}

	return users[0], true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
