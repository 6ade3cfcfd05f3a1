package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/client"
	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
)

type AuthService interface {
	ValidateToken(ctx context.Context, token string) (model.User, error)
}

type authService struct {
	userRepository      repository.UserRepository
	authClient          client.AuthClient
	tokenExpireVerifier client.TokenExpireVerifier
}

func newAuthService(userRepository repository.UserRepository, authClient client.AuthClient, verifier client.TokenExpireVerifier) AuthService {
	return &authService{userRepository: userRepository, authClient: authClient, tokenExpireVerifier: verifier}
}

// ValidateToken resolves a bearer token to a local user, provisioning the
// account (with a zero reputation balance) on first sight.
func (a *authService) ValidateToken(ctx context.Context, token string) (model.User, error) {
	response, err := a.authClient.VerifyIDToken(ctx, token)
	if err != nil {
		if a.tokenExpireVerifier(err) {
			return model.User{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, err)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	rawEmail, ok := response.Claims["email"]
	if !ok {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, "email claim not found")
	}
	userEmail, ok := rawEmail.(string)
	if !ok {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, "email claim is not a string")
	}

	user, err := a.userRepository.GetByFirebaseUID(response.UID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			newUser, err := a.userRepository.Create(model.User{
				FirebaseUID: response.UID,
				Email:       userEmail,
			})
			if err != nil {
				return model.User{}, err
			}
			return newUser, nil
		}
		return model.User{}, err
	}

	if user.Email != userEmail {
		user.Email = userEmail

		user, err = a.userRepository.Save(user)
		if err != nil {
			return model.User{}, err
		}
	}

	return user, nil
}
