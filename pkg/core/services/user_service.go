package services

import (
	"context"
	"time"

	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo   ports.Repository
	tokens ports.AuthTokens
}

func NewUserService(repo ports.Repository, tokens ports.AuthTokens) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, name, email, mobile, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("Email and password are mandatory.")
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: string(hash),
		SessionEpoch: time.Now().UnixMilli(),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.SessionEpoch)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{Token: token, Name: user.Name}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.SessionEpoch)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{Token: token, Name: user.Name}, nil
}

// Update applies partial changes. Changing the email bumps the session epoch,
// which logs the user out of every other device.
func (s *UserService) Update(ctx context.Context, userID int64, name, email, mobile string) (bool, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrNotFound
	}

	emailChanged := false
	if email != "" && email != user.Email {
		existing, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return false, err
		}
		if existing != nil && existing.ID != userID {
			return false, domain.ErrDuplicateEmail
		}
		user.Email = email
		// UnixMilli can collide with the issuance epoch on fast paths;
		// the bump must always move forward to cut off older tokens.
		epoch := time.Now().UnixMilli()
		if epoch <= user.SessionEpoch {
			epoch = user.SessionEpoch + 1
		}
		user.SessionEpoch = epoch
		emailChanged = true
	}
	if name != "" {
		user.Name = name
	}
	if mobile != "" {
		user.Mobile = mobile
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return false, err
	}
	return emailChanged, nil
}

func (s *UserService) GetName(ctx context.Context, userID int64) (string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrNotFound
	}
	return user.Name, nil
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteUserCascade(ctx, userID)
}

var _ ports.UserService = (*UserService)(nil)
