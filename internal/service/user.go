package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/model"
	"github.com/AskTracyLLC/clearmarket-connect-sub001/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrContactLocked      = errors.New("contact info is locked")
)

type UserService struct {
	repo    *repository.Repository
	unlocks *UnlockService
}

func NewUserService(repo *repository.Repository, unlocks *UnlockService) *UserService {
	return &UserService{repo: repo, unlocks: unlocks}
}

type SignupInput struct {
	Email        string
	Password     string
	DisplayName  string
	Role         model.Role
	ContactEmail *string
	ContactPhone *string
}

func (s *UserService) Register(ctx context.Context, in SignupInput) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role != model.RoleFieldRep && role != model.RoleVendor {
		role = model.RoleFieldRep
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Role:         role,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, user *model.User) error {
	return s.repo.UpdateUserProfile(ctx, user)
}

// GetContact reveals a user's contact info to the viewer only when an
// unlock exists (or the viewer is looking at themselves).
func (s *UserService) GetContact(ctx context.Context, viewerID, userID int64) (*model.ContactInfo, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if viewerID != userID {
		unlocked, err := s.unlocks.IsUnlocked(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		if !unlocked {
			return nil, ErrContactLocked
		}
	}

	return &model.ContactInfo{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.ContactEmail,
		Phone:       user.ContactPhone,
	}, nil
}
