package services

import (
	"context"

	"messagely/internal/logger"
	"messagely/internal/models"
)

// UserLister defines the user reads the user service needs.
type UserLister interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserProfile, error)
}

// MessageLister defines the per-user message listings.
type MessageLister interface {
	ListTo(ctx context.Context, username string) ([]models.MessageListItem, error)
	ListFrom(ctx context.Context, username string) ([]models.MessageListItem, error)
}

// UserService serves user profiles and per-user message listings.
type UserService struct {
	users    UserLister
	messages MessageLister
}

// NewUserService creates a new UserService instance.
func NewUserService(users UserLister, messages MessageLister) *UserService {
	return &UserService{
		users:    users,
		messages: messages,
	}
}

// List returns the public profiles of all users.
func (svc *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	users, err := svc.users.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Get returns the full profile for one user. The password hash stays
// inside the service layer; handlers shape the response without it.
func (svc *UserService) Get(ctx context.Context, username string) (*models.UserDB, error) {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}
	return user, nil
}

// MessagesTo returns the messages sent to the user. An empty inbox is
// an empty slice, not an error.
func (svc *UserService) MessagesTo(ctx context.Context, username string) ([]models.MessageListItem, error) {
	if err := svc.checkUserExists(ctx, username); err != nil {
		return nil, err
	}
	return svc.messages.ListTo(ctx, username)
}

// MessagesFrom returns the messages sent by the user.
func (svc *UserService) MessagesFrom(ctx context.Context, username string) ([]models.MessageListItem, error) {
	if err := svc.checkUserExists(ctx, username); err != nil {
		return nil, err
	}
	return svc.messages.ListFrom(ctx, username)
}

func (svc *UserService) checkUserExists(ctx context.Context, username string) error {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}
	return nil
}
