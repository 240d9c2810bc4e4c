package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sneaker-shop/models"
	"sneaker-shop/repositories"
)

// UserStore is the persistence surface of user administration and auth.
type UserStore interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Update(ctx context.Context, idHex string, req models.UpdateUserRequest) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		if *req.Role != models.RoleCustomer && *req.Role != models.RoleManager {
			return nil, errors.New("role must be customer or manager")
		}
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		if err := s.users.Update(ctx, id, updates); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return nil, ErrEmailTaken
			}
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	return s.users.FindByID(ctx, id)
}

// Delete removes a user unless it is the last manager account.
func (s *UserService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if user.Role == models.RoleManager {
		managers, err := s.users.CountByRole(ctx, models.RoleManager)
		if err != nil {
			return err
		}
		if managers <= 1 {
			return ErrLastManager
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
