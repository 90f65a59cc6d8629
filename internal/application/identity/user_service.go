package identity

import (
	"context"
	"errors"

	"github.com/bizdesk/backend/internal/application/mutation"
	"github.com/bizdesk/backend/internal/domain/access"
	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService manages user accounts. All writes go through the
// mutation facade; operation policy restricts them to admins.
type UserService struct {
	userRepo identity.UserRepository
	facade   *mutation.Facade
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, facade *mutation.Facade) *UserService {
	return &UserService{
		userRepo: userRepo,
		facade:   facade,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, principal access.Principal, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password, access.Role(req.Role))
	if err != nil {
		return nil, err
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionCreate,
		Entity:    "User",
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := s.userRepo.Save(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(result.(*identity.User))
	return &response, nil
}

// GetByID retrieves a user account
func (s *UserService) GetByID(ctx context.Context, principal access.Principal, id uuid.UUID) (*UserResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "User"}); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List returns all user accounts
func (s *UserService) List(ctx context.Context, principal access.Principal, filter shared.Filter) ([]UserResponse, error) {
	if _, err := s.facade.AuthorizeRead(ctx, principal, access.Resource{Entity: "User"}); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return items, nil
}

// Update changes a user's name and role
func (s *UserService) Update(ctx context.Context, principal access.Principal, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, before, err := s.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	role := access.Role(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+req.Role)
	}

	result, err := s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "User",
		EntityID:  id,
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			user.Name = req.Name
			user.Role = role
			user.Touch()
			if err := s.userRepo.Save(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		},
	})
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(result.(*identity.User))
	return &response, nil
}

// Deactivate locks a user account out. The principal resolver re-reads
// the user row per request, so this takes effect immediately.
func (s *UserService) Deactivate(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	user, before, err := s.loadForMutation(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "User",
		EntityID:  id,
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := user.Deactivate(); err != nil {
				return nil, err
			}
			if err := s.userRepo.Save(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		},
	})
	return err
}

// Activate restores a deactivated user account
func (s *UserService) Activate(ctx context.Context, principal access.Principal, id uuid.UUID) error {
	user, before, err := s.loadForMutation(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.facade.Mutate(ctx, mutation.Mutation{
		Principal: principal,
		Action:    access.ActionUpdate,
		Entity:    "User",
		EntityID:  id,
		Before: func(ctx context.Context) (map[string]any, error) {
			return before, nil
		},
		Execute: func(ctx context.Context) (mutation.Snapshotter, error) {
			if err := user.Activate(); err != nil {
				return nil, err
			}
			if err := s.userRepo.Save(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		},
	})
	return err
}

func (s *UserService) loadForMutation(ctx context.Context, id uuid.UUID) (*identity.User, map[string]any, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return user, user.Snapshot(), nil
}
