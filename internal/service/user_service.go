package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// UserService manages user records. Credentials never pass through here;
// callers are expected to hand the service validated identities.
type UserService struct {
	users repository.UserRepository
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	UserType    domain.UserType
	About       *string
	Location    *string
	Department  *string
	Course      *string
	Affiliation *string
}

// UserUpdateInput carries partial user updates.
type UserUpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	About       *string
	Location    *string
	Department  *string
	Course      *string
	Affiliation *string
}

var validUserTypes = map[domain.UserType]bool{
	domain.UserTypeStudent:     true,
	domain.UserTypeFaculty:     true,
	domain.UserTypeCoordinator: true,
	domain.UserTypeCustodian:   true,
	domain.UserTypeAdmin:       true,
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create persists a user. Duplicate email surfaces as a conflict.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, apperrors.NewValidationError("first_name and last_name required", nil)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("valid email required", nil)
	}
	if !validUserTypes[input.UserType] {
		return nil, apperrors.NewValidationError("unknown user_type", map[string]any{"user_type": input.UserType})
	}

	user := &domain.User{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       email,
		UserType:    input.UserType,
		About:       input.About,
		Location:    input.Location,
		Department:  input.Department,
		Course:      input.Course,
		Affiliation: input.Affiliation,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies partial changes. The user type is fixed at creation.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) != "" {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) != "" {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperrors.NewValidationError("valid email required", nil)
		}
		user.Email = email
	}
	if input.About != nil {
		user.About = input.About
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.Course != nil {
		user.Course = input.Course
	}
	if input.Affiliation != nil {
		user.Affiliation = input.Affiliation
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListByType returns users of one type.
func (s *UserService) ListByType(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	if !validUserTypes[userType] {
		return nil, apperrors.NewValidationError("unknown user_type", map[string]any{"user_type": userType})
	}
	users, err := s.users.ListByType(ctx, userType)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
