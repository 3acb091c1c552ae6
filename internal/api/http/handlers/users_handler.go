package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/venue-booking-service/internal/api/dto"
	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/service"
	apperrors "github.com/spec-kit/venue-booking-service/pkg/util"
)

// UsersHandler manages user endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		UserType:    req.UserType,
		About:       req.About,
		Location:    req.Location,
		Department:  req.Department,
		Course:      req.Course,
		Affiliation: req.Affiliation,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// List GET /api/users?type=. Lists users of one type.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	userType := c.Query("type")
	if userType == "" {
		return apperrors.NewValidationError("type query parameter required", nil)
	}
	users, err := h.users.ListByType(c.UserContext(), domain.UserType(userType))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(users)})
}

// Get GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.users.Update(c.UserContext(), c.Params("id"), service.UserUpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		About:       req.About,
		Location:    req.Location,
		Department:  req.Department,
		Course:      req.Course,
		Affiliation: req.Affiliation,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		UserType:    user.UserType,
		About:       user.About,
		Location:    user.Location,
		Department:  user.Department,
		Course:      user.Course,
		Affiliation: user.Affiliation,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return items
}
