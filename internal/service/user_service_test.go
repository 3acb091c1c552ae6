package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

func TestCreateUserNormalizesEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.users.Create(ctx, UserCreateInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "  Ada.Okafor@Campus.EDU ",
		UserType:  domain.UserTypeStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada.okafor@campus.edu", user.Email)
	assert.Equal(t, "Ada Okafor", user.Name())
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.users.Create(ctx, UserCreateInput{
		FirstName: "",
		LastName:  "Okafor",
		Email:     "a@b.edu",
		UserType:  domain.UserTypeStudent,
	})
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = f.users.Create(ctx, UserCreateInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "not-an-email",
		UserType:  domain.UserTypeStudent,
	})
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = f.users.Create(ctx, UserCreateInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "a@b.edu",
		UserType:  domain.UserType("janitor"),
	})
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedUser(domain.UserTypeStudent, "ada@campus.edu")

	_, err := f.users.Create(ctx, UserCreateInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "ada@campus.edu",
		UserType:  domain.UserTypeStudent,
	})
	requireCode(t, err, "CONFLICT")
}

func TestUpdateUserPartialFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.seedUser(domain.UserTypeFaculty, "prof@campus.edu")

	department := "Physics"
	updated, err := f.users.Update(ctx, user.ID, UserUpdateInput{Department: &department})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Physics", *updated.Department)
	assert.Equal(t, domain.UserTypeFaculty, updated.UserType)

	bad := "no-at-sign"
	_, err = f.users.Update(ctx, user.ID, UserUpdateInput{Email: &bad})
	requireCode(t, err, "VALIDATION_FAILED")

	_, err = f.users.Update(ctx, "missing", UserUpdateInput{Department: &department})
	requireCode(t, err, "NOT_FOUND")
}

func TestListByTypeRejectsUnknownType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedUser(domain.UserTypeStudent, "ada@campus.edu")

	students, err := f.users.ListByType(ctx, domain.UserTypeStudent)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	_, err = f.users.ListByType(ctx, domain.UserType("janitor"))
	requireCode(t, err, "VALIDATION_FAILED")
}
