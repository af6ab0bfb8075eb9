package services

import (
	"context"
	"fmt"

	"github.com/ak/pantry/internal/domain/models"
	"github.com/ak/pantry/internal/domain/repositories"
	apperrors "github.com/ak/pantry/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// HouseholdService handles user accounts and household membership
type HouseholdService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	UpdateUsername(ctx context.Context, userID primitive.ObjectID, username string) (*models.User, error)
	// JoinHousehold moves the user into an existing household, identified
	// by the ID another member shared with them.
	JoinHousehold(ctx context.Context, userID, householdID primitive.ObjectID) (*models.User, error)
	Members(ctx context.Context, householdID primitive.ObjectID) ([]*models.User, error)
}

type householdService struct {
	households repositories.HouseholdRepository
	users      repositories.UserRepository
}

// NewHouseholdService creates a new household service
func NewHouseholdService(households repositories.HouseholdRepository, users repositories.UserRepository) HouseholdService {
	return &householdService{
		households: households,
		users:      users,
	}
}

func (s *householdService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("username and password are required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Every new user starts in a fresh single-member household.
	household := &models.Household{Members: 1}
	if err := s.households.Create(ctx, household); err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	user := &models.User{
		HouseholdID:  household.ID,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *householdService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	return user, nil
}

func (s *householdService) UpdateUsername(ctx context.Context, userID primitive.ObjectID, username string) (*models.User, error) {
	if username == "" {
		return nil, apperrors.Validation("username is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}

	taken, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken != nil && taken.ID != user.ID {
		return nil, apperrors.AlreadyExists("username")
	}

	user.Username = username
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *householdService) JoinHousehold(ctx context.Context, userID, householdID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}
	if user.HouseholdID == householdID {
		return user, nil
	}

	target, err := s.households.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.NotFound("household")
	}

	previous := user.HouseholdID
	user.HouseholdID = householdID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.households.AddMembers(ctx, householdID, 1); err != nil {
		return nil, err
	}
	if err := s.households.AddMembers(ctx, previous, -1); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *householdService) Members(ctx context.Context, householdID primitive.ObjectID) ([]*models.User, error) {
	return s.users.ListByHousehold(ctx, householdID)
}
