package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterCreatesHousehold(t *testing.T) {
	households := newFakeHouseholdRepo()
	svc := NewHouseholdService(households, newFakeUserRepo())

	user, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)
	assert.False(t, user.HouseholdID.IsZero())
	assert.NotEqual(t, "secret", user.PasswordHash, "password must be hashed")

	household, err := households.GetByID(context.Background(), user.HouseholdID)
	require.NoError(t, err)
	require.NotNil(t, household)
	assert.Equal(t, 1, household.Members)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewHouseholdService(newFakeHouseholdRepo(), newFakeUserRepo())

	_, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alex", "other")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := NewHouseholdService(newFakeHouseholdRepo(), newFakeUserRepo())
	registered, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "alex", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Login(context.Background(), "alex", "wrong")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "nobody", "secret")
	assert.Error(t, err)
}

func TestJoinHousehold(t *testing.T) {
	households := newFakeHouseholdRepo()
	svc := NewHouseholdService(households, newFakeUserRepo())

	alex, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)
	sam, err := svc.Register(context.Background(), "sam", "secret")
	require.NoError(t, err)

	joined, err := svc.JoinHousehold(context.Background(), sam.ID, alex.HouseholdID)
	require.NoError(t, err)
	assert.Equal(t, alex.HouseholdID, joined.HouseholdID)

	target, err := households.GetByID(context.Background(), alex.HouseholdID)
	require.NoError(t, err)
	assert.Equal(t, 2, target.Members)

	previous, err := households.GetByID(context.Background(), sam.HouseholdID)
	require.NoError(t, err)
	assert.Equal(t, 0, previous.Members)

	members, err := svc.Members(context.Background(), alex.HouseholdID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestJoinUnknownHousehold(t *testing.T) {
	svc := NewHouseholdService(newFakeHouseholdRepo(), newFakeUserRepo())
	alex, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)

	_, err = svc.JoinHousehold(context.Background(), alex.ID, primitive.NewObjectID())
	assert.Error(t, err)
}

func TestUpdateUsername(t *testing.T) {
	svc := NewHouseholdService(newFakeHouseholdRepo(), newFakeUserRepo())
	alex, err := svc.Register(context.Background(), "alex", "secret")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "sam", "secret")
	require.NoError(t, err)

	updated, err := svc.UpdateUsername(context.Background(), alex.ID, "alexander")
	require.NoError(t, err)
	assert.Equal(t, "alexander", updated.Username)

	_, err = svc.UpdateUsername(context.Background(), alex.ID, "sam")
	assert.Error(t, err, "taken username must be rejected")
}
