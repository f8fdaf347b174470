package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteworks/wasteworks-api/internal/domain/auth"
	"github.com/wasteworks/wasteworks-api/internal/pkg/token"
)

func newTestService() *auth.Service {
	tokens := token.NewService("test-secret", time.Hour)
	return auth.NewService(auth.NewMemoryRepository(), tokens)
}

func TestLoginRoundtrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	staff, err := svc.CreateStaff(ctx, "Collector@City.gov", "Ravi", "s3cret-pass", auth.RoleCollector)
	require.NoError(t, err)
	assert.Equal(t, "collector@city.gov", staff.Email)

	result, err := svc.Login(ctx, "collector@city.gov", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, staff.ID, result.Staff.ID)

	// The token carries the staff identity and role.
	tokens := token.NewService("test-secret", time.Hour)
	claims, err := tokens.Validate(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.ActorID)
	assert.Equal(t, "collector", claims.Role)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateStaff(ctx, "admin@city.gov", "Admin", "admin-pass-1", auth.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ADMIN@city.gov", "admin-pass-1")
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateStaff(ctx, "sup@city.gov", "Sup", "correct-pass", auth.RoleSupervisor)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "sup@city.gov", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown email returns the same error as a bad password.
	_, err = svc.Login(ctx, "nobody@city.gov", "whatever-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCreateStaffDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateStaff(ctx, "dup@city.gov", "First", "password-1", auth.RoleCollector)
	require.NoError(t, err)

	_, err = svc.CreateStaff(ctx, "DUP@city.gov", "Second", "password-2", auth.RoleCollector)
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestCreateStaffInvalidRole(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateStaff(context.Background(), "x@city.gov", "X", "password-1", auth.Role("janitor"))
	assert.ErrorIs(t, err, auth.ErrInvalidRole)
}
