package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wegesa-api/internal/application/auth"
	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/application/usecase"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
	"github.com/jhoicas/wegesa-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *dto.UserResponse, *dto.UserResponse) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := usecase.NewUserUseCase(store.Users())

	keeper, err := users.Create(ctx, dto.CreateUserRequest{Name: "Juma", Email: "juma@wegesa.co", Password: "bodega-1234", Role: "STORE_KEEPER"})
	require.NoError(t, err)
	inactive := false
	gone, err := users.Create(ctx, dto.CreateUserRequest{Name: "Baraka", Email: "baraka@wegesa.co", Password: "bodega-1234", Role: "OPERATION", IsActive: &inactive})
	require.NoError(t, err)

	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "wegesa-test"})
	return uc, keeper, gone
}

func TestLogin_OK(t *testing.T) {
	uc, keeper, _ := setup(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: " JUMA@wegesa.co ", Password: "bodega-1234"})
	require.NoError(t, err)
	assert.Equal(t, keeper.ID, res.User.ID)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, keeper.ID, userID)
	assert.Equal(t, "STORE_KEEPER", role)
}

func TestLogin_Errores(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "juma@wegesa.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@wegesa.co", Password: "bodega-1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baraka@wegesa.co", Password: "bodega-1234"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe(t *testing.T) {
	uc, keeper, gone := setup(t)
	ctx := context.Background()

	me, err := uc.Me(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, "juma@wegesa.co", me.User.Email)
	assert.Contains(t, me.Permissions, "add_item")
	assert.Contains(t, me.Permissions, "confirm_return")
	assert.NotContains(t, me.Permissions, "create_dispatch")
	assert.NotContains(t, me.Permissions, "manage_users")

	_, err = uc.Me(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
