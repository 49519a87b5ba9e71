package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "empty name", req: transport.RegisterRequest{Email: "a@b.co", Password: "secret"}},
		{name: "empty email", req: transport.RegisterRequest{Name: "a", Password: "secret"}},
		{name: "empty password", req: transport.RegisterRequest{Name: "a", Email: "a@b.co"}},
		{name: "unknown role", req: transport.RegisterRequest{Name: "a", Email: "a@b.co", Password: "secret", Role: "superadmin"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	req := transport.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "secret"}
	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "secret",
	})
	require.NoError(t, err)

	token, view, err := svc.Login(ctx, transport.LoginRequest{
		Email: "bob@example.com", Password: "secret", Role: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.ID)

	claims, err := tokens.Parse(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "bob@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

// The role gate is deliberately asymmetric. Admin login against a plain
// account is Forbidden; user login against an admin account reads as
// NotFound so the response does not confirm the account exists.
func TestAuthService_Login_RoleGate(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{
		Name: "plain", Email: "plain@example.com", Password: "secret",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, transport.RegisterRequest{
		Name: "root", Email: "root@example.com", Password: "secret", Role: "admin",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, transport.LoginRequest{
		Email: "plain@example.com", Password: "secret", Role: "admin",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Login(ctx, transport.LoginRequest{
		Email: "root@example.com", Password: "secret", Role: "user",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{
		Name: "carol", Email: "carol@example.com", Password: "secret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, transport.LoginRequest{
		Email: "carol@example.com", Password: "wrong", Role: "user",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, transport.LoginRequest{
		Email: "nobody@example.com", Password: "secret", Role: "user",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func validDealerRequest() transport.DealerRegisterRequest {
	return transport.DealerRegisterRequest{
		Name:      "dave",
		Mobile:    "9876543210",
		Email:     "dave@store.example.com",
		StoreName: "Dave's Fresh",
		GSTN:      "22AAAAA0000A1Z5",
		Location:  "Pune",
		Password:  "secret",
	}
}

func TestAuthService_RegisterDealer_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.DealerRegisterRequest)
	}{
		{name: "missing store name", mutate: func(r *transport.DealerRegisterRequest) { r.StoreName = "" }},
		{name: "missing location", mutate: func(r *transport.DealerRegisterRequest) { r.Location = "" }},
		{name: "mobile too short", mutate: func(r *transport.DealerRegisterRequest) { r.Mobile = "12345" }},
		{name: "mobile too long", mutate: func(r *transport.DealerRegisterRequest) { r.Mobile = "12345678901" }},
		{name: "gstn too short", mutate: func(r *transport.DealerRegisterRequest) { r.GSTN = "22AAAAA0000A1Z" }},
		{name: "gstn too long", mutate: func(r *transport.DealerRegisterRequest) { r.GSTN = "22AAAAA0000A1Z5XXX" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validDealerRequest()
			tt.mutate(&req)

			_, err := svc.RegisterDealer(ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_DealerFlow(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	dealer, err := svc.RegisterDealer(ctx, validDealerRequest())
	require.NoError(t, err)
	assert.Equal(t, models.RoleDealer, dealer.Role)

	_, err = svc.RegisterDealer(ctx, validDealerRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	token, view, err := svc.LoginDealer(ctx, transport.DealerLoginRequest{
		Email: "dave@store.example.com", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, dealer.ID, view.ID)

	claims, err := tokens.Parse(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "dealer", claims.Role)

	profile, err := svc.DealerProfile(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave's Fresh", profile.StoreName)
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)

	_, err := svc.Profile(context.Background(), newUserID())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
