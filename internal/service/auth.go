package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/events"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/transport"
	"github.com/freshkart/shopapi/pkg/hash"
	"github.com/freshkart/shopapi/pkg/logging"
	"github.com/freshkart/shopapi/pkg/tokens"
)

const (
	dealerMobileLen  = 10
	dealerGSTNMinLen = 15
	dealerGSTNMaxLen = 17
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Events    *events.Producer
}

func userView(u *models.User) *transport.UserView {
	return &transport.UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func dealerView(d *models.Dealer) *transport.DealerView {
	return &transport.DealerView{
		ID:        d.ID,
		Name:      d.Name,
		Mobile:    d.Mobile,
		Email:     d.Email,
		StoreName: d.StoreName,
		GSTN:      d.GSTN,
		Location:  d.Location,
		Role:      d.Role,
	}
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.UserView, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password required: %w", ErrValidation)
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q: %w", req.Role, ErrValidation)
		}
	}

	if _, err := s.Repo.UserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user with this email already exists: %w", ErrDuplicateEmail)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":  "user_registered",
		"email": user.Email,
		"role":  user.Role,
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicUserEvents, "error", err)
	}

	return userView(&user), nil
}

// Login verifies credentials and applies the requested-role gate. An admin
// request against a non-admin account is Forbidden; a user request against
// a non-user account reads as NotFound so the response does not reveal
// that an account with another role exists under that email.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, *transport.UserView, error) {
	user, err := s.Repo.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return "", nil, err
	}

	switch models.Role(req.Role) {
	case models.RoleAdmin:
		if user.Role != models.RoleAdmin {
			return "", nil, fmt.Errorf("invalid admin credentials: %w", ErrForbidden)
		}
	case models.RoleUser:
		if user.Role != models.RoleUser {
			return "", nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return "", nil, fmt.Errorf("password mismatch: %w", ErrInvalidCredentials)
	}

	token, err := tokens.Issue(user.ID, user.Email, string(user.Role), s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, userView(user), nil
}

func (s *AuthService) RegisterDealer(ctx context.Context, req transport.DealerRegisterRequest) (*transport.DealerView, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register_dealer")

	if req.Name == "" || req.Mobile == "" || req.Email == "" ||
		req.StoreName == "" || req.GSTN == "" || req.Location == "" || req.Password == "" {
		return nil, fmt.Errorf("all fields are required: %w", ErrValidation)
	}
	if len(req.Mobile) != dealerMobileLen {
		return nil, fmt.Errorf("mobile number must be %d digits: %w", dealerMobileLen, ErrValidation)
	}
	if len(req.GSTN) < dealerGSTNMinLen || len(req.GSTN) > dealerGSTNMaxLen {
		return nil, fmt.Errorf("gstn must be between %d and %d characters: %w",
			dealerGSTNMinLen, dealerGSTNMaxLen, ErrValidation)
	}

	if _, err := s.Repo.DealerByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("dealer with this email already exists: %w", ErrDuplicateEmail)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_dealer_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	dealer := models.Dealer{
		Name:         req.Name,
		Mobile:       req.Mobile,
		Email:        req.Email,
		StoreName:    req.StoreName,
		GSTN:         req.GSTN,
		Location:     req.Location,
		PasswordHash: pwHash,
		Role:         models.RoleDealer,
	}
	if err := s.Repo.CreateDealer(ctx, &dealer); err != nil {
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicUserEvents, dealer.ID.String(), map[string]any{
		"type":  "dealer_registered",
		"email": dealer.Email,
	}); err != nil {
		l.Warn("publish_failed", "topic", events.TopicUserEvents, "error", err)
	}

	return dealerView(&dealer), nil
}

func (s *AuthService) LoginDealer(ctx context.Context, req transport.DealerLoginRequest) (string, *transport.DealerView, error) {
	dealer, err := s.Repo.DealerByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("dealer not found: %w", ErrNotFound)
		}
		return "", nil, err
	}

	if !hash.CheckPassword(dealer.PasswordHash, req.Password) {
		return "", nil, fmt.Errorf("password mismatch: %w", ErrInvalidCredentials)
	}

	token, err := tokens.Issue(dealer.ID, dealer.Email, string(dealer.Role), s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, dealerView(dealer), nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*transport.UserView, error) {
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return userView(user), nil
}

func (s *AuthService) DealerProfile(ctx context.Context, dealerID uuid.UUID) (*transport.DealerView, error) {
	dealer, err := s.Repo.DealerByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dealer not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return dealerView(dealer), nil
}
