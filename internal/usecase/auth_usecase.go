package usecase

import (
	"context"
	"errors"
	"log/slog"

	"careerlink/internal/domain/user"
	"careerlink/internal/pkg/jwt"
	ucauth "careerlink/internal/usecase/auth"
)

var (
	ErrTokenInvalid    = errors.New("token is not valid")
	ErrInactiveAccount = errors.New("invalid or inactive token")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error)
	AdminLogin(ctx context.Context, email, password string) (user.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	// Authenticate resolves a bearer token to an active account.
	Authenticate(ctx context.Context, token string) (user.User, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	logger  *slog.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{authSvc: authSvc, users: users, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}
	token, err := u.jwt.GenerateToken(usr.ID, string(usr.Role))
	if err != nil {
		return user.User{}, "", internal(err)
	}
	u.logger.Info("user registered", "user_id", usr.ID, "role", usr.Role)
	return usr, token, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", err
	}
	return u.issue(usr)
}

func (u *Auth) AdminLogin(ctx context.Context, email, password string) (user.User, string, error) {
	usr, err := u.authSvc.AdminLogin(ctx, email, password)
	if err != nil {
		return user.User{}, "", err
	}
	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (user.User, string, error) {
	token, err := u.jwt.GenerateToken(usr.ID, string(usr.Role))
	if err != nil {
		return user.User{}, "", internal(err)
	}
	return usr, token, nil
}

// ForgotPassword only validates input. The answer never depends on whether
// the account exists and no mail is sent.
func (u *Auth) ForgotPassword(ctx context.Context, email string) error {
	if user.NormalizeEmail(email) == "" {
		return invalid("Email is required")
	}
	u.logger.Debug("password reset requested", "known", u.authSvc.Known(ctx, email))
	return nil
}

func (u *Auth) Authenticate(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, ErrUnauthorized
	}
	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		return user.User{}, ErrTokenInvalid
	}
	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInactiveAccount
		}
		return user.User{}, internal(err)
	}
	if !usr.IsActive {
		return user.User{}, ErrInactiveAccount
	}
	usr.PasswordHash = ""
	return usr, nil
}
