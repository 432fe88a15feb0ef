package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/h-rawat/book-api/internal/lib/jwt"
	sl "github.com/h-rawat/book-api/internal/lib/logger"
	"github.com/h-rawat/book-api/internal/lib/validation"
	"github.com/h-rawat/book-api/internal/models"
	"github.com/h-rawat/book-api/internal/storage"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserExists            = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// ValidationError carries every rule the input violated.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordInput struct {
	Token       string `json:"-"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type UserSaver interface {
	SaveUser(ctx context.Context, username string, passHash []byte) (uid int64, err error)
	SetResetToken(ctx context.Context, uid int64, tokenHash string, expiresAt time.Time) error
	// ResetPassword replaces the password of the user holding tokenHash if it is
	// unexpired at now, clearing the token in the same write.
	ResetPassword(ctx context.Context, tokenHash string, now time.Time, passHash []byte) (uid int64, err error)
}

type UserProvider interface {
	User(ctx context.Context, username string) (models.User, error)
}

type PasswordHasher interface {
	Hash(plain string) ([]byte, error)
	Verify(plain string, hash []byte) bool
}

type TokenIssuer interface {
	NewToken(user models.User) (string, error)
}

type Notifier interface {
	RegistrationConfirmed(ctx context.Context, email string) error
	PasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error
}

type Auth struct {
	log            *slog.Logger
	validate       *validator.Validate
	usrSaver       UserSaver
	usrProvider    UserProvider
	hasher         PasswordHasher
	tokens         TokenIssuer
	notifier       Notifier
	resetTTL       time.Duration
	concealUnknown bool
	now            func() time.Time
}

type Option func(*Auth)

// WithClock overrides the time source used for reset token expiry.
func WithClock(now func() time.Time) Option {
	return func(a *Auth) {
		a.now = now
	}
}

// WithConcealedAccounts makes ForgotPassword succeed silently for unknown e-mails.
func WithConcealedAccounts(conceal bool) Option {
	return func(a *Auth) {
		a.concealUnknown = conceal
	}
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	userSaver UserSaver,
	userProvider UserProvider,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier Notifier,
	resetTTL time.Duration,
	opts ...Option,
) *Auth {
	a := &Auth{
		log:         log,
		validate:    validate,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		hasher:      hasher,
		tokens:      tokens,
		notifier:    notifier,
		resetTTL:    resetTTL,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Auth) RegisterNewUser(ctx context.Context, in RegisterInput) (int64, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(slog.String("op", op))

	if err := a.check(in); err != nil {
		return 0, err
	}

	passHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.usrSaver.SaveUser(ctx, in.Username, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("failed to save user", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// The account exists at this point; a failed confirmation must not undo it.
	if err := a.notifier.RegistrationConfirmed(ctx, in.Username); err != nil {
		log.Error("failed to queue registration confirmation", slog.Int64("uid", id), sl.Err(err))
	}

	log.Info("user registered", slog.Int64("uid", id))

	return id, nil
}

// Login checks credentials and returns a session token. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, in LoginInput) (string, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	if err := a.check(in); err != nil {
		return "", err
	}

	user, err := a.usrProvider.User(ctx, in.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("user not found")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get user", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !a.hasher.Verify(in.Password, user.PassHash) {
		log.Info("invalid credentials", slog.Int64("uid", user.ID))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.tokens.NewToken(user)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.Int64("uid", user.ID))

	return token, nil
}

// ForgotPassword issues a reset token valid for the configured TTL and e-mails it.
// A newer request supersedes any outstanding token.
func (a *Auth) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	const op = "auth.ForgotPassword"

	log := a.log.With(slog.String("op", op))

	if err := a.check(in); err != nil {
		return err
	}

	user, err := a.usrProvider.User(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("user not found")

			if a.concealUnknown {
				return nil
			}

			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to get user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := jwt.NewResetToken()
	if err != nil {
		log.Error("failed to generate reset token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	expiresAt := a.now().Add(a.resetTTL)

	if err := a.usrSaver.SetResetToken(ctx, user.ID, jwt.HashResetToken(token), expiresAt); err != nil {
		log.Error("failed to save reset token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.notifier.PasswordReset(ctx, user.Username, token, expiresAt); err != nil {
		log.Error("failed to queue reset e-mail", slog.Int64("uid", user.ID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password reset requested", slog.Int64("uid", user.ID))

	return nil
}

// ResetPassword consumes a reset token. Unknown and expired tokens are
// indistinguishable to the caller.
func (a *Auth) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	const op = "auth.ResetPassword"

	log := a.log.With(slog.String("op", op))

	if err := a.check(in); err != nil {
		return err
	}

	if in.Token == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidOrExpiredToken)
	}

	passHash, err := a.hasher.Hash(in.NewPassword)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	uid, err := a.usrSaver.ResetPassword(ctx, jwt.HashResetToken(in.Token), a.now(), passHash)
	if err != nil {
		if errors.Is(err, storage.ErrResetTokenNotFound) {
			log.Info("reset token rejected")
			return fmt.Errorf("%s: %w", op, ErrInvalidOrExpiredToken)
		}

		log.Error("failed to reset password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password reset", slog.Int64("uid", uid))

	return nil
}

func (a *Auth) check(in any) error {
	if err := a.validate.Struct(in); err != nil {
		return &ValidationError{Errors: validation.Messages(err)}
	}

	return nil
}
