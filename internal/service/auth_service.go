package service

import (
	"errors"
	"time"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByVerificationToken(token string) (*model.User, error)
	FindByResetToken(token string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(user *model.User, plaintext string) error
}

// Mailer sends the verification and reset emails.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

type AuthService struct {
	users  UserStore
	mailer Mailer
	tokens *TokenService

	now      func() time.Time
	newToken func() (string, error)
}

func NewAuthService(users UserStore, mailer Mailer, tokens *TokenService) *AuthService {
	return &AuthService{
		users:    users,
		mailer:   mailer,
		tokens:   tokens,
		now:      time.Now,
		newToken: GenerateOpaqueToken,
	}
}

// AuthResult is what a successful auth flow hands back to the controller.
type AuthResult struct {
	User  *model.User
	Token string
	// NeedsVerification is set when login succeeded against an unverified
	// account: a fresh verification email was sent and no session was issued.
	NeedsVerification bool
}

// Register creates an account and sends the verification email. A failure to
// send the email does not fail registration, the user can ask for a resend.
// Every account starts as a student; role changes go through an admin.
func (s *AuthService) Register(name, email, password string) (*AuthResult, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(verificationTokenTTL)

	user := &model.User{
		Name:                    name,
		Email:                   email,
		Password:                password,
		Role:                    model.Student,
		VerificationToken:       token,
		VerificationTokenExpiry: &expiry,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(user.Email, token); err != nil {
		logger.Log.Warn("Failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}

	session, err := s.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session}, nil
}

// Login checks credentials. An unverified account with a correct password
// gets a rotated verification token and a fresh email instead of a session.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, util.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		token, err := s.newToken()
		if err != nil {
			return nil, err
		}
		expiry := s.now().Add(verificationTokenTTL)
		user.VerificationToken = token
		user.VerificationTokenExpiry = &expiry
		if err := s.users.Update(user); err != nil {
			return nil, err
		}
		if err := s.mailer.SendVerificationEmail(user.Email, token); err != nil {
			logger.Log.Warn("Failed to resend verification email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
		return &AuthResult{User: user, NeedsVerification: true}, nil
	}

	session, err := s.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session}, nil
}

// ResendVerification rotates the verification token for an unverified account.
func (s *AuthService) ResendVerification(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return util.ErrAlreadyVerified
	}

	token, err := s.newToken()
	if err != nil {
		return err
	}
	expiry := s.now().Add(verificationTokenTTL)
	user.VerificationToken = token
	user.VerificationTokenExpiry = &expiry
	if err := s.users.Update(user); err != nil {
		return err
	}
	return s.mailer.SendVerificationEmail(user.Email, token)
}

// VerifyEmail consumes a live verification token and logs the user in.
func (s *AuthService) VerifyEmail(token string) (*AuthResult, error) {
	user, err := s.users.FindByVerificationToken(token)
	if err != nil {
		return nil, err
	}

	user.IsEmailVerified = true
	user.VerificationToken = ""
	user.VerificationTokenExpiry = nil
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	session, err := s.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session}, nil
}

// ForgotPassword issues a reset token and mails it. Unlike registration the
// email must go through: if it cannot be sent the token is rolled back so a
// stale token never sits on the account.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	token, err := s.newToken()
	if err != nil {
		return err
	}
	expiry := s.now().Add(resetTokenTTL)
	user.ResetPasswordToken = token
	user.ResetPasswordExpiry = &expiry
	if err := s.users.Update(user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpiry = nil
		if rollbackErr := s.users.Update(user); rollbackErr != nil {
			logger.Log.Error("Failed to roll back reset token",
				zap.String("email", user.Email),
				zap.Error(rollbackErr),
			)
		}
		return err
	}
	return nil
}

// ResetPassword consumes a live reset token and replaces the password.
func (s *AuthService) ResetPassword(token, newPassword string) (*AuthResult, error) {
	user, err := s.users.FindByResetToken(token)
	if err != nil {
		return nil, err
	}

	user.ResetPasswordToken = ""
	user.ResetPasswordExpiry = nil
	if err := s.users.UpdatePassword(user, newPassword); err != nil {
		return nil, err
	}

	session, err := s.tokens.IssueSessionToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: session}, nil
}
