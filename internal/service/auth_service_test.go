package service

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// memoryUserStore implements UserStore in memory with the same contract as
// the real repository: passwords are hashed on Create and UpdatePassword,
// token lookups honor expiry.
type memoryUserStore struct {
	nextID uint
	users  []*model.User
}

func (s *memoryUserStore) Create(user *model.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.Email = strings.ToLower(user.Email)
	s.nextID++
	user.ID = s.nextID
	s.users = append(s.users, user)
	return nil
}

func (s *memoryUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *memoryUserStore) FindByVerificationToken(token string) (*model.User, error) {
	for _, u := range s.users {
		if u.VerificationToken == token && token != "" &&
			u.VerificationTokenExpiry != nil && u.VerificationTokenExpiry.After(time.Now()) {
			return u, nil
		}
	}
	return nil, util.ErrTokenInvalid
}

func (s *memoryUserStore) FindByResetToken(token string) (*model.User, error) {
	for _, u := range s.users {
		if u.ResetPasswordToken == token && token != "" &&
			u.ResetPasswordExpiry != nil && u.ResetPasswordExpiry.After(time.Now()) {
			return u, nil
		}
	}
	return nil, util.ErrTokenInvalid
}

func (s *memoryUserStore) Update(user *model.User) error {
	return nil
}

func (s *memoryUserStore) UpdatePassword(user *model.User, plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

type recordingMailer struct {
	verificationSent []string
	resetSent        []string
	failVerification bool
	failReset        bool
}

func (m *recordingMailer) SendVerificationEmail(to, token string) error {
	if m.failVerification {
		return errors.New("smtp unavailable")
	}
	m.verificationSent = append(m.verificationSent, to)
	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(to, token string) error {
	if m.failReset {
		return errors.New("smtp unavailable")
	}
	m.resetSent = append(m.resetSent, to)
	return nil
}

func newTestAuthService() (*AuthService, *memoryUserStore, *recordingMailer) {
	store := &memoryUserStore{}
	mailer := &recordingMailer{}
	svc := NewAuthService(store, mailer, newTestTokenService())
	return svc, store, mailer
}

func TestRegister(t *testing.T) {
	svc, store, mailer := newTestAuthService()

	result, err := svc.Register("Aziza", "Aziza@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user := result.User
	if user.Email != "aziza@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}
	if user.Role != model.Student {
		t.Errorf("role = %q, want student default", user.Role)
	}
	if user.IsEmailVerified {
		t.Error("new user must start unverified")
	}
	if len(user.VerificationToken) != 64 {
		t.Errorf("verification token length = %d, want 64", len(user.VerificationToken))
	}
	if user.VerificationTokenExpiry == nil {
		t.Fatal("verification token expiry not set")
	}
	ttl := time.Until(*user.VerificationTokenExpiry)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("verification token ttl = %v, want ~24h", ttl)
	}
	if len(mailer.verificationSent) != 1 || mailer.verificationSent[0] != user.Email {
		t.Errorf("verification email not sent to the new user: %v", mailer.verificationSent)
	}
	if bcrypt.CompareHashAndPassword([]byte(store.users[0].Password), []byte("secret123")) != nil {
		t.Error("stored password is not a hash of the plaintext")
	}
	if result.Token == "" {
		t.Error("no session token returned")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register("A", "dup@example.com", "secret123"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register("B", "DUP@example.com", "other456"); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("got %v, want ErrEmailRegistered", err)
	}
}

func TestRegisterAlwaysCreatesStudents(t *testing.T) {
	svc, store, _ := newTestAuthService()

	result, err := svc.Register("Mallory", "mallory@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Role != model.Student {
		t.Errorf("registration minted role %q, want student", result.User.Role)
	}
	if store.users[0].Role != model.Student {
		t.Errorf("stored role %q, want student", store.users[0].Role)
	}
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	svc, store, mailer := newTestAuthService()
	mailer.failVerification = true

	result, err := svc.Register("A", "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register must not fail when the email does: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatal("user was not created")
	}
	if result.User.VerificationToken == "" {
		t.Error("verification token must survive for a later resend")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("a@example.com", "wrongpass"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnverified(t *testing.T) {
	svc, store, mailer := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldToken := store.users[0].VerificationToken

	result, err := svc.Login("a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.NeedsVerification {
		t.Error("NeedsVerification not set for unverified account")
	}
	if result.Token != "" {
		t.Error("no session may be issued before verification")
	}
	if store.users[0].VerificationToken == oldToken {
		t.Error("verification token was not rotated")
	}
	if len(mailer.verificationSent) != 2 {
		t.Errorf("expected a fresh verification email, sent = %v", mailer.verificationSent)
	}
}

func TestLoginVerified(t *testing.T) {
	svc, store, _ := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	store.users[0].IsEmailVerified = true

	result, err := svc.Login("a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.NeedsVerification {
		t.Error("NeedsVerification set on verified account")
	}

	userID, err := svc.tokens.VerifySessionToken(result.Token)
	if err != nil {
		t.Fatalf("session token does not verify: %v", err)
	}
	if userID != result.User.ID {
		t.Errorf("session token carries id %d, want %d", userID, result.User.ID)
	}
}

func TestResendVerification(t *testing.T) {
	svc, store, _ := newTestAuthService()

	if err := svc.ResendVerification("nobody@example.com"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}

	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldToken := store.users[0].VerificationToken

	if err := svc.ResendVerification("a@example.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	if store.users[0].VerificationToken == oldToken {
		t.Error("verification token was not rotated")
	}

	store.users[0].IsEmailVerified = true
	if err := svc.ResendVerification("a@example.com"); !errors.Is(err, util.ErrAlreadyVerified) {
		t.Errorf("got %v, want ErrAlreadyVerified", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	svc, store, _ := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user := store.users[0]

	if _, err := svc.VerifyEmail("bogus"); !errors.Is(err, util.ErrTokenInvalid) {
		t.Errorf("bogus token: got %v, want ErrTokenInvalid", err)
	}

	token := user.VerificationToken
	result, err := svc.VerifyEmail(token)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !user.IsEmailVerified {
		t.Error("user not marked verified")
	}
	if user.VerificationToken != "" || user.VerificationTokenExpiry != nil {
		t.Error("verification token pair not cleared")
	}
	if result.Token == "" {
		t.Error("verification must log the user in")
	}

	// The consumed token is single-use.
	if _, err := svc.VerifyEmail(token); !errors.Is(err, util.ErrTokenInvalid) {
		t.Errorf("second verify with the same token: got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	svc, store, _ := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user := store.users[0]
	expired := time.Now().Add(-time.Minute)
	user.VerificationTokenExpiry = &expired

	if _, err := svc.VerifyEmail(user.VerificationToken); !errors.Is(err, util.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid for expired token", err)
	}
}

func TestForgotPassword(t *testing.T) {
	svc, store, mailer := newTestAuthService()

	if err := svc.ForgotPassword("nobody@example.com"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}

	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ForgotPassword("a@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	user := store.users[0]
	if user.ResetPasswordToken == "" || user.ResetPasswordExpiry == nil {
		t.Fatal("reset token pair not set")
	}
	ttl := time.Until(*user.ResetPasswordExpiry)
	if ttl < 55*time.Minute || ttl > 65*time.Minute {
		t.Errorf("reset token ttl = %v, want ~1h", ttl)
	}
	if len(mailer.resetSent) != 1 {
		t.Errorf("reset email not sent: %v", mailer.resetSent)
	}
}

func TestForgotPasswordMailFailureRollsBack(t *testing.T) {
	svc, store, mailer := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	mailer.failReset = true

	if err := svc.ForgotPassword("a@example.com"); err == nil {
		t.Fatal("ForgotPassword must propagate the email failure")
	}
	user := store.users[0]
	if user.ResetPasswordToken != "" || user.ResetPasswordExpiry != nil {
		t.Error("reset token must be rolled back when the email fails")
	}
}

func TestResetPassword(t *testing.T) {
	svc, store, _ := newTestAuthService()
	if _, err := svc.Register("A", "a@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	store.users[0].IsEmailVerified = true

	if _, err := svc.ResetPassword("bogus", "newpass456"); !errors.Is(err, util.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}

	if err := svc.ForgotPassword("a@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	token := store.users[0].ResetPasswordToken

	result, err := svc.ResetPassword(token, "newpass456")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if result.Token == "" {
		t.Error("reset must log the user in")
	}
	user := store.users[0]
	if user.ResetPasswordToken != "" || user.ResetPasswordExpiry != nil {
		t.Error("reset token pair not cleared")
	}

	if _, err := svc.Login("a@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Error("old password still works after reset")
	}
	if _, err := svc.Login("a@example.com", "newpass456"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// The consumed token is dead.
	if _, err := svc.ResetPassword(token, "again789"); !errors.Is(err, util.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid for consumed token", err)
	}
}
