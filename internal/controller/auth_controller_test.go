package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type stubUserStore struct {
	nextID uint
	users  []*model.User
}

func (s *stubUserStore) Create(user *model.User) error {
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

func (s *stubUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *stubUserStore) FindByVerificationToken(token string) (*model.User, error) {
	for _, u := range s.users {
		if u.VerificationToken == token && token != "" &&
			u.VerificationTokenExpiry != nil && u.VerificationTokenExpiry.After(time.Now()) {
			return u, nil
		}
	}
	return nil, util.ErrTokenInvalid
}

func (s *stubUserStore) FindByResetToken(token string) (*model.User, error) {
	for _, u := range s.users {
		if u.ResetPasswordToken == token && token != "" &&
			u.ResetPasswordExpiry != nil && u.ResetPasswordExpiry.After(time.Now()) {
			return u, nil
		}
	}
	return nil, util.ErrTokenInvalid
}

func (s *stubUserStore) Update(user *model.User) error { return nil }

func (s *stubUserStore) UpdatePassword(user *model.User, plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

type noopMailer struct{}

func (noopMailer) SendVerificationEmail(to, token string) error  { return nil }
func (noopMailer) SendPasswordResetEmail(to, token string) error { return nil }

func newAuthTestRouter() (*gin.Engine, *stubUserStore) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-test-secret-0123456789"
	cfg.JWT.ExpireTime = 24 * time.Hour

	store := &stubUserStore{}
	auth := service.NewAuthService(store, noopMailer{}, service.NewTokenService(cfg))
	ctrl := NewAuthController(auth, cfg)

	router := gin.New()
	router.POST("/api/auth/register", ctrl.Register)
	router.POST("/api/auth/verify-email/:token", ctrl.VerifyEmail)
	router.PUT("/api/auth/reset-password/:token", ctrl.ResetPassword)
	return router, store
}

func TestRegisterIgnoresRoleInPayload(t *testing.T) {
	router, store := newAuthTestRouter()

	body := `{"name":"Mallory","email":"mallory@example.com","password":"secret123","role":"admin"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if len(store.users) != 1 {
		t.Fatal("user was not created")
	}
	if store.users[0].Role != model.Student {
		t.Errorf("registration stored role %q, want student", store.users[0].Role)
	}
}

func TestVerifyEmailTokenFromPath(t *testing.T) {
	router, store := newAuthTestRouter()

	body := `{"name":"A","email":"a@example.com","password":"secret123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", w.Code)
	}

	token := store.users[0].VerificationToken
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/verify-email/"+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("verify status = %d, want 200", w.Code)
	}
	if !store.users[0].IsEmailVerified {
		t.Error("user not verified via path-carried token")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/auth/verify-email/bogus", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bogus token status = %d, want 400", w.Code)
	}
}

func TestResetPasswordTokenFromPath(t *testing.T) {
	router, store := newAuthTestRouter()

	body := `{"name":"A","email":"a@example.com","password":"secret123"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", w.Code)
	}

	expiry := time.Now().Add(time.Hour)
	store.users[0].ResetPasswordToken = "reset-token-abc"
	store.users[0].ResetPasswordExpiry = &expiry

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/auth/reset-password/reset-token-abc", strings.NewReader(`{"password":"newpass456"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("reset status = %d, want 200", w.Code)
	}
	if bcrypt.CompareHashAndPassword([]byte(store.users[0].Password), []byte("newpass456")) != nil {
		t.Error("password not replaced via path-carried token")
	}
}

func TestRespondErrorOwnRoleChangeIsForbidden(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/users/1/role", nil)

	respondError(c, util.ErrOwnRoleChange)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
