package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"edu_portfolio_backend/internal/config"
	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"
	"edu_portfolio_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type fakeUserFinder struct {
	users map[uint]*model.User
}

func (f *fakeUserFinder) FindByID(id uint) (*model.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, util.ErrUserNotFound
}

func testTokenService() *service.TokenService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret-0123456789ab"
	cfg.JWT.ExpireTime = 24 * time.Hour
	return service.NewTokenService(cfg)
}

func newProtectedRouter(tokens *service.TokenService, users UserFinder, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(tokens, users)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := newProtectedRouter(testTokenService(), &fakeUserFinder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := newProtectedRouter(testTokenService(), &fakeUserFinder{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	tokens := testTokenService()
	router := newProtectedRouter(tokens, &fakeUserFinder{users: map[uint]*model.User{}})

	token, err := tokens.IssueSessionToken(9)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("token for a deleted user: status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareAcceptsBearerAndCookie(t *testing.T) {
	tokens := testTokenService()
	user := &model.User{Role: model.Student}
	user.ID = 9
	router := newProtectedRouter(tokens, &fakeUserFinder{users: map[uint]*model.User{9: user}})

	token, err := tokens.IssueSessionToken(9)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRoleMiddlewareStrictMembership(t *testing.T) {
	tokens := testTokenService()
	student := &model.User{Role: model.Student}
	student.ID = 1
	teacher := &model.User{Role: model.Teacher}
	teacher.ID = 2
	admin := &model.User{Role: model.Admin}
	admin.ID = 3
	finder := &fakeUserFinder{users: map[uint]*model.User{1: student, 2: teacher, 3: admin}}

	router := newProtectedRouter(tokens, finder, RoleMiddleware(model.Teacher))

	cases := []struct {
		name   string
		userID uint
		want   int
	}{
		{"student blocked", 1, http.StatusForbidden},
		{"teacher allowed", 2, http.StatusOK},
		// Membership is strict, admins do not inherit teacher routes.
		{"admin blocked", 3, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := tokens.IssueSessionToken(tc.userID)
			if err != nil {
				t.Fatalf("IssueSessionToken: %v", err)
			}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	tokens := testTokenService()
	user := &model.User{Role: model.Student}
	user.ID = 5
	finder := &fakeUserFinder{users: map[uint]*model.User{5: user}}

	router := gin.New()
	router.GET("/public", OptionalAuth(tokens, finder), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": 0})
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		token, err := tokens.IssueSessionToken(5)
		if err != nil {
			t.Fatalf("IssueSessionToken: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("invalid token still anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer junk")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
