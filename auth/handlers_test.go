package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", Register(db))
	r.POST("/auth/login", Login(db))
	return r
}

func post(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newAuthRouter(db)

	register := map[string]interface{}{
		"name":     "Pat",
		"email":    "pat@example.com",
		"password": "hunter22",
		"role":     "seller",
	}
	if w := post(t, r, "/auth/register", register); w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	// Duplicate registration conflicts.
	if w := post(t, r, "/auth/register", register); w.Code != http.StatusConflict {
		t.Errorf("duplicate register returned %d, want 409", w.Code)
	}

	// Seller role is requested, not granted, at registration.
	var user models.User
	if err := db.First(&user, "email = ?", "pat@example.com").Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.Role != models.RoleUser || !user.SellerRequested {
		t.Errorf("registered as role=%s requested=%v, want user/true", user.Role, user.SellerRequested)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	w := post(t, r, "/auth/login", map[string]interface{}{"email": "pat@example.com", "password": "hunter22"})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("expected token, got %q (err %v)", resp.Token, err)
	}

	claims, err := ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "pat@example.com" || claims.Role != models.RoleUser {
		t.Errorf("claims = %+v", claims)
	}

	if w := post(t, r, "/auth/login", map[string]interface{}{"email": "pat@example.com", "password": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("bad password returned %d, want 401", w.Code)
	}
}
