package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hearthplan/backend/internal/database"
	"github.com/hearthplan/backend/internal/service"
)

// TestDB holds the test database and the services handlers need.
type TestDB struct {
	DB          *gorm.DB
	AuthService *service.AuthService
}

// SetupTestDB opens a fresh in-memory database with the full schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:          db,
		AuthService: service.NewAuthService(db, "test-secret"),
	}
}

// CreateTestUserAndToken registers a user and returns a valid token.
func CreateTestUserAndToken(t *testing.T, testDB *TestDB) string {
	t.Helper()

	token, err := testDB.AuthService.Register(context.Background(),
		"Test User", fmt.Sprintf("%s@example.com", t.Name()), "testpassword123")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return token
}

// SetupTestRouter builds a router with every handler registered,
// without Redis or S3.
func SetupTestRouter(t *testing.T) (*gin.Engine, *TestDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := SetupTestDB(t)

	router := gin.New()
	router.Use(gin.Recovery())
	SetupAPI(router, testDB.DB, nil, nil, "test-secret")

	return router, testDB
}

// PerformRequest makes an unauthenticated JSON request.
func PerformRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	return PerformRequestWithToken(router, method, path, body, "")
}

// PerformRequestWithToken makes a JSON request with a bearer token.
func PerformRequestWithToken(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	router.ServeHTTP(w, req)
	return w
}
