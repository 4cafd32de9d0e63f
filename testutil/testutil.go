// Package testutil sets up the pieces controller tests share: an isolated
// in-memory database, a fully mounted router, and canned identities.
package testutil

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gtwndtl/travelbook-backend/config"
	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/router"
	"github.com/gtwndtl/travelbook-backend/services"
)

const Secret = "test-secret-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens a private in-memory database and migrates the schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.SetupDatabase(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

// NewJwt returns the wrapper every test router signs with.
func NewJwt() *services.JwtWrapper {
	return &services.JwtWrapper{SecretKey: Secret, Issuer: "travelbook-test", TTL: time.Hour}
}

// FakeStore records saves without touching disk.
type FakeStore struct {
	Saved []string
}

func (s *FakeStore) Save(file *multipart.FileHeader) (string, error) {
	url := "https://img.test/" + file.Filename
	s.Saved = append(s.Saved, url)
	return url, nil
}

// FakeVerifier returns a fixed profile for any token, or an error when set.
type FakeVerifier struct {
	Profile services.SocialProfile
	Err     error
}

func (v *FakeVerifier) Verify(_ context.Context, _ string) (services.SocialProfile, error) {
	if v.Err != nil {
		return services.SocialProfile{}, v.Err
	}
	return v.Profile, nil
}

// NewRouter mounts both API surfaces over db with test collaborators.
func NewRouter(t *testing.T, db *gorm.DB, verifiers map[string]services.ProviderVerifier) *gin.Engine {
	t.Helper()
	return router.Setup(router.Deps{
		DB:        db,
		Jwt:       NewJwt(),
		Store:     &FakeStore{},
		Verifiers: verifiers,
	})
}

// CreateUser inserts an account with a bcrypt password of "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string, role entity.Role) *entity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Test " + string(role),
		Role:     role,
		Provider: entity.ProviderEmail,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// Token signs a token for u with the shared test secret.
func Token(t *testing.T, u *entity.User) string {
	t.Helper()
	token, err := NewJwt().GenerateToken(u)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
