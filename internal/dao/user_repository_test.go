package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "ln_",
			SingularTable: true,
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db, zap.NewNop())
}

// 纯密码注册可以不带邮箱，邮箱唯一约束只针对已填写的邮箱
func TestUserRepository_CreateWithoutEmail(t *testing.T) {
	repo := NewUserRepository(newTestDao(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "alice", Password: "h1"}); err != nil {
		t.Fatalf("first create without email failed: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "bob", Password: "h2"}); err != nil {
		t.Fatalf("second create without email failed: %v", err)
	}

	// 已填写的邮箱仍然唯一
	if _, err := repo.Create(ctx, &domain.User{Username: "carol", Email: "carol@lab.org", Password: "h3"}); err != nil {
		t.Fatalf("create with email failed: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "dave", Email: "carol@lab.org", Password: "h4"}); err == nil {
		t.Error("duplicate email must be rejected")
	}
}

// 空邮箱存为 NULL，读回仍是空字符串
func TestUserRepository_EmailRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "alice", Password: "h1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByUID(ctx, created.UID)
	if err != nil {
		t.Fatalf("GetByUID failed: %v", err)
	}
	if got.Email != "" {
		t.Errorf("expected empty email, got %q", got.Email)
	}

	if _, err := repo.GetByEmail(ctx, "alice@lab.org"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
