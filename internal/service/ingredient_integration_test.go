//go:build integration

package service

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeai/backend/internal/model"
)

// setupPostgres starts a containerized PostgreSQL and migrates the schema.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("recipeai_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.Ingredient{}, &model.Recipe{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestIngredientService_UpsertIdempotent_Postgres(t *testing.T) {
	svc := NewIngredientService(setupPostgres(t), 5)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, &model.Ingredient{Name: "Apple", Quantity: 2, IsVegetableOrFruit: true})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, &model.Ingredient{Name: "Apple", Quantity: 7, IsVegetableOrFruit: true})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 7, second.Quantity)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecipeService_JSONBRoundTrip_Postgres(t *testing.T) {
	svc := NewRecipeService(setupPostgres(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.Recipe{
		Name:         "Egg Fried Rice",
		IsRecipe:     true,
		Items:        model.JSONBStringArray{"2 cups rice", "6 eggs"},
		Instructions: model.JSONBStringArray{"Cook rice", "Fry eggs"},
	})
	require.NoError(t, err)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, created.ID, stored[0].ID)
	assert.Equal(t, model.JSONBStringArray{"2 cups rice", "6 eggs"}, stored[0].Items)
}
