package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"reflect360-be/internal/entity"
	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"
	"reflect360-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.FeedbackRepository())
	assert.NotNil(t, uow.NotificationRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Feedback Repository", func(t *testing.T) {
		count, err := uow.FeedbackRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Feedback response count: %d", count)
	})

	t.Run("Check Transactional Response Submission", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:           userId,
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: "not-a-real-hash",
			FullName:     "Integration Test User",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		response := &entity.FeedbackResponse{
			Id:           uuid.New(),
			SurveyId:     userId,
			Relationship: entity.RelationshipPeer,
			QChange:      "Integration test change",
			QActions:     "Integration test actions",
			CreatedAt:    time.Now(),
		}

		err = uow.FeedbackRepository().Create(ctx, response)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		found, err := uow.FeedbackRepository().FindAll(
			context.Background(),
			specification.BySurveyID{SurveyID: userId},
		)
		assert.NoError(t, err)
		assert.Len(t, found, 1)

		t.Log("Successfully created FeedbackResponse in Transaction")
	})
}
