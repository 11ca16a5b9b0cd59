package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"exam-proctor-be/internal/entity"
	"exam-proctor-be/internal/repository/specification"
	"exam-proctor-be/internal/repository/unitofwork"
	"exam-proctor-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestProctorRepositories(t *testing.T) {
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

	assert.NotNil(t, uow.ExamSessionRepository())
	assert.NotNil(t, uow.DetectionEventRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Session lifecycle with counters", func(t *testing.T) {
		ctx := context.Background()

		session := &entity.ExamSession{
			Id:             uuid.New(),
			SessionId:      uuid.New(),
			CandidateName:  "Integration Test",
			CandidateEmail: "integration-" + uuid.New().String() + "@example.com",
			StartedAt:      time.Now(),
			IntegrityScore: 100,
			CreatedAt:      time.Now(),
		}

		txUow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		assert.NoError(t, txUow.ExamSessionRepository().Create(ctx, session))

		locked, err := txUow.ExamSessionRepository().FindOneForUpdate(ctx,
			specification.ByPublicSessionID{SessionID: session.SessionId},
		)
		assert.NoError(t, err)
		assert.NotNil(t, locked)

		assert.NoError(t, txUow.ExamSessionRepository().IncrementCounter(ctx, locked, "focus_lost"))
		assert.NoError(t, txUow.ExamSessionRepository().UpdateScore(ctx, locked, 98))

		event := &entity.DetectionEvent{
			Id:          uuid.New(),
			SessionId:   session.Id,
			EventType:   "focus_lost",
			Description: "integration test event",
			DetectedAt:  time.Now(),
			CreatedAt:   time.Now(),
		}
		assert.NoError(t, txUow.DetectionEventRepository().Create(ctx, event))

		reloaded, err := txUow.ExamSessionRepository().FindOne(ctx,
			specification.ByPublicSessionID{SessionID: session.SessionId},
		)
		assert.NoError(t, err)
		assert.Equal(t, 1, reloaded.Counters.FocusLost)
		assert.Equal(t, 98, reloaded.IntegrityScore)

		count, err := txUow.DetectionEventRepository().Count(ctx,
			specification.BySessionID{SessionID: session.Id},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Rollback in defer keeps the database clean.
	})

	t.Run("Concurrent increments never lose a count", func(t *testing.T) {
		ctx := context.Background()
		const workers = 8

		session := &entity.ExamSession{
			Id:             uuid.New(),
			SessionId:      uuid.New(),
			CandidateName:  "Concurrency Test",
			CandidateEmail: "concurrency-" + uuid.New().String() + "@example.com",
			StartedAt:      time.Now(),
			IntegrityScore: 100,
			CreatedAt:      time.Now(),
		}

		setupUow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, setupUow.Begin(ctx))
		assert.NoError(t, setupUow.ExamSessionRepository().Create(ctx, session))
		assert.NoError(t, setupUow.Commit())
		defer gormDB.Exec("DELETE FROM exam_sessions WHERE id = ?", session.Id)

		// Each worker runs its own transaction; the row lock taken by
		// FindOneForUpdate serializes them, and the in-database increment
		// means no worker can overwrite another's count.
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				workerUow := uowFactory.NewUnitOfWork(ctx)
				if err := workerUow.Begin(ctx); err != nil {
					errs <- err
					return
				}
				defer workerUow.Rollback()

				locked, err := workerUow.ExamSessionRepository().FindOneForUpdate(ctx,
					specification.ByPublicSessionID{SessionID: session.SessionId},
				)
				if err != nil {
					errs <- err
					return
				}
				if err := workerUow.ExamSessionRepository().IncrementCounter(ctx, locked, "focus_lost"); err != nil {
					errs <- err
					return
				}
				errs <- workerUow.Commit()
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		reloaded, err := uowFactory.NewUnitOfWork(ctx).ExamSessionRepository().FindOne(ctx,
			specification.ByPublicSessionID{SessionID: session.SessionId},
		)
		assert.NoError(t, err)
		assert.Equal(t, workers, reloaded.Counters.FocusLost)
	})
}
