package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoIntroductionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(ctx, &models.Introduction{IntroductionID: "i-1", Status: models.StatusRequested})
		assert.NoError(mt, err)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		ns := mt.DB.Name() + "." + IntroductionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "introduction_id", Value: "i-1"},
			{Key: "user_id", Value: "u-1"},
			{Key: "introduction_type", Value: "GENERAL"},
			{Key: "status", Value: "REQUESTED"},
			{Key: "last_interacted", Value: nil},
		}))

		intro, err := repo.GetByID(ctx, "i-1")
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", intro.UserID)
		assert.Equal(mt, models.StatusRequested, intro.Status)
		assert.Nil(mt, intro.LastInteracted)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		ns := mt.DB.Name() + "." + IntroductionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		ns := mt.DB.Name() + "." + IntroductionCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "introduction_id", Value: "i-2"}, {Key: "user_id", Value: "u-1"}},
			bson.D{{Key: "introduction_id", Value: "i-1"}, {Key: "user_id", Value: "u-1"}},
		))

		intros, err := repo.Find(ctx, IntroductionQuery{UserID: "u-1", Limit: 5})
		require.NoError(mt, err)
		require.Len(mt, intros, 2)
		assert.Equal(mt, "i-2", intros[0].IntroductionID)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		status := models.StatusAccepted
		err := repo.Update(ctx, "missing", IntroductionUpdate{Status: &status, UpdatedAt: time.Now()})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewMongoIntroductionRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		status := models.StatusAccepted
		now := time.Now()
		err := repo.Update(ctx, "i-1", IntroductionUpdate{Status: &status, LastInteracted: &now, UpdatedAt: now})
		assert.NoError(mt, err)
	})
}

func TestMongoNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("mark all as read", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 3}, {Key: "nModified", Value: 3}})

		modified, err := repo.MarkAllAsRead(ctx, "u-1", time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), modified)
	})

	mt.Run("count unread", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		ns := mt.DB.Name() + "." + NotificationCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 2}}))

		count, err := repo.CountUnread(ctx, "u-1")
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), count)
	})

	mt.Run("update status not found", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.UpdateStatus(ctx, "missing", nil, time.Now())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoCompanyMemberRepository_CountByCompanyIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("groups counts by company", func(mt *mtest.T) {
		repo := NewMongoCompanyMemberRepository(mt.DB)
		ns := mt.DB.Name() + "." + CompanyMemberCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c-1"}, {Key: "count", Value: int64(4)}},
			bson.D{{Key: "_id", Value: "c-2"}, {Key: "count", Value: int64(1)}},
		))

		counts, err := repo.CountByCompanyIDs(ctx, []string{"c-1", "c-2", "c-3"})
		require.NoError(mt, err)
		assert.Equal(mt, map[string]int64{"c-1": 4, "c-2": 1}, counts)
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoCompanyMemberRepository(mt.DB)

		counts, err := repo.CountByCompanyIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, counts)
	})
}

func TestMongoCompanyRepository_GetByName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("found", func(mt *mtest.T) {
		repo := NewMongoCompanyRepository(mt.DB)
		ns := mt.DB.Name() + "." + CompanyCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "company_id", Value: "c-1"},
			{Key: "company_name", Value: "Acme"},
			{Key: "status", Value: "UNCLAIMED"},
		}))

		company, err := repo.GetByName(ctx, "ACME")
		require.NoError(mt, err)
		assert.Equal(mt, "c-1", company.CompanyID)
		assert.Equal(mt, models.CompanyUnclaimed, company.Status)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewMongoCompanyRepository(mt.DB)
		ns := mt.DB.Name() + "." + CompanyCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByName(ctx, "Nobody")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
