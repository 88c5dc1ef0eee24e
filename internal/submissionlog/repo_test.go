package submissionlog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	r := &GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func TestRecordAndList(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := &Entry{OrderID: 5, Mode: ModeCreate, Status: StatusCompleted, ItemsCreated: 2, Failures: "[]"}
	require.NoError(t, r.Record(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.SubmissionID)

	require.NoError(t, r.Record(ctx, &Entry{OrderID: 5, Mode: ModeEdit, Status: StatusPartial, ItemsDeleted: 2, Failures: `["create_item product 3: timeout"]`}))
	require.NoError(t, r.Record(ctx, &Entry{OrderID: 6, Mode: ModeCreate, Status: StatusFailed, Failures: "[]"}))

	got, err := r.ListByOrder(ctx, 5, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ModeEdit, got[0].Mode)
	assert.Equal(t, StatusPartial, got[0].Status)
	assert.Equal(t, ModeCreate, got[1].Mode)

	got, err = r.ListByOrder(ctx, 5, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecord_Nil(t *testing.T) {
	r := newTestRepo(t)
	require.Error(t, r.Record(context.Background(), nil))
}
