package history

import (
	"context"
	"testing"
	"time"

	"asset-loader/feature/batch"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func finishedStatus() batch.Status {
	finished := time.Date(2026, 2, 1, 12, 0, 5, 0, time.UTC)
	return batch.Status{
		ID:         "2b1c0d8e-0000-0000-0000-000000000001",
		Mode:       "parallel",
		State:      batch.StateComplete,
		Progress:   100,
		StartedAt:  time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: &finished,
		Results: []batch.ResourceResult{
			{Name: "logo", URL: "/img/logo.png", Size: 2048},
			{Name: "config", URL: "/app.json", Size: 0, Error: "fetch failed"},
		},
	}
}

func TestStoreRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `load_batches`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `load_batch_resources`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	err := store.Record(context.Background(), finishedStatus())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRecordRollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `load_batches`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Record(context.Background(), finishedStatus())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListBatches(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"id", "mode", "total", "failed"}).
		AddRow("id-2", "serial", 3, 0).
		AddRow("id-1", "parallel", 2, 1)
	mock.ExpectQuery("SELECT \\* FROM `load_batches`").WillReturnRows(rows)

	batches, err := store.ListBatches(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "id-2", batches[0].ID)
	assert.Equal(t, 1, batches[1].Failed)
}

func TestStoreGetBatch(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `load_batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mode", "total", "failed"}).
			AddRow("id-1", "parallel", 2, 1))
	mock.ExpectQuery("SELECT \\* FROM `load_batch_resources`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "name", "url", "size", "error"}).
			AddRow(1, "id-1", "logo", "/img/logo.png", 2048, "").
			AddRow(2, "id-1", "config", "/app.json", 0, "fetch failed"))

	b, resources, err := store.GetBatch(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", b.ID)
	require.Len(t, resources, 2)
	assert.Equal(t, "fetch failed", resources[1].Error)
}

func TestStoreGetBatchNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `load_batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := store.GetBatch(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
