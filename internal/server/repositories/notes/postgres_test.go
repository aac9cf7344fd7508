package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var cols = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+notes\s*\(user_id,\s*title,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`
	now := time.Now()
	mock.ExpectQuery(q).WithArgs("u1", "Groceries", "milk").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("n1", now, now))
	mock.ExpectQuery(q).WithArgs("u1", "x", "y").WillReturnError(errors.New("db down"))

	n := &models.Note{UserID: "u1", Title: "Groceries", Content: "milk"}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, "n1", n.ID)

	assert.ErrorContains(t, repo.Create(context.Background(), &models.Note{UserID: "u1", Title: "x", Content: "y"}), "db error")
}

func TestGet_OwnerScoped(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	now := time.Now()
	mock.ExpectQuery(q).WithArgs("n1", "userA").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("n1", "userA", "Groceries", "milk", now, now))
	mock.ExpectQuery(q).WithArgs("n1", "userB").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "n1", "userA")
	require.NoError(t, err)
	assert.Equal(t, "milk", got.Content)

	_, err = repo.Get(context.Background(), "n1", "userB")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList_MostRecentlyUpdatedFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	newer := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(`(?s)FROM\s+notes\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+updated_at\s+DESC$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("n2", "u1", "B", "", older, newer).
			AddRow("n1", "u1", "A", "", older, older))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n2", got[0].ID)
}

func TestList_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+notes`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("n1"))

	_, err := repo.List(context.Background(), "u1")
	assert.Error(t, err)
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	uq := `(?s)^UPDATE\s+notes\s+SET\s+title\s*=\s*\$3,\s*content\s*=\s*\$4,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING\s+updated_at$`
	dq := `^DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	now := time.Now()
	mock.ExpectQuery(uq).WithArgs("n1", "u1", "T", "C").WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery(uq).WithArgs("n1", "u2", "T", "C").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(dq).WithArgs("n1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(dq).WithArgs("n1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))

	n := &models.Note{ID: "n1", UserID: "u1", Title: "T", Content: "C"}
	require.NoError(t, repo.Update(context.Background(), n))
	n.UserID = "u2"
	assert.ErrorIs(t, repo.Update(context.Background(), n), common.ErrorNotFound)

	require.NoError(t, repo.Delete(context.Background(), "n1", "u1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "n1", "u1"), common.ErrorNotFound)
}
