package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/forumhub/backend/internal/apperrors"
	"github.com/forumhub/backend/internal/models"
)

// setupPostTestRepository creates a post repository with a mock database
func setupPostTestRepository(t *testing.T) (*postRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostRepository(db, zaptest.NewLogger(t))

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestPostRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupPostTestRepository(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "category_id", "user_id", "title", "content", "created_at"}).
		AddRow(2, 1, 3, "Newer post", "content", now).
		AddRow(1, 1, 2, "Older post", "content", now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT id, category_id, user_id, title, content, created_at`).
		WillReturnRows(rows)

	posts, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 2, posts[0].ID)
	assert.Equal(t, "Older post", posts[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetAll_Empty(t *testing.T) {
	repo, mock, cleanup := setupPostTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, category_id, user_id, title, content, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "user_id", "title", "content", "created_at"}))

	posts, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByCategory(t *testing.T) {
	repo, mock, cleanup := setupPostTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "category_id", "user_id", "title", "content", "created_at"}).
		AddRow(5, 2, 3, "In category", "content", time.Now())
	mock.ExpectQuery(`SELECT id, category_id, user_id, title, content, created_at`).
		WithArgs(2).
		WillReturnRows(rows)

	posts, err := repo.GetByCategory(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		postID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:   "success",
			postID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "category_id", "user_id", "title", "content", "created_at", "full_name", "role"}).
					AddRow(7, 1, 3, "Title", "Body", time.Now(), "Alice Doe", models.RoleNormal)
				mock.ExpectQuery(`SELECT p.id, p.category_id, p.user_id`).
					WithArgs(7).
					WillReturnRows(rows)
			},
		},
		{
			name:   "not found",
			postID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT p.id, p.category_id, p.user_id`).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			detail, err := repo.GetByID(context.Background(), tt.postID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, detail)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.postID, detail.ID)
				assert.Equal(t, "Alice Doe", detail.AuthorName)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_Exists(t *testing.T) {
	repo, mock, cleanup := setupPostTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		post          *models.Post
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			post: &models.Post{CategoryID: 1, UserID: 3, Title: "Title", Content: "Body"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(1, 3, "Title", "Body").
					WillReturnResult(sqlmock.NewResult(11, 1))
			},
			expectedID: 11,
		},
		{
			name: "database error",
			post: &models.Post{CategoryID: 1, UserID: 3, Title: "Title", Content: "Body"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO posts`).
					WithArgs(1, 3, "Title", "Body").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.post)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.post.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		postID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:   "success",
			postID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(7).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "post missing",
			postID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM posts`).
					WithArgs(99).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.postID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
