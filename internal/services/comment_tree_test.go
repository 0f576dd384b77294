package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhub/backend/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func commentRow(id int, parentID *int, at time.Time) models.Comment {
	return models.Comment{ID: id, PostID: 1, UserID: 1, ParentID: parentID, Content: "c", CreatedAt: at}
}

func TestBuildCommentTree(t *testing.T) {
	base := time.Now()

	t.Run("nested replies", func(t *testing.T) {
		// 1 and 3 top level, 2 replies to 1, 4 replies to 2
		rows := []models.Comment{
			commentRow(1, nil, base),
			commentRow(2, intPtr(1), base.Add(time.Minute)),
			commentRow(3, nil, base.Add(2*time.Minute)),
			commentRow(4, intPtr(2), base.Add(3*time.Minute)),
		}

		forest := BuildCommentTree(rows)

		require.Len(t, forest, 2)
		assert.Equal(t, 1, forest[0].ID)
		assert.Equal(t, 3, forest[1].ID)

		require.Len(t, forest[0].Replies, 1)
		assert.Equal(t, 2, forest[0].Replies[0].ID)

		require.Len(t, forest[0].Replies[0].Replies, 1)
		assert.Equal(t, 4, forest[0].Replies[0].Replies[0].ID)

		assert.Empty(t, forest[1].Replies)
		assert.Empty(t, forest[0].Replies[0].Replies[0].Replies)
	})

	t.Run("empty input", func(t *testing.T) {
		forest := BuildCommentTree(nil)

		assert.NotNil(t, forest)
		assert.Empty(t, forest)
	})

	t.Run("all top level keeps chronological order", func(t *testing.T) {
		rows := []models.Comment{
			commentRow(10, nil, base),
			commentRow(11, nil, base.Add(time.Minute)),
			commentRow(12, nil, base.Add(2*time.Minute)),
		}

		forest := BuildCommentTree(rows)

		require.Len(t, forest, 3)
		assert.Equal(t, 10, forest[0].ID)
		assert.Equal(t, 11, forest[1].ID)
		assert.Equal(t, 12, forest[2].ID)
	})

	t.Run("sibling order preserved", func(t *testing.T) {
		rows := []models.Comment{
			commentRow(1, nil, base),
			commentRow(2, intPtr(1), base.Add(time.Minute)),
			commentRow(3, intPtr(1), base.Add(2*time.Minute)),
			commentRow(4, intPtr(1), base.Add(3*time.Minute)),
		}

		forest := BuildCommentTree(rows)

		require.Len(t, forest, 1)
		require.Len(t, forest[0].Replies, 3)
		assert.Equal(t, 2, forest[0].Replies[0].ID)
		assert.Equal(t, 3, forest[0].Replies[1].ID)
		assert.Equal(t, 4, forest[0].Replies[2].ID)
	})

	t.Run("orphaned reply promoted to top level", func(t *testing.T) {
		// Parent 99 was deleted; its reply must stay visible
		rows := []models.Comment{
			commentRow(1, nil, base),
			commentRow(2, intPtr(99), base.Add(time.Minute)),
		}

		forest := BuildCommentTree(rows)

		require.Len(t, forest, 2)
		assert.Equal(t, 1, forest[0].ID)
		assert.Equal(t, 2, forest[1].ID)
	})

	t.Run("reply rows never dropped", func(t *testing.T) {
		rows := []models.Comment{
			commentRow(1, nil, base),
			commentRow(2, intPtr(1), base.Add(time.Minute)),
			commentRow(3, intPtr(2), base.Add(2*time.Minute)),
			commentRow(4, intPtr(99), base.Add(3*time.Minute)),
			commentRow(5, nil, base.Add(4*time.Minute)),
		}

		forest := BuildCommentTree(rows)

		var count func(nodes []*models.CommentNode) int
		count = func(nodes []*models.CommentNode) int {
			total := 0
			for _, n := range nodes {
				total += 1 + count(n.Replies)
			}
			return total
		}
		assert.Equal(t, len(rows), count(forest))
	})
}
