package services

import "github.com/forumhub/backend/internal/models"

// BuildCommentTree turns a flat, parent-referencing comment list into an
// ordered forest. The input must be sorted by creation time ascending; the
// builder preserves that order among siblings and at the top level.
//
// Two passes: index every comment first, then attach. The full index makes
// the attach step independent of row order, so a reply appearing before its
// parent in the input can never be dropped by accident.
//
// A comment whose parent id does not resolve (the parent was deleted after
// the reply was created) is promoted to top level rather than discarded.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[int]*models.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &models.CommentNode{
			Comment: comments[i],
			Replies: []*models.CommentNode{},
		}
	}

	forest := []*models.CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID == nil {
			forest = append(forest, node)
			continue
		}
		parent, ok := nodes[*comments[i].ParentID]
		if !ok {
			// Orphaned reply: parent row is gone, keep the subtree visible
			forest = append(forest, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return forest
}
