package models

import "gorm.io/gorm"

// Comment belongs to a discussion topic (a material id). ParentID is nil for
// top-level comments. Comments are never edited or deleted.
type Comment struct {
	gorm.Model
	TopicID  uint   `gorm:"index" json:"topic_id"`
	ParentID *uint  `json:"parent_id"`
	Text     string `gorm:"not null" json:"text"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree materializes a flat comment list, ordered by creation time
// ascending, into a reply forest. Order comes from the input sequence and is
// preserved at every level, so top-level comments and each reply list stay
// chronological. Depth is unbounded. A comment whose parent id is not in the
// input is dropped from the result.
func BuildCommentTree(comments []Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
	}

	tree := []*CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if pid := comments[i].ParentID; pid != nil {
			if parent, ok := nodes[*pid]; ok {
				parent.Replies = append(parent.Replies, node)
			}
			continue
		}
		tree = append(tree, node)
	}
	return tree
}
