package social

import (
	"Inkwell/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentNode struct {
	model.Comment
	Children []*CommentNode `json:"children"`
}

// BuildCommentTree 将扁平的评论列表组装成森林
// 父评论不在列表中的回复会被直接丢弃，既不作为根也不挂到任何节点下
// 输入需按创建时间升序，输出的根与子节点保持输入顺序，不会修改入参
func BuildCommentTree(comments []*model.Comment) []*CommentNode {
	nodes := make(map[primitive.ObjectID]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		if c == nil {
			continue
		}
		if _, ok := nodes[c.ID]; ok {
			continue
		}
		node := &CommentNode{Comment: *c, Children: []*CommentNode{}}
		if c.ParentID != nil {
			parent := *c.ParentID
			node.ParentID = &parent
		}
		nodes[c.ID] = node
		ordered = append(ordered, node)
	}

	roots := make([]*CommentNode, 0)
	for _, node := range ordered {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}
