package social

import (
	"Inkwell/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReactionResult string

const (
	ReactionAdded   ReactionResult = "added"
	ReactionRemoved ReactionResult = "removed"
	ReactionUpdated ReactionResult = "updated"
)

// ReactionSet 以用户为键的表态集合，保证每个用户至多一条，只在存储边界展开为列表
type ReactionSet struct {
	order []primitive.ObjectID
	types map[primitive.ObjectID]model.ReactionType
}

// NewReactionSet 从持久化列表构建，同一用户重复出现时保留第一条
func NewReactionSet(list []model.Reaction) *ReactionSet {
	s := &ReactionSet{
		order: make([]primitive.ObjectID, 0, len(list)),
		types: make(map[primitive.ObjectID]model.ReactionType, len(list)),
	}
	for _, r := range list {
		if _, ok := s.types[r.UserID]; ok {
			continue
		}
		s.order = append(s.order, r.UserID)
		s.types[r.UserID] = r.Type
	}
	return s
}

// Get 返回用户当前的表态
func (s *ReactionSet) Get(userID primitive.ObjectID) (model.ReactionType, bool) {
	t, ok := s.types[userID]
	return t, ok
}

// Toggle 无表态则追加；同类型则撤销；不同类型则原位替换
func (s *ReactionSet) Toggle(userID primitive.ObjectID, t model.ReactionType) ReactionResult {
	current, ok := s.types[userID]
	switch {
	case !ok:
		s.order = append(s.order, userID)
		s.types[userID] = t
		return ReactionAdded
	case current == t:
		s.Remove(userID)
		return ReactionRemoved
	default:
		s.types[userID] = t
		return ReactionUpdated
	}
}

// Remove 删除用户的表态，不存在时返回 false
func (s *ReactionSet) Remove(userID primitive.ObjectID) bool {
	if _, ok := s.types[userID]; !ok {
		return false
	}
	delete(s.types, userID)
	for i, id := range s.order {
		if id == userID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len 表态总数
func (s *ReactionSet) Len() int {
	return len(s.order)
}

// List 按插入顺序展开为持久化列表
func (s *ReactionSet) List() []model.Reaction {
	list := make([]model.Reaction, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, model.Reaction{UserID: id, Type: s.types[id]})
	}
	return list
}

// Counts 各类型的表态数量
func (s *ReactionSet) Counts() map[model.ReactionType]int {
	counts := map[model.ReactionType]int{
		model.ReactionLike:    0,
		model.ReactionDislike: 0,
		model.ReactionLove:    0,
	}
	for _, t := range s.types {
		counts[t]++
	}
	return counts
}

// ApplyReaction 对帖子执行表态切换，结果直接写回 post.Reactions
func ApplyReaction(post *model.Post, userID primitive.ObjectID, t model.ReactionType) (ReactionResult, error) {
	if !t.Valid() {
		return "", ErrInvalidReactionType
	}
	set := NewReactionSet(post.Reactions)
	result := set.Toggle(userID, t)
	post.Reactions = set.List()
	return result, nil
}

// RemoveReaction 无条件移除用户的表态，没有表态时不做任何修改
func RemoveReaction(post *model.Post, userID primitive.ObjectID) bool {
	set := NewReactionSet(post.Reactions)
	if !set.Remove(userID) {
		return false
	}
	post.Reactions = set.List()
	return true
}
