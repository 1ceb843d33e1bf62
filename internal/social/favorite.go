package social

import (
	"Inkwell/internal/model"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToggleFavorite 切换收藏状态，返回切换后是否处于已收藏
func ToggleFavorite(post *model.Post, userID primitive.ObjectID) bool {
	if lo.Contains(post.Favorites, userID) {
		post.Favorites = lo.Without(post.Favorites, userID)
		return false
	}
	post.Favorites = append(post.Favorites, userID)
	return true
}
