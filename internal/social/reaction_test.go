package social

import (
	"Inkwell/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyReaction(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	t.Run("添加", func(t *testing.T) {
		post := &model.Post{}
		result, err := ApplyReaction(post, alice, model.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, ReactionAdded, result)
		assert.Equal(t, []model.Reaction{{UserID: alice, Type: model.ReactionLike}}, post.Reactions)
	})

	t.Run("同类型再次点击撤销并恢复原列表", func(t *testing.T) {
		original := []model.Reaction{{UserID: bob, Type: model.ReactionLove}}
		post := &model.Post{Reactions: append([]model.Reaction(nil), original...)}

		result, err := ApplyReaction(post, alice, model.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, ReactionAdded, result)

		result, err = ApplyReaction(post, alice, model.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, ReactionRemoved, result)
		assert.Equal(t, original, post.Reactions)
	})

	t.Run("不同类型原位替换", func(t *testing.T) {
		post := &model.Post{Reactions: []model.Reaction{
			{UserID: bob, Type: model.ReactionLike},
			{UserID: alice, Type: model.ReactionLike},
			{UserID: carol, Type: model.ReactionDislike},
		}}

		result, err := ApplyReaction(post, alice, model.ReactionLove)
		require.NoError(t, err)
		assert.Equal(t, ReactionUpdated, result)
		require.Len(t, post.Reactions, 3)
		assert.Equal(t, alice, post.Reactions[1].UserID)
		assert.Equal(t, model.ReactionLove, post.Reactions[1].Type)
	})

	t.Run("非法类型", func(t *testing.T) {
		post := &model.Post{Reactions: []model.Reaction{{UserID: bob, Type: model.ReactionLike}}}
		_, err := ApplyReaction(post, alice, "angry")
		assert.ErrorIs(t, err, ErrInvalidReactionType)
		assert.Len(t, post.Reactions, 1)
	})

	t.Run("历史重复数据被收敛为一条", func(t *testing.T) {
		post := &model.Post{Reactions: []model.Reaction{
			{UserID: alice, Type: model.ReactionLike},
			{UserID: alice, Type: model.ReactionLove},
		}}
		result, err := ApplyReaction(post, alice, model.ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, ReactionRemoved, result)
		assert.Empty(t, post.Reactions)
	})
}

func TestRemoveReaction(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	post := &model.Post{Reactions: []model.Reaction{
		{UserID: alice, Type: model.ReactionLike},
		{UserID: bob, Type: model.ReactionLove},
	}}

	assert.True(t, RemoveReaction(post, alice))
	assert.Equal(t, []model.Reaction{{UserID: bob, Type: model.ReactionLove}}, post.Reactions)

	assert.False(t, RemoveReaction(post, alice))
	assert.Len(t, post.Reactions, 1)
}

func TestReactionSetCounts(t *testing.T) {
	set := NewReactionSet([]model.Reaction{
		{UserID: primitive.NewObjectID(), Type: model.ReactionLike},
		{UserID: primitive.NewObjectID(), Type: model.ReactionLike},
		{UserID: primitive.NewObjectID(), Type: model.ReactionLove},
	})

	counts := set.Counts()
	assert.Equal(t, 2, counts[model.ReactionLike])
	assert.Equal(t, 0, counts[model.ReactionDislike])
	assert.Equal(t, 1, counts[model.ReactionLove])
	assert.Equal(t, 3, set.Len())
}

func TestToggleFavorite(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	post := &model.Post{Favorites: []primitive.ObjectID{bob}}

	assert.True(t, ToggleFavorite(post, alice))
	assert.Equal(t, []primitive.ObjectID{bob, alice}, post.Favorites)

	assert.False(t, ToggleFavorite(post, alice))
	assert.Equal(t, []primitive.ObjectID{bob}, post.Favorites)
}
