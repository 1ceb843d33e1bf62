package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostQuery 列表查询条件，零值字段不参与过滤
type PostQuery struct {
	AuthorIDs   []primitive.ObjectID
	FavoritedBy primitive.ObjectID
	Title       string
	Keyword     string // 标题或正文包含
	Offset      int64
	Limit       int64
}

type PostRepo interface {
	EnsureIndexes(ctx context.Context) error
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostById(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	SavePost(ctx context.Context, post *model.Post) error
	// 表态与收藏按单个用户原子更新，不同用户的并发写互不覆盖
	PushReaction(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error
	SetReactionType(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error
	PullReaction(ctx context.Context, postID, userID primitive.ObjectID) error
	AddFavorite(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, postID, userID primitive.ObjectID) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error)
}

type PostRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &PostRepoImpl{col: db.Collection("posts")}
}

func (s *PostRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "favorites", Value: 1}}},
	})
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	now := time.Now()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Reactions == nil {
		post.Reactions = []model.Reaction{}
	}
	if post.Favorites == nil {
		post.Favorites = []primitive.ObjectID{}
	}
	_, err := s.col.InsertOne(ctx, post)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post := &model.Post{}
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return post, nil
}

// SavePost 只写回编辑字段，reactions / favorites 由专门的方法维护
func (s *PostRepoImpl) SavePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"coverUrl":  post.CoverURL,
		"updatedAt": post.UpdatedAt,
	}}
	_, err := s.col.UpdateByID(ctx, post.ID, update)
	return wrapStoreErr(err)
}

// PushReaction 过滤条件保证同一用户至多一条表态
func (s *PostRepoImpl) PushReaction(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error {
	filter := bson.M{"_id": postID, "reactions.user": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"reactions": model.Reaction{UserID: userID, Type: t}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) SetReactionType(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error {
	filter := bson.M{"_id": postID, "reactions.user": userID}
	update := bson.M{"$set": bson.M{"reactions.$.type": t, "updatedAt": time.Now()}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) PullReaction(ctx context.Context, postID, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"reactions": bson.M{"user": userID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := s.col.UpdateByID(ctx, postID, update)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) AddFavorite(ctx context.Context, postID, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"favorites": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err := s.col.UpdateByID(ctx, postID, update)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) RemoveFavorite(ctx context.Context, postID, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"favorites": userID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := s.col.UpdateByID(ctx, postID, update)
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapStoreErr(err)
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, error) {
	filter := bson.M{}
	if q.AuthorIDs != nil {
		filter["author"] = bson.M{"$in": q.AuthorIDs}
	}
	if !q.FavoritedBy.IsZero() {
		filter["favorites"] = q.FavoritedBy
	}
	if q.Title != "" {
		filter["title"] = containsRegex(q.Title)
	}
	if q.Keyword != "" {
		filter["$or"] = keywordFilter(q.Keyword, "title", "content")["$or"]
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Offset > 0 {
		opts.SetSkip(q.Offset)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.Post, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return posts, total, nil
}
