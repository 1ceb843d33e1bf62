package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CommentRepo interface {
	EnsureIndexes(ctx context.Context) error
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentById(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	FindCommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error)
	CountByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

type CommentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &CommentRepoImpl{col: db.Collection("comments")}
}

func (s *CommentRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return wrapStoreErr(err)
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	now := time.Now()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = now
	comment.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, comment)
	return wrapStoreErr(err)
}

func (s *CommentRepoImpl) GetCommentById(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return comment, nil
}

// FindCommentsByPost 返回顺序不做保证，调用方自行排序
func (s *CommentRepoImpl) FindCommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	cursor, err := s.col.Find(ctx, bson.M{"post": postID})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	comments := make([]*model.Comment, 0)
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, wrapStoreErr(err)
	}
	return comments, nil
}

// CountByPosts 批量统计评论数，没有评论的帖子不会出现在结果中
func (s *CommentRepoImpl) CountByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"post": bson.M{"$in": postIDs}}},
		{"$group": bson.M{"_id": "$post", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		PostID primitive.ObjectID `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, wrapStoreErr(err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return wrapStoreErr(err)
}

func (s *CommentRepoImpl) DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{"post": postID})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return result.DeletedCount, nil
}
