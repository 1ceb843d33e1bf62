package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	EnsureIndexes(ctx context.Context) error
	GetUserById(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserBan(ctx context.Context, id primitive.ObjectID, banned bool) (int64, error)
	SaveFollowEdge(ctx context.Context, followerID, targetID primitive.ObjectID, follow bool) error
	FindFriendsOfFriends(ctx context.Context, self primitive.ObjectID, following []primitive.ObjectID) ([]*model.User, error)
	FindPopularUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]*model.User, error)
	ListUsers(ctx context.Context, keyword string, offset, limit int64) ([]*model.User, int64, error)
	FindUserIdsByKeyword(ctx context.Context, keyword string) ([]primitive.ObjectID, error)
	CountActiveAdmins(ctx context.Context) (int64, error)
	AddFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePostFromFavorites(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

type UserRepoImpl struct {
	col           *mongo.Collection
	transactional bool
}

// NewUserRepo transactional 为 true 时关注关系双侧写入在同一事务内完成
func NewUserRepo(db *mongo.Database, transactional bool) UserRepo {
	return &UserRepoImpl{
		col:           db.Collection("users"),
		transactional: transactional,
	}
}

func (s *UserRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "followers", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "banned", Value: 1}}},
	})
	return wrapStoreErr(err)
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	user := &model.User{}
	err := s.col.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"password": 0}))
}

func (s *UserRepoImpl) find(ctx context.Context, filter any, opts ...*options.FindOptions) ([]*model.User, error) {
	cursor, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	users := make([]*model.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, wrapStoreErr(err)
	}
	return users, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.FavoritePosts == nil {
		user.FavoritePosts = []primitive.ObjectID{}
	}
	_, err := s.col.InsertOne(ctx, user)
	return wrapStoreErr(err)
}

// UpdateUser 只更新资料字段，关注关系与收藏走各自的方法
func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"password":  user.Password,
		"avatarUrl": user.AvatarURL,
		"coverUrl":  user.CoverURL,
		"updatedAt": user.UpdatedAt,
	}}
	_, err := s.col.UpdateByID(ctx, user.ID, update)
	return wrapStoreErr(err)
}

func (s *UserRepoImpl) UpdateUserBan(ctx context.Context, id primitive.ObjectID, banned bool) (int64, error) {
	result, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"banned": banned, "updatedAt": time.Now()}})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return result.MatchedCount, nil
}

// SaveFollowEdge 以 $addToSet / $pull 修改双方列表，并发关注同一用户不会丢失粉丝
func (s *UserRepoImpl) SaveFollowEdge(ctx context.Context, followerID, targetID primitive.ObjectID, follow bool) error {
	op := "$pull"
	if follow {
		op = "$addToSet"
	}
	write := func(ctx context.Context) error {
		now := time.Now()
		if _, err := s.col.UpdateByID(ctx, targetID, bson.M{op: bson.M{"followers": followerID}, "$set": bson.M{"updatedAt": now}}); err != nil {
			return err
		}
		_, err := s.col.UpdateByID(ctx, followerID, bson.M{op: bson.M{"following": targetID}, "$set": bson.M{"updatedAt": now}})
		return err
	}

	if !s.transactional {
		return wrapStoreErr(write(ctx))
	}

	session, err := s.col.Database().Client().StartSession()
	if err != nil {
		return wrapStoreErr(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, write(sc)
	})
	return wrapStoreErr(err)
}

// FindFriendsOfFriends 找出被我关注的人所关注、而我尚未关注的用户
func (s *UserRepoImpl) FindFriendsOfFriends(ctx context.Context, self primitive.ObjectID, following []primitive.ObjectID) ([]*model.User, error) {
	if len(following) == 0 {
		return []*model.User{}, nil
	}
	filter := bson.M{
		"_id":       bson.M{"$nin": append([]primitive.ObjectID{self}, following...)},
		"followers": bson.M{"$in": following},
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "avatarUrl": 1, "followers": 1})
	return s.find(ctx, filter, opts)
}

// FindPopularUsers 按粉丝数取前 limit 个用户，排序在数据库内完成
func (s *UserRepoImpl) FindPopularUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]*model.User, error) {
	if exclude == nil {
		exclude = []primitive.ObjectID{}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$nin": exclude}}}},
		{{Key: "$addFields", Value: bson.M{
			"followersCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$followers", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "followersCount", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"name": 1, "avatarUrl": 1, "followers": 1}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	users := make([]*model.User, 0, limit)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, wrapStoreErr(err)
	}
	return users, nil
}

// containsRegex 不区分大小写的包含匹配，关键字中的正则元字符按字面处理
func containsRegex(keyword string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
}

func keywordFilter(keyword string, fields ...string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	re := containsRegex(keyword)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// ListUsers 管理后台分页，按注册时间倒序
func (s *UserRepoImpl) ListUsers(ctx context.Context, keyword string, offset, limit int64) ([]*model.User, int64, error) {
	filter := keywordFilter(keyword, "name", "email")

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	users, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserRepoImpl) FindUserIdsByKeyword(ctx context.Context, keyword string) ([]primitive.ObjectID, error) {
	users, err := s.find(ctx, keywordFilter(keyword, "name", "email"), options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *UserRepoImpl) CountActiveAdmins(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"role": "admin", "banned": bson.M{"$ne": true}})
	return count, wrapStoreErr(err)
}

func (s *UserRepoImpl) AddFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"favoritePosts": postID}})
	return wrapStoreErr(err)
}

func (s *UserRepoImpl) RemoveFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"favoritePosts": postID}})
	return wrapStoreErr(err)
}

func (s *UserRepoImpl) RemovePostFromFavorites(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := s.col.UpdateMany(ctx, bson.M{"favoritePosts": postID}, bson.M{"$pull": bson.M{"favoritePosts": postID}})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return result.ModifiedCount, nil
}
