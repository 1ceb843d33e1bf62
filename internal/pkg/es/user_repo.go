package es

import (
	"context"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/textquerytype"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
)

type UserRepo interface {
	SearchUsers(ctx context.Context, keyword string, size int) ([]*UserES, error)
	IndexUser(ctx context.Context, user *UserES, version int64) error
	DeleteUser(ctx context.Context, id string) error
}

type UserRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewUserRepo(client *elasticsearch.TypedClient) UserRepo {
	return &UserRepoImpl{client: client}
}

func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, size int) ([]*UserES, error) {
	req := s.client.Search().
		Index(UserIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"name^2", "email"},
				Type:   &textquerytype.Phraseprefix,
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		Size(size)

	return executeSearch[UserES](ctx, req)
}

func (s *UserRepoImpl) IndexUser(ctx context.Context, user *UserES, version int64) error {
	_, err := s.client.Index(UserIndex).
		Id(user.ID).
		Document(user).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if err != nil {
		if statusIs(err, ConflictCode) {
			log.Warn("Version conflict detected, skipping old data", "user_id", user.ID, "version", version)
			return nil
		}
		return err
	}
	return nil
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id string) error {
	_, err := s.client.Delete(UserIndex, id).Do(ctx)
	if err != nil && !statusIs(err, NotFoundCode) {
		log.Warn("delete user document failed", "id", id, "err", err)
		return err
	}
	return nil
}
