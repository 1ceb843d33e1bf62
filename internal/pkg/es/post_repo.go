package es

import (
	"context"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/textquerytype"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

type PostRepo interface {
	SearchPosts(ctx context.Context, keyword string, size int) ([]*PostES, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPosts 标题与正文前缀匹配，按创建时间倒序
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, size int) ([]*PostES, error) {
	req := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"title^2", "content"},
				Type:   &textquerytype.Phraseprefix,
			},
		}).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		Size(size)

	return executeSearch[PostES](ctx, req)
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	_, err := s.client.Index(PostIndex).
		Id(post.ID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if err != nil {
		if statusIs(err, ConflictCode) {
			log.Warn("Version conflict detected, skipping old data", "post_id", post.ID, "version", version)
			return nil
		}
		return err
	}
	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(PostIndex, id).Do(ctx)
	if err != nil && !statusIs(err, NotFoundCode) {
		return err
	}
	return nil
}

func executeSearch[T any](ctx context.Context, req *search.Search) ([]*T, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*T, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc T
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		results = append(results, &doc)
	}
	return results, nil
}
