package job

import (
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

func jobContext(name string) context.Context {
	return context.WithValue(context.Background(), logger.TraceIDKey, "job-"+name+"-"+uuid.NewString())
}

// dirtySetStore 脏集合的存储操作
type dirtySetStore interface {
	Merge(ctx context.Context, dst, src string) error
	Rename(ctx context.Context, oldKey, newKey string) error
	Members(ctx context.Context, key string) ([]string, error)
	Add(ctx context.Context, key string, members ...string) error
	Delete(ctx context.Context, key string) error
}

type redisDirtySets struct{}

func (redisDirtySets) Merge(ctx context.Context, dst, src string) error {
	return redis.MergeSet(ctx, dst, src)
}

func (redisDirtySets) Rename(ctx context.Context, oldKey, newKey string) error {
	return redis.Rename(ctx, oldKey, newKey)
}

func (redisDirtySets) Members(ctx context.Context, key string) ([]string, error) {
	return redis.GetSet(ctx, key)
}

func (redisDirtySets) Add(ctx context.Context, key string, members ...string) error {
	return redis.AddToSet(ctx, key, members...)
}

func (redisDirtySets) Delete(ctx context.Context, key string) error {
	return redis.DeleteKey(ctx, key)
}

// drainDirtySet 将脏集合改名后逐个处理，处理期间新产生的脏数据进入新的集合
// 上次异常退出残留的 processing 集合先并回脏集合，处理失败的成员放回脏集合等待下一轮
// 返回处理成功的成员数，集合不存在时为 0
func drainDirtySet(ctx context.Context, store dirtySetStore, key string, handle func(ctx context.Context, member string) error) int {
	processingKey := key + ":processing"
	if err := store.Merge(ctx, key, processingKey); err != nil {
		log.ErrorContext(ctx, "merge stale dirty set error", "key", processingKey, "err", err)
		return 0
	}
	if err := store.Rename(ctx, key, processingKey); err != nil {
		return 0
	}

	members, err := store.Members(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "key", key, "err", err)
		return 0
	}

	var failed []string
	for _, m := range members {
		if err = handle(ctx, m); err != nil {
			log.ErrorContext(ctx, "handle dirty member error", "key", key, "member", m, "err", err)
			failed = append(failed, m)
		}
	}

	if len(failed) > 0 {
		if err = store.Add(ctx, key, failed...); err != nil {
			// 放回失败时保留 processing 集合，下一轮会合并回来
			log.ErrorContext(ctx, "requeue dirty members error", "key", key, "count", len(failed), "err", err)
			return len(members) - len(failed)
		}
	}

	if err = store.Delete(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete dirty set error", "key", processingKey, "err", err)
	}
	return len(members) - len(failed)
}
