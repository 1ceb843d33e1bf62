package job

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// memDirtySets 按 Redis 语义实现的内存集合，空集合等同于键不存在
type memDirtySets struct {
	sets map[string]map[string]struct{}
}

func newMemDirtySets() *memDirtySets {
	return &memDirtySets{sets: map[string]map[string]struct{}{}}
}

func (m *memDirtySets) Merge(_ context.Context, dst, src string) error {
	for v := range m.sets[src] {
		_ = m.Add(context.Background(), dst, v)
	}
	delete(m.sets, src)
	return nil
}

func (m *memDirtySets) Rename(_ context.Context, oldKey, newKey string) error {
	set, ok := m.sets[oldKey]
	if !ok {
		return errors.New("ERR no such key")
	}
	m.sets[newKey] = set
	delete(m.sets, oldKey)
	return nil
}

func (m *memDirtySets) Members(_ context.Context, key string) ([]string, error) {
	out := lo.Keys(m.sets[key])
	sort.Strings(out)
	return out, nil
}

func (m *memDirtySets) Add(_ context.Context, key string, members ...string) error {
	if m.sets[key] == nil {
		m.sets[key] = map[string]struct{}{}
	}
	for _, v := range members {
		m.sets[key][v] = struct{}{}
	}
	return nil
}

func (m *memDirtySets) Delete(_ context.Context, key string) error {
	delete(m.sets, key)
	return nil
}

func TestDrainDirtySet(t *testing.T) {
	ctx := context.Background()
	const key = "dirty:test"

	t.Run("集合不存在", func(t *testing.T) {
		store := newMemDirtySets()
		n := drainDirtySet(ctx, store, key, func(context.Context, string) error { return nil })
		assert.Equal(t, 0, n)
	})

	t.Run("合并上次残留的处理集合", func(t *testing.T) {
		store := newMemDirtySets()
		_ = store.Add(ctx, key, "a")
		_ = store.Add(ctx, key+":processing", "b", "c")

		var handled []string
		n := drainDirtySet(ctx, store, key, func(_ context.Context, m string) error {
			handled = append(handled, m)
			return nil
		})
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"a", "b", "c"}, handled)
		assert.Empty(t, store.sets)
	})

	t.Run("处理失败的成员放回脏集合", func(t *testing.T) {
		store := newMemDirtySets()
		_ = store.Add(ctx, key, "ok", "bad")

		n := drainDirtySet(ctx, store, key, func(_ context.Context, m string) error {
			if m == "bad" {
				return errors.New("mysql down")
			}
			return nil
		})
		assert.Equal(t, 1, n)
		members, _ := store.Members(ctx, key)
		assert.Equal(t, []string{"bad"}, members)
		assert.NotContains(t, store.sets, key+":processing")
	})
}
