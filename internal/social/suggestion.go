package social

import (
	"Inkwell/internal/model"
	"sort"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultSuggestionPageSize = 6

type Suggestion struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	AvatarURL      string             `json:"avatar_url"`
	FollowersCount int                `json:"followers_count"`
	MutualCount    int                `json:"mutual_count"`
}

// RankSuggestions 二度好友按共同关注数、粉丝数降序排列，不足 pageSize 时用热门用户补齐
// friendsOfFriends 与 popular 可以是未过滤的候选池，这里会再次排除自己和已关注的人
func RankSuggestions(current *model.User, friendsOfFriends, popular []*model.User, pageSize int) []Suggestion {
	if pageSize <= 0 {
		pageSize = DefaultSuggestionPageSize
	}

	following := lo.Associate(current.Following, func(id primitive.ObjectID) (primitive.ObjectID, struct{}) {
		return id, struct{}{}
	})
	excluded := func(id primitive.ObjectID) bool {
		if id == current.ID {
			return true
		}
		_, ok := following[id]
		return ok
	}

	picked := make(map[primitive.ObjectID]struct{}, pageSize)
	result := make([]Suggestion, 0, pageSize)

	if len(following) > 0 {
		candidates := make([]Suggestion, 0, len(friendsOfFriends))
		for _, u := range friendsOfFriends {
			if u == nil || excluded(u.ID) {
				continue
			}
			if _, dup := picked[u.ID]; dup {
				continue
			}
			mutual := lo.CountBy(lo.Uniq(u.Followers), func(id primitive.ObjectID) bool {
				_, ok := following[id]
				return ok
			})
			if mutual == 0 {
				continue
			}
			picked[u.ID] = struct{}{}
			candidates = append(candidates, toSuggestion(u, mutual))
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].MutualCount != candidates[j].MutualCount {
				return candidates[i].MutualCount > candidates[j].MutualCount
			}
			return candidates[i].FollowersCount > candidates[j].FollowersCount
		})

		if len(candidates) >= pageSize {
			return candidates[:pageSize]
		}
		result = append(result, candidates...)
	}

	fill := make([]*model.User, 0, len(popular))
	for _, u := range popular {
		if u == nil || excluded(u.ID) {
			continue
		}
		if _, ok := picked[u.ID]; ok {
			continue
		}
		picked[u.ID] = struct{}{}
		fill = append(fill, u)
	}
	sort.SliceStable(fill, func(i, j int) bool {
		return len(fill[i].Followers) > len(fill[j].Followers)
	})

	for _, u := range fill {
		if len(result) >= pageSize {
			break
		}
		result = append(result, toSuggestion(u, 0))
	}
	return result
}

func toSuggestion(u *model.User, mutual int) Suggestion {
	return Suggestion{
		ID:             u.ID,
		Name:           u.Name,
		AvatarURL:      u.AvatarURL,
		FollowersCount: len(u.Followers),
		MutualCount:    mutual,
	}
}
