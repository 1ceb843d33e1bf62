package social

import (
	"Inkwell/internal/model"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FollowResult struct {
	Followed       bool
	FollowersCount int
	Following      []primitive.ObjectID
}

// ToggleFollow 同时修改双方的 followers / following 列表，调用方负责持久化两侧
func ToggleFollow(current, target *model.User) (FollowResult, error) {
	if current.ID == target.ID {
		return FollowResult{}, ErrSelfFollow
	}

	followed := !lo.Contains(target.Followers, current.ID)
	if followed {
		target.Followers = append(target.Followers, current.ID)
		if !lo.Contains(current.Following, target.ID) {
			current.Following = append(current.Following, target.ID)
		}
	} else {
		target.Followers = lo.Without(target.Followers, current.ID)
		current.Following = lo.Without(current.Following, target.ID)
	}

	return FollowResult{
		Followed:       followed,
		FollowersCount: len(target.Followers),
		Following:      current.Following,
	}, nil
}
