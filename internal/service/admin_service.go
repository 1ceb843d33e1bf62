package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService interface {
	ListUsers(ctx context.Context, page, limit int, search string) (*dto.PageDTO[*dto.AdminUserDTO], error)
	SetBan(ctx context.Context, actor Actor, targetID primitive.ObjectID, banned bool) (*dto.AdminUserDTO, error)
}

type adminServiceImpl struct {
	userRepo repository.UserRepo
}

func NewAdminService(userRepo repository.UserRepo) AdminService {
	return &adminServiceImpl{userRepo: userRepo}
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, page, limit int, search string) (*dto.PageDTO[*dto.AdminUserDTO], error) {
	page, limit = util.NormalizePage(page, limit, consts.DefaultPageSize, consts.MaxPageSize)
	users, total, err := s.userRepo.ListUsers(ctx, strings.TrimSpace(search), int64((page-1)*limit), int64(limit))
	if err != nil {
		return nil, err
	}

	list := make([]*dto.AdminUserDTO, 0, len(users))
	for _, u := range users {
		list = append(list, toAdminUserDTO(u))
	}
	return &dto.PageDTO[*dto.AdminUserDTO]{List: list, Total: total, Page: page, Limit: limit}, nil
}

// SetBan 不能封禁自己，也不能封禁最后一个可用的管理员
func (s *adminServiceImpl) SetBan(ctx context.Context, actor Actor, targetID primitive.ObjectID, banned bool) (*dto.AdminUserDTO, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if actor.ID == targetID {
		return nil, ErrUserBanSelf
	}

	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.UserBanLock, token, time.Second*10, 10)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, UnExpectedError
	}
	defer redis.UnLock(ctx, consts.UserBanLock, token)

	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if banned && target.IsAdmin() && !target.Banned {
		activeAdmins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if activeAdmins <= 1 {
			return nil, ErrUserBanLastAdmin
		}
	}

	matched, err := s.userRepo.UpdateUserBan(ctx, targetID, banned)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrUserNotFound
	}
	target.Banned = banned

	banKey := consts.UserBanKey + targetID.Hex()
	if banned {
		err = redis.SetValue(ctx, banKey, "1")
	} else {
		err = redis.DeleteKey(ctx, banKey)
	}
	if err != nil {
		log.ErrorContext(ctx, "sync ban flag to redis failed", "user_id", targetID.Hex(), "err", err)
	}

	log.InfoContext(ctx, "user ban updated", "operator", actor.ID.Hex(), "user_id", targetID.Hex(), "banned", banned)
	return toAdminUserDTO(target), nil
}

func toAdminUserDTO(u *model.User) *dto.AdminUserDTO {
	d := &dto.AdminUserDTO{}
	_ = copier.CopyWithOption(d, u, copyOption)
	d.ID = u.ID.Hex()
	d.FollowersCount = len(u.Followers)
	return d
}
