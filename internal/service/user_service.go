package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Signup(ctx context.Context, dto *dto.SignupDTO) (*dto.AuthDTO, error)
	Login(ctx context.Context, dto *dto.LoginDTO) (*dto.AuthDTO, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, id primitive.ObjectID) (*dto.MeDTO, error)
	GetProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserProfileDTO, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, dto *dto.UpdateProfileDTO) (*dto.MeDTO, error)
	ChangePassword(ctx context.Context, id primitive.ObjectID, dto *dto.ChangePasswordDTO) error
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	publisher EventPublisher
}

func NewUserService(userRepo repository.UserRepo, publisher EventPublisher) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserServiceImpl) Signup(ctx context.Context, signup *dto.SignupDTO) (*dto.AuthDTO, error) {
	name := strings.TrimSpace(signup.Name)
	email := normalizeEmail(signup.Email)
	if name == "" || email == "" || signup.Password == "" {
		return nil, ErrParamInvalid
	}

	exist, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(signup.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     consts.RoleUser,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	s.publishUserUpdated(ctx, user)
	return s.issueToken(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, login *dto.LoginDTO) (*dto.AuthDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(login.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(login.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	if user.Banned {
		return nil, ErrUserBan
	}
	return s.issueToken(user)
}

// Logout 将签名写入黑名单，过期时间与 Token 剩余有效期一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return UnauthorizedError
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	ttl := security.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}

func (s *UserServiceImpl) Me(ctx context.Context, id primitive.ObjectID) (*dto.MeDTO, error) {
	user, err := s.mustGetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMeDTO(user), nil
}

// GetProfile 用户主页，附带粉丝与关注列表摘要
func (s *UserServiceImpl) GetProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserProfileDTO, error) {
	user, err := s.mustGetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	related, err := s.userRepo.GetUserByIds(ctx, append(append([]primitive.ObjectID{}, user.Followers...), user.Following...))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*model.User, len(related))
	for _, u := range related {
		byID[u.ID] = u
	}
	briefs := func(ids []primitive.ObjectID) []*dto.UserBriefDTO {
		out := make([]*dto.UserBriefDTO, 0, len(ids))
		for _, rid := range ids {
			if u, ok := byID[rid]; ok {
				out = append(out, toUserBrief(u))
			}
		}
		return out
	}

	return &dto.UserProfileDTO{
		ID:             user.ID.Hex(),
		Name:           user.Name,
		Role:           user.Role,
		AvatarURL:      user.AvatarURL,
		CoverURL:       user.CoverURL,
		Followers:      briefs(user.Followers),
		Following:      briefs(user.Following),
		FollowersCount: len(user.Followers),
		FollowingCount: len(user.Following),
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *dto.UpdateProfileDTO) (*dto.MeDTO, error) {
	if update.Name == nil && update.Email == nil && update.AvatarURL == nil && update.CoverURL == nil {
		return nil, ErrNothingToUpdate
	}

	user, err := s.mustGetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrParamInvalid
		}
		user.Name = name
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, ErrParamInvalid
		}
		if email != user.Email {
			exist, err := s.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exist != nil && exist.ID != user.ID {
				return nil, ErrUserExist
			}
		}
		user.Email = email
	}
	if update.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*update.AvatarURL)
	}
	if update.CoverURL != nil {
		user.CoverURL = strings.TrimSpace(*update.CoverURL)
	}

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	s.publishUserUpdated(ctx, user)
	return toMeDTO(user), nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, id primitive.ObjectID, change *dto.ChangePasswordDTO) error {
	user, err := s.mustGetUser(ctx, id)
	if err != nil {
		return err
	}
	if err = security.CheckPasswordHash(change.CurrentPassword, user.Password); err != nil {
		return ErrOldPasswordWrong
	}
	passwordHash, err := security.HashPassword(change.NewPassword)
	if err != nil {
		return err
	}
	user.Password = passwordHash
	return s.userRepo.UpdateUser(ctx, user)
}

// EnsureAdmin 启动时创建配置中的管理员账号，已存在则跳过
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.AdminSeedLock, token, time.Minute, 3)
	if err != nil {
		return err
	}
	if !ok {
		log.WarnContext(ctx, "admin seed is running on another instance")
		return nil
	}
	defer redis.UnLock(ctx, consts.AdminSeedLock, token)

	exist, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exist != nil {
		return nil
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Admin"
	}
	admin := &model.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     consts.RoleAdmin,
	}
	if err = s.userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil
		}
		return err
	}
	log.InfoContext(ctx, "admin user seeded", "email", email)
	s.publishUserUpdated(ctx, admin)
	return nil
}

func (s *UserServiceImpl) mustGetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) issueToken(user *model.User) (*dto.AuthDTO, error) {
	token, err := security.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthDTO{Token: token, User: toMeDTO(user)}, nil
}

func (s *UserServiceImpl) publishUserUpdated(ctx context.Context, user *model.User) {
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventUserUpdated,
		ActorID:  user.ID.Hex(),
		TargetID: user.ID.Hex(),
	})
}
