package consts

const (
	UserBanKey           = "user:ban:"
	UserSuggestionKey    = "user:suggestion:"
	UserFollowDirtyKey   = "user:follow:dirty"
	UserMetrics7DaysKey  = "user:metrics:7days:"
	UserMetrics30DaysKey = "user:metrics:30days:"
	PostDirtyKey         = "post:dirty"
	PostMetrics7DaysKey  = "post:metrics:7days:"
	PostMetrics30DaysKey = "post:metrics:30days:"
	SysBoxUnreadKey      = "sys_box:unread:"
	TokenBlacklistKey    = "token:blacklist:"
)

const (
	AdminSeedLock = "lock:admin:seed"
	UserBanLock   = "lock:user:ban"
)
