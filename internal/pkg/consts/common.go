package consts

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	DefaultSuggestionPageSize = 6
	DefaultPageSize           = 20
	MaxPageSize               = 100
)

// 搜索相关限制
const (
	SearchMinQueryLen     = 2
	SearchDefaultPostSize = 10
	SearchDefaultUserSize = 8
	SearchMaxSize         = 25
	SearchSnippetMaxLen   = 160
)
