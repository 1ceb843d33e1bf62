package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Elastic    ElasticConfig    `mapstructure:"elastic"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	KafkaEvent KafkaEventConfig `mapstructure:"kafka_event"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Logstash   LogstashConfig   `mapstructure:"logstash"`
	Suggestion SuggestionConfig `mapstructure:"suggestion"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port  int         `mapstructure:"port"`
	Admin AdminConfig `mapstructure:"admin"`
}

// AdminConfig 启动时自动创建的管理员账号
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	// SlowMs 超过该耗时的 SQL 记为慢查询
	SlowMs int `mapstructure:"slow_ms"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
	// Transactional 为 true 时关注关系的两侧写入放在同一个事务中（需要副本集）
	Transactional bool `mapstructure:"transactional"`
	SlowMs        int  `mapstructure:"slow_ms"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
	SlowMs   int            `mapstructure:"slow_ms"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	UserIndex string `mapstructure:"user_index"`
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

// KafkaEventConfig 领域事件 topic 以及两个消费组
type KafkaEventConfig struct {
	Topic         string `mapstructure:"topic"`
	NotifyGroupID string `mapstructure:"notify_group_id"`
	SearchGroupID string `mapstructure:"search_group_id"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type SuggestionConfig struct {
	PageSize int `mapstructure:"page_size"`
	CacheTTL int `mapstructure:"cache_ttl"`
}
