package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Scraper   ScraperConfig   `mapstructure:"scraper"`
	Affiliate AffiliateConfig `mapstructure:"affiliate"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// TrackerConfig 价格巡检配置
type TrackerConfig struct {
	CheckInterval int `mapstructure:"check_interval"` // 两轮巡检之间的间隔，秒
	ItemDelay     int `mapstructure:"item_delay"`     // 同一轮内相邻商品之间的抓取间隔，毫秒
}

// ScraperConfig 抓取配置
type ScraperConfig struct {
	Timeout    int    `mapstructure:"timeout"` // 秒
	RetryCount int    `mapstructure:"retry_count"`
	UserAgent  string `mapstructure:"user_agent"`
}

// AffiliateConfig 联盟链接转换 API 配置
type AffiliateConfig struct {
	URL        string `mapstructure:"url"`
	Token      string `mapstructure:"token"`
	RetryCount int    `mapstructure:"retry_count"`
}

// TelegramConfig Bot API 配置
type TelegramConfig struct {
	APIURL   string `mapstructure:"api_url"`
	BotToken string `mapstructure:"bot_token"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	ExpireHour int    `mapstructure:"expire_hour"`
}

// AdminConfig 管理员配置
type AdminConfig struct {
	UserIDs []int64 `mapstructure:"user_ids"`
}
