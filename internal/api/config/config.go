package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	// 巡检相关默认值
	viper.SetDefault("tracker.check_interval", 600)
	viper.SetDefault("tracker.item_delay", 1000)
	viper.SetDefault("scraper.timeout", 20)
	viper.SetDefault("scraper.retry_count", 3)
	viper.SetDefault("affiliate.retry_count", 3)
	viper.SetDefault("jwt.expire_hour", 24)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
