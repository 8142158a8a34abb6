package providers

import (
	"fmt"
	"meetsync/internal/structures"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("storage.driver", "memory")
	viper.SetDefault("redis.prefix", "meetsync:group:")
	viper.SetDefault("broadcast.sendQueue", 16)
	viper.SetDefault("broadcast.writeTimeout", 10*time.Second)
	viper.SetDefault("broadcast.pingInterval", 30*time.Second)
	viper.SetDefault("cache.ttl", 30*time.Second)

	viper.BindEnv("logger.level", "MEETSYNC_LOG_LEVEL")
	viper.BindEnv("storage.driver", "MEETSYNC_STORAGE_DRIVER")
	viper.BindEnv("storage.dsn", "MEETSYNC_MYSQL_DSN")
	viper.BindEnv("redis.enabled", "MEETSYNC_REDIS_ENABLED")
	viper.BindEnv("redis.addr", "MEETSYNC_REDIS_ADDR")
	viper.BindEnv("cache.enabled", "MEETSYNC_CACHE_ENABLED")
	viper.BindEnv("cache.size", "MEETSYNC_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}
	if conf.Storage.Driver == "mysql" && conf.Storage.DSN == "" {
		return nil, fmt.Errorf("storage.dsn is required for the mysql driver")
	}
	if conf.Redis.Enabled && conf.Redis.Addr == "" {
		return nil, fmt.Errorf("redis.addr is required when redis is enabled")
	}

	conf.AppName = "MeetSync"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
