// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// AllowedOrigins 是逗号分隔的 CORS 来源列表，"*" 表示允许所有来源
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins 将 AllowedOrigins 拆分为列表。
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KafkaConfig 存储 Kafka 相关的配置。Brokers 为空时不启用聊天归档管道。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// Enabled 报告是否配置了 Kafka。
func (k KafkaConfig) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

// AssistantConfig 存储健康助手相关的配置。
type AssistantConfig struct {
	// KnowledgePath 为空时使用内置知识库
	KnowledgePath   string `mapstructure:"knowledge_path"`
	ThinkingDelayMs int    `mapstructure:"thinking_delay_ms"`
	HistoryLimit    int    `mapstructure:"history_limit"`
	MaxInputLength  int    `mapstructure:"max_input_length"`
}

var defaults = map[string]interface{}{
	"server.port":                   "8081",
	"server.mode":                   "debug",
	"server.allowed_origins":        "*",
	"database.mysql.dsn":            "",
	"database.redis.addr":           "127.0.0.1:6379",
	"database.redis.password":       "",
	"database.redis.db":             0,
	"jwt.secret":                    "",
	"jwt.access_token_expire_hours": 24,
	"jwt.refresh_token_expire_days": 7,
	"log.level":                     "info",
	"log.format":                    "console",
	"log.output_path":               "",
	"kafka.brokers":                 "",
	"kafka.topic":                   "chat-turns",
	"kafka.group_id":                "health-dashboard-archive",
	"assistant.knowledge_path":      "",
	"assistant.thinking_delay_ms":   1000,
	"assistant.history_limit":       50,
	"assistant.max_input_length":    2000,
}

// Load 读取 YAML 配置文件并解析为 Config。
// 当前目录下的 .env 文件（若存在）会先被加载，环境变量优先于配置文件，
// 例如 DATABASE_MYSQL_DSN 覆盖 database.mysql.dsn。
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret 不能为空")
	}
	return &cfg, nil
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = *cfg
}
