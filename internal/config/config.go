package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort は配信に使う既定のポート番号
const DefaultPort = 6969

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト（空なら全インターフェース）
	Port int    `yaml:"port"` // リッスンするポート番号（0 ならランダム）
	Root string `yaml:"root"` // 配信するディレクトリ

	// リクエストごとのアクセスログを出力するか
	LogRequests bool `yaml:"log_requests"`

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// Default は環境変数を見ずにデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         DefaultPort,
			Root:         ".",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // 大きなファイル（wasm等）の転送用に無効化
		},
	}
}

// Load は設定を読み込む
// デフォルト値を環境変数で上書きする
func Load() (*Config, error) {
	cfg := Default()
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	cfg.Server.Root = getEnvOrDefault("SERVE_ROOT", cfg.Server.Root)
	cfg.Server.LogRequests = getEnvAsBoolOrDefault("LOG_REQUESTS", cfg.Server.LogRequests)

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// 配信ルートの検証
	if c.Server.Root == "" {
		return fmt.Errorf("配信ディレクトリが指定されていません")
	}
	info, err := os.Stat(c.Server.Root)
	if err != nil {
		return fmt.Errorf("配信ディレクトリを確認できません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("配信ルートがディレクトリではありません: %s", c.Server.Root)
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("タイムアウトに負の値は指定できません")
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// YAML は有効な設定をYAMLとして返す
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("設定のYAML変換に失敗: %w", err)
	}
	return out, nil
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得する
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
