package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あればPOSTGRES_*より優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	JWTSecret  string        // JWT署名シークレット
	SessionTTL time.Duration // 最終アクセスからのセッション有効期間

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）

	// trueなら前進のみ＋非終端からのキャンセルだけ許す
	OrderStatusStrict bool

	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSEndpoint   string

	AWSRegion string
	S3Bucket  string
}

func (c Config) IsProd() bool { return c.GoEnv == "prod" }

// 3つ揃っていなければ送らない
func (c Config) EmailJSEnabled() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}

// .envを読み込んでからLoadする。.envがなくてもよい。
func LoadDotenv(paths ...string) (Config, error) {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Load()
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	ttl, err := durationOr("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	strict, err := boolOr("ORDER_STATUS_STRICT", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: ttl,

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: getenv("FE_URL", "http://localhost:3000"),

		OrderStatusStrict: strict,

		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		EmailJSEndpoint:   getenv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),

		AWSRegion: getenv("AWS_REGION", "ap-south-1"),
		S3Bucket:  os.Getenv("S3_BUCKET"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// ":8080" 形式にそろえる
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolOr(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
