package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string
	AppEnv  string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs int

	KafkaBrokers     string
	KafkaNotifyTopic string
	KafkaGroupID     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPSender   string

	CloudinaryURL string
	BadgeFolder   string
	PhotoFolder   string

	JWTSecret string
	JWTTTL    time.Duration

	AdmissionTimeout time.Duration

	StatusRatePerSec float64
	StatusRateBurst  int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getfloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

// Load reads the environment; call godotenv.Load beforehand to pick up a .env file.
func Load() *Config {
	return &Config{
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "visitors"),
		MySQLUser: getenv("MYSQL_USER", "visitors"),
		MySQLPass: getenv("MYSQL_PASS", "visitors"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaNotifyTopic: getenv("KAFKA_NOTIFY_TOPIC", "visitor.host-notifications"),
		KafkaGroupID:     getenv("KAFKA_GROUP_ID", "visitor-notifier"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getint("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPSender:   os.Getenv("SMTP_SENDER_EMAIL"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		BadgeFolder:   getenv("BADGE_FOLDER", "qr_codes"),
		PhotoFolder:   getenv("PHOTO_FOLDER", "visitor_photos"),

		JWTSecret: getenv("JWT_SECRET", "dev-secret"),
		JWTTTL:    time.Duration(getint("JWT_TTL_MINUTES", 30)) * time.Minute,

		AdmissionTimeout: time.Duration(getint("ADMISSION_TIMEOUT_MS", 3000)) * time.Millisecond,

		StatusRatePerSec: getfloat("STATUS_RATE_PER_SEC", 5),
		StatusRateBurst:  getint("STATUS_RATE_BURST", 10),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.AdmissionTimeout <= 0 {
		return errors.New("ADMISSION_TIMEOUT_MS must be positive")
	}
	if c.SMTPHost != "" && c.SMTPSender == "" {
		return errors.New("SMTP_SENDER_EMAIL is required when SMTP_HOST is set")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" || c.AppEnv == "prod" }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps decision dates on the UTC calendar
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) SMTPAddr() string { return net.JoinHostPort(c.SMTPHost, strconv.Itoa(c.SMTPPort)) }
