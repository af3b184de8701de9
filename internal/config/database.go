package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig describes one Postgres endpoint. URL wins over the discrete
// fields when set.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadDatabaseConfig reads POSTGRES_<role>_* variables. DATABASE_URL applies
// to the writer only.
func loadDatabaseConfig(role string) *DatabaseConfig {
	prefix := "POSTGRES_" + role + "_"
	cfg := &DatabaseConfig{
		Host:     getEnvWithDefault(prefix+"HOST", "localhost"),
		Port:     getEnvWithDefault(prefix+"PORT", "5432"),
		User:     getEnvWithDefault(prefix+"USER", "postgres"),
		Password: getEnvWithDefault(prefix+"PASSWORD", ""),
		DBName:   getEnvWithDefault(prefix+"DB_NAME", "waapify_relay"),
		SSLMode:  getEnvWithDefault(prefix+"SSL_MODE", "disable"),
	}
	if role == "WRITER" {
		cfg.URL = os.Getenv("DATABASE_URL")
	}
	return cfg
}

// hasDedicatedReader reports whether a separate replica is configured.
func hasDedicatedReader() bool {
	return os.Getenv("POSTGRES_READER_HOST") != ""
}

func loadConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// DSN returns the connection string handed to the postgres driver.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func openDatabase(cfg *DatabaseConfig, pool *ConnectionPoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(getEnvWithDefault("DB_LOG_LEVEL", "warn"))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return db, nil
}

// DatabaseConnections holds the writer and reader handles. Reader is the
// writer itself when no replica is configured.
type DatabaseConnections struct {
	Writer *gorm.DB
	Reader *gorm.DB
}

func NewDatabaseConnections() (*DatabaseConnections, error) {
	pool := loadConnectionPoolConfig()

	writer, err := openDatabase(loadDatabaseConfig("WRITER"), pool)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer database connection: %w", err)
	}

	if !hasDedicatedReader() {
		return &DatabaseConnections{Writer: writer, Reader: writer}, nil
	}

	reader, err := openDatabase(loadDatabaseConfig("READER"), pool)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader database connection: %w", err)
	}

	return &DatabaseConnections{Writer: writer, Reader: reader}, nil
}

// Close closes both handles, once each.
func (dc *DatabaseConnections) Close() error {
	var errs []error

	handles := []*gorm.DB{dc.Writer}
	if dc.Reader != dc.Writer {
		handles = append(handles, dc.Reader)
	}
	for _, handle := range handles {
		if handle == nil {
			continue
		}
		sqlDB, err := handle.DB()
		if err != nil {
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close database connections: %v", errs)
	}
	return nil
}
