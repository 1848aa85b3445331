// Package config 提供配置管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/diaodu/diaodu/pkg/model"
)

// Config 应用配置
type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	API       APIConfig       `yaml:"api"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN 返回数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// APIConfig API配置
type APIConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// OptimizerConfig 优化引擎配置
type OptimizerConfig struct {
	TravelWeight        float64       `yaml:"travel_weight"`
	SkillWeight         float64       `yaml:"skill_weight"`
	PriorityWeight      float64       `yaml:"priority_weight"`
	MaxTravelDistanceKm float64       `yaml:"max_travel_distance_km"`
	AverageSpeedKmh     float64       `yaml:"average_speed_kmh"`
	PopulationSize      int           `yaml:"population_size"`
	GenerationCount     int           `yaml:"generation_count"`
	MutationRate        float64       `yaml:"mutation_rate"`
	CrossoverRate       float64       `yaml:"crossover_rate"`
	Elitism             bool          `yaml:"elitism"`
	ParallelWorkers     int           `yaml:"parallel_workers"`
	RunTimeout          time.Duration `yaml:"run_timeout"`
}

// ToOptimizerConfig 转换为引擎层配置
func (c *OptimizerConfig) ToOptimizerConfig() model.OptimizerConfig {
	return model.OptimizerConfig{
		TravelWeight:        c.TravelWeight,
		SkillWeight:         c.SkillWeight,
		PriorityWeight:      c.PriorityWeight,
		MaxTravelDistanceKm: c.MaxTravelDistanceKm,
		AverageSpeedKmh:     c.AverageSpeedKmh,
		PopulationSize:      c.PopulationSize,
		GenerationCount:     c.GenerationCount,
		MutationRate:        c.MutationRate,
		CrossoverRate:       c.CrossoverRate,
		Elitism:             c.Elitism,
		ParallelWorkers:     c.ParallelWorkers,
	}
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	defaults := model.DefaultOptimizerConfig()

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "diaodu"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7021),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "diaodu"),
			User:            getEnv("DB_USER", "diaodu"),
			Password:        getEnv("DB_PASSWORD", "diaodu123"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		API: APIConfig{
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Optimizer: OptimizerConfig{
			TravelWeight:        getEnvFloat("OPT_TRAVEL_WEIGHT", defaults.TravelWeight),
			SkillWeight:         getEnvFloat("OPT_SKILL_WEIGHT", defaults.SkillWeight),
			PriorityWeight:      getEnvFloat("OPT_PRIORITY_WEIGHT", defaults.PriorityWeight),
			MaxTravelDistanceKm: getEnvFloat("OPT_MAX_TRAVEL_DISTANCE", defaults.MaxTravelDistanceKm),
			AverageSpeedKmh:     getEnvFloat("OPT_AVERAGE_SPEED", defaults.AverageSpeedKmh),
			PopulationSize:      getEnvInt("OPT_POPULATION_SIZE", defaults.PopulationSize),
			GenerationCount:     getEnvInt("OPT_GENERATION_COUNT", defaults.GenerationCount),
			MutationRate:        getEnvFloat("OPT_MUTATION_RATE", defaults.MutationRate),
			CrossoverRate:       getEnvFloat("OPT_CROSSOVER_RATE", defaults.CrossoverRate),
			Elitism:             getEnvBool("OPT_ELITISM", defaults.Elitism),
			ParallelWorkers:     getEnvInt("OPT_PARALLEL_WORKERS", defaults.ParallelWorkers),
			RunTimeout:          getEnvDuration("OPT_RUN_TIMEOUT", 60*time.Second),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Optimizer.ToOptimizerConfig().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
