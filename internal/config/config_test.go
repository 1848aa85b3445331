package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "diaodu" {
		t.Errorf("App.Name = %q, want diaodu", cfg.App.Name)
	}
	if cfg.App.Port != 7021 {
		t.Errorf("App.Port = %d, want 7021", cfg.App.Port)
	}
	if cfg.Optimizer.PopulationSize != 50 {
		t.Errorf("PopulationSize = %d, want 50", cfg.Optimizer.PopulationSize)
	}
	if !cfg.Optimizer.Elitism {
		t.Error("默认应开启精英保留")
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 5m", cfg.Database.ConnMaxLifetime)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("OPT_POPULATION_SIZE", "120")
	t.Setenv("OPT_MUTATION_RATE", "0.25")
	t.Setenv("OPT_ELITISM", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != 9999 {
		t.Errorf("App.Port = %d, want 9999", cfg.App.Port)
	}
	if cfg.Optimizer.PopulationSize != 120 {
		t.Errorf("PopulationSize = %d, want 120", cfg.Optimizer.PopulationSize)
	}
	if cfg.Optimizer.MutationRate != 0.25 {
		t.Errorf("MutationRate = %v, want 0.25", cfg.Optimizer.MutationRate)
	}
	if cfg.Optimizer.Elitism {
		t.Error("OPT_ELITISM=false 应关闭精英保留")
	}
}

func TestLoad_InvalidOptimizer(t *testing.T) {
	t.Setenv("OPT_POPULATION_SIZE", "-10")

	if _, err := Load(); err == nil {
		t.Error("非法优化配置应加载失败")
	}
}

func TestLoad_BadEnvFallsBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 7021 {
		t.Errorf("无法解析的环境变量应回退默认值, got %d", cfg.App.Port)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.local", Port: 5432, User: "diaodu",
		Password: "secret", Name: "diaodu", SSLMode: "disable",
	}
	want := "host=db.local port=5432 user=diaodu password=secret dbname=diaodu sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestToOptimizerConfig(t *testing.T) {
	c := OptimizerConfig{
		TravelWeight:        2.0,
		SkillWeight:         5.0,
		PriorityWeight:      1.0,
		MaxTravelDistanceKm: 30,
		AverageSpeedKmh:     50,
		PopulationSize:      80,
		GenerationCount:     60,
		MutationRate:        0.2,
		CrossoverRate:       0.7,
		Elitism:             true,
		ParallelWorkers:     8,
	}

	engine := c.ToOptimizerConfig()
	if engine.PopulationSize != 80 || engine.TravelWeight != 2.0 || !engine.Elitism {
		t.Error("转换应逐字段搬运")
	}
	if err := engine.Validate(); err != nil {
		t.Errorf("转换结果应合法: %v", err)
	}
}
