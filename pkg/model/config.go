// Package model 定义调度优化引擎的核心数据模型
package model

import (
	"github.com/diaodu/diaodu/pkg/errors"
)

// OptimizeMode 优化模式
type OptimizeMode string

const (
	ModeDispatch OptimizeMode = "dispatch" // 派单：最优二分图匹配
	ModeSchedule OptimizeMode = "schedule" // 排班：遗传搜索
)

// OptimizerConfig 优化引擎配置
// 一次运行内不可变，所有组件以值传递方式接收
type OptimizerConfig struct {
	// 成本权重
	TravelWeight   float64 `json:"travel_weight"`
	SkillWeight    float64 `json:"skill_weight"`
	PriorityWeight float64 `json:"priority_weight"`

	// 可行性阈值
	MaxTravelDistanceKm float64 `json:"max_travel_distance_km"`

	// 行驶参数
	AverageSpeedKmh float64 `json:"average_speed_kmh"`

	// 遗传搜索参数
	PopulationSize  int     `json:"population_size"`
	GenerationCount int     `json:"generation_count"`
	MutationRate    float64 `json:"mutation_rate"`
	CrossoverRate   float64 `json:"crossover_rate"`

	// 保留历史最优个体进入下一代
	Elitism bool `json:"elitism"`

	// 代内并行评估的工作协程数（<=0 表示串行）
	ParallelWorkers int `json:"parallel_workers"`
}

// DefaultOptimizerConfig 返回默认配置
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		TravelWeight:        1.0,
		SkillWeight:         10.0,
		PriorityWeight:      2.0,
		MaxTravelDistanceKm: 50.0,
		AverageSpeedKmh:     40.0,
		PopulationSize:      50,
		GenerationCount:     50,
		MutationRate:        0.1,
		CrossoverRate:       0.8,
		Elitism:             true,
		ParallelWorkers:     4,
	}
}

// Validate 校验配置，非法配置在任何计算开始前快速失败
func (c OptimizerConfig) Validate() error {
	if c.TravelWeight < 0 {
		return errors.ConfigInvalid("travel_weight", "不能为负数")
	}
	if c.SkillWeight < 0 {
		return errors.ConfigInvalid("skill_weight", "不能为负数")
	}
	if c.PriorityWeight < 0 {
		return errors.ConfigInvalid("priority_weight", "不能为负数")
	}
	if c.MaxTravelDistanceKm < 0 {
		return errors.ConfigInvalid("max_travel_distance_km", "不能为负数")
	}
	if c.AverageSpeedKmh <= 0 {
		return errors.ConfigInvalid("average_speed_kmh", "必须为正数")
	}
	if c.PopulationSize <= 0 {
		return errors.ConfigInvalid("population_size", "必须为正整数")
	}
	if c.GenerationCount <= 0 {
		return errors.ConfigInvalid("generation_count", "必须为正整数")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return errors.ConfigInvalid("mutation_rate", "必须在 [0,1] 范围内")
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return errors.ConfigInvalid("crossover_rate", "必须在 [0,1] 范围内")
	}
	return nil
}

// MetricsSummary 优化运行指标汇总
type MetricsSummary struct {
	TotalAssignments  int     `json:"total_assignments"`
	AverageTravelTime float64 `json:"average_travel_time"` // 小时
	SkillMatchRate    float64 `json:"skill_match_rate"`    // [0,100]
	CoverageRate      float64 `json:"coverage_rate"`       // [0,100]
	FitnessScore      float64 `json:"fitness_score"`       // [0,100]
	ViolationCount    int     `json:"violation_count"`
	WallClockSeconds  float64 `json:"wall_clock_seconds"`
	Truncated         bool    `json:"truncated"`
}
