// Package dispatcher 提供人员-请求的最优派单引擎
package dispatcher

import (
	"math"

	"github.com/diaodu/diaodu/pkg/geo"
	"github.com/diaodu/diaodu/pkg/model"
)

// Infeasible 不可行对的成本标记
var Infeasible = math.Inf(1)

// CostInput 单个 (人员, 请求) 对的成本要素
type CostInput struct {
	DistanceKm       float64
	SkillMatchRatio  float64
	Priority         int
	PerformanceScore float64
}

// CostStrategy 成本计算策略接口
// 替换策略即可更换目标函数（如字典序、Pareto），无需改动求解器
type CostStrategy interface {
	// Name 返回策略名称
	Name() string

	// Cost 计算一个可行对的有限成本
	Cost(in CostInput) float64
}

// WeightedSumStrategy 加权和成本策略（默认）
type WeightedSumStrategy struct {
	cfg model.OptimizerConfig
}

// NewWeightedSumStrategy 创建加权和策略
func NewWeightedSumStrategy(cfg model.OptimizerConfig) *WeightedSumStrategy {
	return &WeightedSumStrategy{cfg: cfg}
}

// Name 返回策略名称
func (s *WeightedSumStrategy) Name() string {
	return "weighted_sum"
}

// Cost 计算加权和成本
// (距离×行驶权重 + (1-技能匹配率)×技能权重 + (5-优先级)×优先级权重) × 绩效系数
// 绩效系数 = 2.0 - performance_score，绩效越高成本越低
func (s *WeightedSumStrategy) Cost(in CostInput) float64 {
	base := in.DistanceKm*s.cfg.TravelWeight +
		(1.0-in.SkillMatchRatio)*s.cfg.SkillWeight +
		float64(5-in.Priority)*s.cfg.PriorityWeight
	return base * (2.0 - in.PerformanceScore)
}

// CostMatrix 成本矩阵
// 维度恒为 人员数 × 请求数，不可行对的成本为 +Inf
type CostMatrix struct {
	Costs       [][]float64
	Distances   [][]float64
	MatchRatios [][]float64
	Operators   []*model.Operator
	Requests    []*model.ServiceRequest
}

// Rows 返回行数（人员数）
func (m *CostMatrix) Rows() int {
	return len(m.Operators)
}

// Cols 返回列数（请求数）
func (m *CostMatrix) Cols() int {
	return len(m.Requests)
}

// IsFeasible 检查某对是否可行
func (m *CostMatrix) IsFeasible(i, j int) bool {
	return !math.IsInf(m.Costs[i][j], 1)
}

// FeasibleCount 返回可行对数量
func (m *CostMatrix) FeasibleCount() int {
	count := 0
	for i := range m.Costs {
		for j := range m.Costs[i] {
			if m.IsFeasible(i, j) {
				count++
			}
		}
	}
	return count
}

// Builder 成本矩阵构建器
type Builder struct {
	cfg      model.OptimizerConfig
	calc     *geo.Calculator
	strategy CostStrategy
}

// NewBuilder 创建成本矩阵构建器
func NewBuilder(cfg model.OptimizerConfig) *Builder {
	return &Builder{
		cfg:      cfg,
		calc:     geo.NewCalculator(cfg.AverageSpeedKmh),
		strategy: NewWeightedSumStrategy(cfg),
	}
}

// WithStrategy 替换成本策略
func (b *Builder) WithStrategy(s CostStrategy) *Builder {
	b.strategy = s
	return b
}

// Build 为每个 (人员, 请求) 对计算成本
// 可行性要求：请求技能 ⊆ 人员主辅技能并集，且道路距离不超过阈值
// 空的人员或请求集合产生空矩阵，不视为错误
func (b *Builder) Build(operators []*model.Operator, requests []*model.ServiceRequest) *CostMatrix {
	matrix := &CostMatrix{
		Costs:       make([][]float64, len(operators)),
		Distances:   make([][]float64, len(operators)),
		MatchRatios: make([][]float64, len(operators)),
		Operators:   operators,
		Requests:    requests,
	}

	for i, op := range operators {
		matrix.Costs[i] = make([]float64, len(requests))
		matrix.Distances[i] = make([]float64, len(requests))
		matrix.MatchRatios[i] = make([]float64, len(requests))

		skills := op.AllSkills()

		for j, req := range requests {
			distance := b.calc.Distance(op.Location, req.Location)
			ratio := skills.MatchRatio(req.RequiredSkills)

			matrix.Distances[i][j] = distance
			matrix.MatchRatios[i][j] = ratio

			if !skills.ContainsAll(req.RequiredSkills) || distance > b.cfg.MaxTravelDistanceKm {
				matrix.Costs[i][j] = Infeasible
				continue
			}

			matrix.Costs[i][j] = b.strategy.Cost(CostInput{
				DistanceKm:       distance,
				SkillMatchRatio:  ratio,
				Priority:         req.Priority,
				PerformanceScore: op.PerformanceScore,
			})
		}
	}

	return matrix
}
