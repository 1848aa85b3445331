// Package dispatcher 提供人员-请求的最优派单引擎
package dispatcher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/logger"
	"github.com/diaodu/diaodu/pkg/model"
)

// Engine 派单引擎
// 构建成本矩阵并求最小成本一对一匹配
type Engine struct {
	cfg     model.OptimizerConfig
	builder *Builder
	logger  *logger.OptimizerLogger
}

// NewEngine 创建派单引擎
func NewEngine(cfg model.OptimizerConfig) *Engine {
	return &Engine{
		cfg:     cfg,
		builder: NewBuilder(cfg),
		logger:  logger.NewOptimizerLogger(),
	}
}

// WithStrategy 替换成本策略
func (e *Engine) WithStrategy(s CostStrategy) *Engine {
	e.builder.WithStrategy(s)
	return e
}

// Assign 对一份快照执行一次最优派单
// 输入相同则输出相同（无随机性）
// 空的人员或请求集合返回空分配列表，不视为错误
func (e *Engine) Assign(ctx context.Context, operators []*model.Operator, requests []*model.ServiceRequest) ([]*model.Assignment, error) {
	// 求解开始前检查取消
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assignments := make([]*model.Assignment, 0)
	if len(operators) == 0 || len(requests) == 0 {
		return assignments, nil
	}

	matrix := e.builder.Build(operators, requests)
	rowMatch := solveAssignment(matrix.Costs)

	for i, j := range rowMatch {
		if j < 0 {
			continue
		}
		// 匹配算法会把所有行列硬配满，即使成对成本为 +Inf
		// 不可行对必须在解出后对照原始矩阵显式剔除
		if !matrix.IsFeasible(i, j) {
			continue
		}
		assignments = append(assignments, e.makeAssignment(matrix, i, j))
	}

	logger.Debug().
		Int("operators", len(operators)).
		Int("requests", len(requests)).
		Int("feasible_pairs", matrix.FeasibleCount()).
		Int("assignments", len(assignments)).
		Msg("派单求解完成")

	return assignments, nil
}

// AssignWithCapacity 支持人员并行多任务的派单
// 单次匹配每人至多一单；多任务通过对残余矩阵反复求解实现：
// 每轮移除已分配的请求与容量耗尽的人员，直到无新增分配
func (e *Engine) AssignWithCapacity(ctx context.Context, operators []*model.Operator, requests []*model.ServiceRequest) ([]*model.Assignment, error) {
	capacityLeft := make(map[uuid.UUID]int, len(operators))
	for _, op := range operators {
		capacity := op.Capacity
		if capacity <= 0 {
			capacity = 1
		}
		capacityLeft[op.ID] = capacity
	}

	assignments := make([]*model.Assignment, 0)
	remaining := requests

	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return assignments, err
		}

		available := make([]*model.Operator, 0, len(operators))
		for _, op := range operators {
			if capacityLeft[op.ID] > 0 {
				available = append(available, op)
			}
		}
		if len(available) == 0 {
			break
		}

		batch, err := e.Assign(ctx, available, remaining)
		if err != nil {
			return assignments, err
		}
		if len(batch) == 0 {
			break
		}

		assignedRequests := make(map[uuid.UUID]bool, len(batch))
		for _, a := range batch {
			assignedRequests[a.RequestID] = true
			capacityLeft[a.OperatorID]--
		}
		assignments = append(assignments, batch...)

		next := make([]*model.ServiceRequest, 0, len(remaining))
		for _, req := range remaining {
			if !assignedRequests[req.ID] {
				next = append(next, req)
			}
		}
		remaining = next
	}

	return assignments, nil
}

// makeAssignment 将一个可行匹配对转换为分配结果
func (e *Engine) makeAssignment(m *CostMatrix, i, j int) *model.Assignment {
	op := m.Operators[i]
	req := m.Requests[j]

	travelHours := m.Distances[i][j] / e.cfg.AverageSpeedKmh
	start := req.TimeWindow.Start
	completion := start.Add(time.Duration((travelHours + req.DurationHours) * float64(time.Hour)))
	cost := m.Costs[i][j]

	return &model.Assignment{
		BaseModel:            model.NewBaseModel(),
		OperatorID:           op.ID,
		RequestID:            req.ID,
		ScheduledStart:       start,
		TravelTimeHours:      travelHours,
		EstimatedCompletion:  completion,
		AssignmentScore:      1.0 / (cost + 1.0),
		SkillMatchPercentage: m.MatchRatios[i][j] * 100,
	}
}
