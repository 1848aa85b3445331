// Package optimize 提供优化运行的统一编排入口
package optimize

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/dispatcher"
	"github.com/diaodu/diaodu/pkg/errors"
	"github.com/diaodu/diaodu/pkg/logger"
	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/scheduler"
	"github.com/diaodu/diaodu/pkg/scheduler/checker"
	"github.com/diaodu/diaodu/pkg/stats"
	"github.com/diaodu/diaodu/pkg/validator"
)

// Snapshot 一次优化运行的只读输入
// 由外部协作方加载，运行期间不再变化
type Snapshot struct {
	Operators []*model.Operator       `json:"operators,omitempty"`
	Requests  []*model.ServiceRequest `json:"requests,omitempty"`
	Employees []*model.Employee       `json:"employees,omitempty"`
	Slots     []*model.ShiftSlot      `json:"slots,omitempty"`
}

// SnapshotLoader 快照加载协作方
type SnapshotLoader interface {
	// LoadDispatchSnapshot 加载派单快照（人员+请求）
	LoadDispatchSnapshot(ctx context.Context, orgID uuid.UUID) (*Snapshot, error)

	// LoadScheduleSnapshot 加载排班快照（员工+槽位）
	LoadScheduleSnapshot(ctx context.Context, orgID uuid.UUID) (*Snapshot, error)
}

// ResultStore 结果持久化协作方
type ResultStore interface {
	// SaveAssignments 保存派单分配结果
	SaveAssignments(ctx context.Context, runID uuid.UUID, assignments []*model.Assignment) error

	// SaveSchedule 保存最优排班方案
	SaveSchedule(ctx context.Context, runID uuid.UUID, slots []*model.ShiftSlot, best *model.ScheduleCandidate) error

	// SaveMetrics 保存运行指标
	SaveMetrics(ctx context.Context, runID uuid.UUID, mode model.OptimizeMode, summary model.MetricsSummary) error
}

// Request 一次优化请求
type Request struct {
	OrgID uuid.UUID          `json:"org_id"`
	Mode  model.OptimizeMode `json:"mode"`

	// 可直接携带快照；为空时通过 SnapshotLoader 加载
	Snapshot *Snapshot `json:"snapshot,omitempty"`

	// 随机种子，0 表示按时间播种（仅排班模式使用）
	Seed int64 `json:"seed,omitempty"`
}

// Result 一次优化结果
type Result struct {
	RunID       uuid.UUID                `json:"run_id"`
	Mode        model.OptimizeMode       `json:"mode"`
	Assignments []*model.Assignment      `json:"assignments,omitempty"`
	Schedule    *model.ScheduleCandidate `json:"schedule,omitempty"`
	Slots       []*model.ShiftSlot       `json:"slots,omitempty"`
	Generations int                      `json:"generations,omitempty"`
	Metrics     model.MetricsSummary     `json:"metrics"`

	// 输入为空时置位，表示显式空结果而非失败
	Empty bool `json:"empty"`
}

// Orchestrator 优化编排器
// 按模式分发到派单引擎或遗传搜索，聚合指标并交给持久化协作方
type Orchestrator struct {
	cfg    model.OptimizerConfig
	loader SnapshotLoader
	store  ResultStore
	logger *logger.OptimizerLogger
}

// NewOrchestrator 创建优化编排器
// 配置非法在任何计算开始前快速失败
func NewOrchestrator(cfg model.OptimizerConfig, loader SnapshotLoader, store ResultStore) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:    cfg,
		loader: loader,
		store:  store,
		logger: logger.NewOptimizerLogger(),
	}, nil
}

// Run 执行一次优化运行
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	runID := uuid.New()

	snap, err := o.loadSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: runID,
		Mode:  req.Mode,
	}

	switch req.Mode {
	case model.ModeDispatch:
		err = o.runDispatch(ctx, runID, snap, result)
	case model.ModeSchedule:
		err = o.runSchedule(ctx, runID, snap, req.Seed, result)
	default:
		return nil, errors.UnknownMode(string(req.Mode))
	}
	if err != nil {
		return nil, err
	}

	result.Metrics.WallClockSeconds = time.Since(start).Seconds()

	if o.store != nil {
		if err := o.store.SaveMetrics(ctx, runID, req.Mode, result.Metrics); err != nil {
			logger.WithError(err).Str("run_id", runID.String()).Msg("保存运行指标失败")
		}
	}

	o.logger.RunComplete(runID.String(), time.Since(start), result.Metrics.TotalAssignments, result.Metrics.FitnessScore)
	return result, nil
}

// loadSnapshot 获取快照：请求自带优先，否则通过协作方加载
func (o *Orchestrator) loadSnapshot(ctx context.Context, req Request) (*Snapshot, error) {
	if req.Snapshot != nil {
		return req.Snapshot, nil
	}
	if o.loader == nil {
		return nil, errors.InvalidInput("snapshot", "缺少快照且未配置加载器")
	}
	switch req.Mode {
	case model.ModeDispatch:
		return o.loader.LoadDispatchSnapshot(ctx, req.OrgID)
	case model.ModeSchedule:
		return o.loader.LoadScheduleSnapshot(ctx, req.OrgID)
	default:
		return nil, errors.UnknownMode(string(req.Mode))
	}
}

// runDispatch 执行派单模式
func (o *Orchestrator) runDispatch(ctx context.Context, runID uuid.UUID, snap *Snapshot, result *Result) error {
	o.logger.StartRun(runID.String(), string(model.ModeDispatch), len(snap.Operators), len(snap.Requests))

	// 空输入是正常稳态：返回显式空结果，不是错误
	if len(snap.Operators) == 0 || len(snap.Requests) == 0 {
		result.Empty = true
		result.Assignments = []*model.Assignment{}
		result.Metrics = stats.DispatchSummary(result.Assignments, snap.Requests)
		return nil
	}

	if err := validator.ValidateDispatchSnapshot(snap.Operators, snap.Requests); err != nil {
		return err
	}

	engine := dispatcher.NewEngine(o.cfg)
	assignments, err := engine.AssignWithCapacity(ctx, snap.Operators, snap.Requests)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		a.RunID = runID
	}

	result.Assignments = assignments
	result.Metrics = stats.DispatchSummary(assignments, snap.Requests)

	if o.store != nil {
		if err := o.store.SaveAssignments(ctx, runID, assignments); err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "保存派单结果失败")
		}
	}
	return nil
}

// runSchedule 执行排班模式
func (o *Orchestrator) runSchedule(ctx context.Context, runID uuid.UUID, snap *Snapshot, seed int64, result *Result) error {
	o.logger.StartRun(runID.String(), string(model.ModeSchedule), len(snap.Employees), len(snap.Slots))

	if len(snap.Employees) == 0 || len(snap.Slots) == 0 {
		result.Empty = true
		result.Metrics = stats.ScheduleSummary(nil, false)
		return nil
	}

	if err := validator.ValidateScheduleSnapshot(snap.Employees, snap.Slots); err != nil {
		return err
	}

	// 需要多人的槽位展开为多个单人槽位
	slots := expandSlots(snap.Slots)
	result.Slots = slots

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	evaluator := scheduler.NewEvaluator(checker.NewSnapshot(slots, snap.Employees))
	driver := scheduler.NewDriver(o.cfg, evaluator, rng)
	searchResult := driver.Run(ctx)

	result.Schedule = searchResult.Best
	result.Generations = searchResult.Generations
	result.Metrics = stats.ScheduleSummary(searchResult.Best, searchResult.Truncated)

	if o.store != nil {
		if err := o.store.SaveSchedule(ctx, runID, slots, searchResult.Best); err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "保存排班结果失败")
		}
	}
	return nil
}

// expandSlots 将 agents_needed > 1 的槽位复制为多个单人槽位
// 候选方案的下标与展开后的槽位列表一一对应
func expandSlots(slots []*model.ShiftSlot) []*model.ShiftSlot {
	expanded := make([]*model.ShiftSlot, 0, len(slots))
	for _, slot := range slots {
		needed := slot.AgentsNeeded
		if needed <= 0 {
			needed = 1
		}
		for k := 0; k < needed; k++ {
			expanded = append(expanded, slot)
		}
	}
	return expanded
}
