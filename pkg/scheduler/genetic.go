// Package scheduler 提供排班候选方案的遗传搜索
package scheduler

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/logger"
	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/scheduler/checker"
)

// State 遗传搜索状态
type State string

const (
	StateInitializing State = "initializing"
	StateEvolving     State = "evolving"
	StateTerminated   State = "terminated"
)

// 搜索参数
const (
	// 初始种群中槽位被分配的概率，其余 20% 刻意留空以播种多样性
	initialAssignProb = 0.8

	// 锦标赛采样规模
	tournamentSize = 3

	// 软时间目标：超过只记日志，不视为失败
	softTimeTarget = 8 * time.Second
)

// Result 遗传搜索结果
type Result struct {
	Best        *model.ScheduleCandidate `json:"best"`
	Generations int                      `json:"generations"`
	Truncated   bool                     `json:"truncated"`
	Duration    time.Duration            `json:"duration"`
}

// Driver 遗传搜索驱动器
// 种群规模与代数在一次运行内固定；代与代之间严格串行，
// 代内各候选的评估互不相关，可并行
type Driver struct {
	cfg       model.OptimizerConfig
	snap      *checker.Snapshot
	evaluator *Evaluator
	rng       *rand.Rand
	logger    *logger.OptimizerLogger
	state     State

	// 每个槽位的可用员工，构造时算好，之后只读
	eligible [][]*model.Employee
}

// NewDriver 创建遗传搜索驱动器
// rng 为空时按当前时间播种；测试中注入固定种子可复现
func NewDriver(cfg model.OptimizerConfig, evaluator *Evaluator, rng *rand.Rand) *Driver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	snap := evaluator.Snapshot()
	eligible := make([][]*model.Employee, len(snap.Slots))
	for i, slot := range snap.Slots {
		eligible[i] = snap.EligibleEmployees(slot)
	}

	return &Driver{
		cfg:       cfg,
		snap:      snap,
		evaluator: evaluator,
		rng:       rng,
		logger:    logger.NewOptimizerLogger(),
		state:     StateInitializing,
		eligible:  eligible,
	}
}

// State 返回当前状态
func (d *Driver) State() State {
	return d.state
}

// Run 执行固定代数的遗传搜索
// 截止时间每代检查一次：超时返回已见最优并置 Truncated，不报错
func (d *Driver) Run(ctx context.Context) *Result {
	start := time.Now()
	runID := uuid.New().String()

	d.state = StateInitializing
	d.logger.StartEvolution(runID, d.cfg.PopulationSize, d.cfg.GenerationCount)

	// 初始化：随机生成整个种群并评估
	population := make([]*model.ScheduleCandidate, d.cfg.PopulationSize)
	for i := range population {
		population[i] = d.randomCandidate()
	}
	d.evaluateAll(ctx, population)

	// 历史最优单独跟踪：整代替换本身不保证保留
	best := fittest(population).Clone()

	d.state = StateEvolving
	result := &Result{}

	for gen := 0; gen < d.cfg.GenerationCount; gen++ {
		// 每代一次的截止检查
		if ctx.Err() != nil {
			result.Truncated = true
			result.Generations = gen
			break
		}

		next := make([]*model.ScheduleCandidate, d.cfg.PopulationSize)
		for i := range next {
			parent1 := d.tournament(population)
			parent2 := d.tournament(population)
			child := d.crossover(parent1, parent2)
			d.mutate(child)
			next[i] = child
		}
		d.evaluateAll(ctx, next)

		if d.cfg.Elitism {
			// 精英保留：用历史最优替换新一代中最差的个体
			worst := 0
			for i, c := range next {
				if c.FitnessScore < next[worst].FitnessScore {
					worst = i
				}
			}
			next[worst] = best.Clone()
		}

		population = next

		if b := fittest(population); b.FitnessScore > best.FitnessScore {
			best = b.Clone()
		}
		result.Generations = gen + 1

		d.logger.GenerationDone(gen, best.FitnessScore, best.ViolationCount)
	}

	d.state = StateTerminated

	result.Best = best
	result.Duration = time.Since(start)

	if result.Duration > softTimeTarget {
		d.logger.SoftDeadlineExceeded(runID, result.Duration, softTimeTarget)
	}
	d.logger.RunComplete(runID, result.Duration, best.AssignedCount(), best.FitnessScore)

	return result
}

// randomCandidate 随机生成一个候选方案
// 每个槽位以 80% 概率分配一名均匀随机的可用员工，否则留空
func (d *Driver) randomCandidate() *model.ScheduleCandidate {
	cand := model.NewScheduleCandidate(len(d.snap.Slots))
	for i := range cand.Assignees {
		eligible := d.eligible[i]
		if len(eligible) == 0 || d.rng.Float64() >= initialAssignProb {
			continue
		}
		cand.Assignees[i] = eligible[d.rng.Intn(len(eligible))].ID
	}
	return cand
}

// tournament 锦标赛选择：随机采样后取适应度最高者
func (d *Driver) tournament(population []*model.ScheduleCandidate) *model.ScheduleCandidate {
	best := population[d.rng.Intn(len(population))]
	for k := 1; k < tournamentSize; k++ {
		candidate := population[d.rng.Intn(len(population))]
		if candidate.FitnessScore > best.FitnessScore {
			best = candidate
		}
	}
	return best
}

// crossover 均匀交叉：每个槽位 50/50 继承自任一父代
// 未触发交叉概率时直接克隆适应度较高的父代
func (d *Driver) crossover(parent1, parent2 *model.ScheduleCandidate) *model.ScheduleCandidate {
	if d.rng.Float64() >= d.cfg.CrossoverRate {
		if parent2.FitnessScore > parent1.FitnessScore {
			return parent2.Clone()
		}
		return parent1.Clone()
	}

	child := model.NewScheduleCandidate(len(parent1.Assignees))
	for i := range child.Assignees {
		if d.rng.Float64() < 0.5 {
			child.Assignees[i] = parent1.Assignees[i]
		} else {
			child.Assignees[i] = parent2.Assignees[i]
		}
	}
	return child
}

// mutate 变异：按变异概率对一个随机槽位重新分配或清空
func (d *Driver) mutate(cand *model.ScheduleCandidate) {
	if len(cand.Assignees) == 0 || d.rng.Float64() >= d.cfg.MutationRate {
		return
	}

	slot := d.rng.Intn(len(cand.Assignees))
	eligible := d.eligible[slot]

	if len(eligible) == 0 || d.rng.Float64() < 0.5 {
		cand.Assignees[slot] = uuid.Nil
		return
	}
	cand.Assignees[slot] = eligible[d.rng.Intn(len(eligible))].ID
}

// evaluateAll 评估一批候选方案
// 候选之间互不相关，按配置的工作协程数并行
func (d *Driver) evaluateAll(ctx context.Context, population []*model.ScheduleCandidate) {
	workers := d.cfg.ParallelWorkers
	if workers <= 1 || len(population) < 2 {
		for _, cand := range population {
			d.evaluator.Evaluate(cand)
		}
		return
	}

	jobs := make(chan *model.ScheduleCandidate, len(population))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					d.evaluator.Evaluate(cand)
				}
			}
		}()
	}

	for _, cand := range population {
		jobs <- cand
	}
	close(jobs)
	wg.Wait()
}

// fittest 返回种群中适应度最高的个体
func fittest(population []*model.ScheduleCandidate) *model.ScheduleCandidate {
	best := population[0]
	for _, c := range population[1:] {
		if c.FitnessScore > best.FitnessScore {
			best = c
		}
	}
	return best
}
