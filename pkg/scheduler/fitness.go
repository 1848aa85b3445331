// Package scheduler 提供排班候选方案的遗传搜索
package scheduler

import (
	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/scheduler/checker"
)

// 适应度参数
// 满覆盖最多贡献 50 分，其余由违反惩罚决定
const (
	coverageMaxScore = 50.0
	violationPenalty = 10.0
)

// Evaluator 适应度评估器
// 对注册的检查器依次求值，检查器可插拔
type Evaluator struct {
	snap     *checker.Snapshot
	checkers []checker.Checker
}

// NewEvaluator 创建适应度评估器（使用默认检查器集合）
func NewEvaluator(snap *checker.Snapshot) *Evaluator {
	return &Evaluator{
		snap:     snap,
		checkers: checker.DefaultCheckers(),
	}
}

// NewEvaluatorWithCheckers 创建带自定义检查器的评估器
func NewEvaluatorWithCheckers(snap *checker.Snapshot, checkers []checker.Checker) *Evaluator {
	return &Evaluator{
		snap:     snap,
		checkers: checkers,
	}
}

// Register 追加检查器
func (e *Evaluator) Register(c checker.Checker) {
	e.checkers = append(e.checkers, c)
}

// Evaluate 评估候选方案并写入适应度与违反数
// fitness = 覆盖得分 - 10×违反数，截断到 [0,100]
func (e *Evaluator) Evaluate(cand *model.ScheduleCandidate) {
	violations := 0
	for _, c := range e.checkers {
		violations += len(c.Check(e.snap, cand))
	}

	coverage := 0.0
	if total := len(cand.Assignees); total > 0 {
		coverage = float64(cand.AssignedCount()) / float64(total) * coverageMaxScore
	}

	fitness := coverage - violationPenalty*float64(violations)
	if fitness < 0 {
		fitness = 0
	}
	if fitness > 100 {
		fitness = 100
	}

	cand.FitnessScore = fitness
	cand.ViolationCount = violations
}

// Violations 返回候选方案的全部违反详情
func (e *Evaluator) Violations(cand *model.ScheduleCandidate) []checker.Violation {
	var all []checker.Violation
	for _, c := range e.checkers {
		all = append(all, c.Check(e.snap, cand)...)
	}
	return all
}

// Snapshot 返回评估器持有的快照
func (e *Evaluator) Snapshot() *checker.Snapshot {
	return e.snap
}
