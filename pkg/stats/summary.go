// Package stats 提供优化结果的统计分析
package stats

import (
	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

// DispatchSummary 根据派单结果计算指标汇总
func DispatchSummary(assignments []*model.Assignment, requests []*model.ServiceRequest) model.MetricsSummary {
	summary := model.MetricsSummary{
		TotalAssignments: len(assignments),
	}

	if len(assignments) > 0 {
		var totalTravel, totalMatch float64
		for _, a := range assignments {
			totalTravel += a.TravelTimeHours
			totalMatch += a.SkillMatchPercentage
		}
		summary.AverageTravelTime = totalTravel / float64(len(assignments))
		summary.SkillMatchRate = totalMatch / float64(len(assignments))
	}

	if len(requests) > 0 {
		summary.CoverageRate = float64(len(assignments)) / float64(len(requests)) * 100
	}

	return summary
}

// ScheduleSummary 根据排班结果计算指标汇总
func ScheduleSummary(best *model.ScheduleCandidate, truncated bool) model.MetricsSummary {
	summary := model.MetricsSummary{
		Truncated: truncated,
	}
	if best == nil {
		return summary
	}

	summary.TotalAssignments = best.AssignedCount()
	summary.FitnessScore = best.FitnessScore
	summary.ViolationCount = best.ViolationCount

	if total := len(best.Assignees); total > 0 {
		summary.CoverageRate = float64(best.AssignedCount()) / float64(total) * 100
	}

	return summary
}

// OperatorLoad 统计每个人员获得的分配单数
func OperatorLoad(assignments []*model.Assignment) map[uuid.UUID]int {
	load := make(map[uuid.UUID]int)
	for _, a := range assignments {
		load[a.OperatorID]++
	}
	return load
}

// EmployeeLoad 统计每个员工承担的槽位数
func EmployeeLoad(cand *model.ScheduleCandidate) map[uuid.UUID]int {
	load := make(map[uuid.UUID]int)
	if cand == nil {
		return load
	}
	for _, empID := range cand.Assignees {
		if empID != uuid.Nil {
			load[empID]++
		}
	}
	return load
}
