// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/internal/database"
	"github.com/diaodu/diaodu/pkg/model"
)

// ResultRepository 优化结果仓储
// 事务性写入派单分配、排班方案与运行指标
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository 创建结果仓储
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveAssignments 保存派单分配结果
func (r *ResultRepository) SaveAssignments(ctx context.Context, runID uuid.UUID, assignments []*model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO assignments (
				id, run_id, operator_id, request_id,
				scheduled_start, travel_time_hours, estimated_completion,
				assignment_score, skill_match_percentage, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`

		now := time.Now()
		for _, a := range assignments {
			if a.ID == uuid.Nil {
				a.ID = uuid.New()
			}
			a.CreatedAt = now
			a.UpdatedAt = now

			_, err := tx.ExecContext(ctx, query,
				a.ID, runID, a.OperatorID, a.RequestID,
				a.ScheduledStart, a.TravelTimeHours, a.EstimatedCompletion,
				a.AssignmentScore, a.SkillMatchPercentage, a.CreatedAt, a.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("保存派单分配失败: %w", err)
			}
		}
		return nil
	})
}

// SaveSchedule 保存最优排班方案
// 槽位与候选方案的 Assignees 按下标一一对应
func (r *ResultRepository) SaveSchedule(ctx context.Context, runID uuid.UUID, slots []*model.ShiftSlot, best *model.ScheduleCandidate) error {
	if best == nil || len(slots) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO schedule_entries (
				id, run_id, slot_id, employee_id, position, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`

		now := time.Now()
		for i, slot := range slots {
			var employeeID interface{}
			if best.IsAssigned(i) {
				employeeID = best.Assignees[i]
			}

			_, err := tx.ExecContext(ctx, query,
				uuid.New(), runID, slot.ID, employeeID, i, now,
			)
			if err != nil {
				return fmt.Errorf("保存排班条目失败: %w", err)
			}
		}
		return nil
	})
}

// SaveMetrics 保存运行指标
func (r *ResultRepository) SaveMetrics(ctx context.Context, runID uuid.UUID, mode model.OptimizeMode, summary model.MetricsSummary) error {
	query := `
		INSERT INTO optimization_runs (
			id, mode, total_assignments, average_travel_time, skill_match_rate,
			coverage_rate, fitness_score, violation_count,
			wall_clock_seconds, truncated, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		runID, string(mode), summary.TotalAssignments, summary.AverageTravelTime, summary.SkillMatchRate,
		summary.CoverageRate, summary.FitnessScore, summary.ViolationCount,
		summary.WallClockSeconds, summary.Truncated, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("保存运行指标失败: %w", err)
	}
	return nil
}
