// Package repository 提供数据访问层
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/optimize"
)

// SnapshotRepository 优化快照仓储
// 从数据库加载一次优化运行所需的只读输入
type SnapshotRepository struct {
	db DB
}

// NewSnapshotRepository 创建快照仓储
func NewSnapshotRepository(db DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// LoadDispatchSnapshot 加载派单快照（可用人员 + 待派请求）
func (r *SnapshotRepository) LoadDispatchSnapshot(ctx context.Context, orgID uuid.UUID) (*optimize.Snapshot, error) {
	operators, err := r.loadOperators(ctx, orgID)
	if err != nil {
		return nil, err
	}

	requests, err := r.loadRequests(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &optimize.Snapshot{Operators: operators, Requests: requests}, nil
}

// LoadScheduleSnapshot 加载排班快照（员工 + 班次槽位）
func (r *SnapshotRepository) LoadScheduleSnapshot(ctx context.Context, orgID uuid.UUID) (*optimize.Snapshot, error) {
	employees, err := r.loadEmployees(ctx, orgID)
	if err != nil {
		return nil, err
	}

	slots, err := r.loadSlots(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &optimize.Snapshot{Employees: employees, Slots: slots}, nil
}

func (r *SnapshotRepository) loadOperators(ctx context.Context, orgID uuid.UUID) ([]*model.Operator, error) {
	query := `
		SELECT id, org_id, name, code, primary_skills, secondary_skills,
			location, coverage_zones, performance_score, capacity,
			created_at, updated_at
		FROM operators
		WHERE org_id = $1 AND deleted_at IS NULL
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("查询人员失败: %w", err)
	}
	defer rows.Close()

	var operators []*model.Operator
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, op)
	}
	return operators, rows.Err()
}

func (r *SnapshotRepository) loadRequests(ctx context.Context, orgID uuid.UUID) ([]*model.ServiceRequest, error) {
	query := `
		SELECT id, org_id, order_no, location, required_skills, priority,
			duration_hours, window_start, window_end, sla_deadline, customer_tier,
			created_at, updated_at
		FROM service_requests
		WHERE org_id = $1 AND status = 'pending' AND deleted_at IS NULL
		ORDER BY priority DESC, sla_deadline
	`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("查询服务请求失败: %w", err)
	}
	defer rows.Close()

	var requests []*model.ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *SnapshotRepository) loadEmployees(ctx context.Context, orgID uuid.UUID) ([]*model.Employee, error) {
	query := `
		SELECT id, org_id, name, skills, max_hours_per_week, availability_days,
			created_at, updated_at
		FROM employees
		WHERE org_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}
	defer rows.Close()

	var employees []*model.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (r *SnapshotRepository) loadSlots(ctx context.Context, orgID uuid.UUID) ([]*model.ShiftSlot, error) {
	query := `
		SELECT id, org_id, slot_date, start_time, end_time, required_skills, agents_needed,
			created_at, updated_at
		FROM shift_slots
		WHERE org_id = $1 AND deleted_at IS NULL
		ORDER BY slot_date, start_time
	`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("查询班次槽位失败: %w", err)
	}
	defer rows.Close()

	var slots []*model.ShiftSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func scanOperator(s Scanner) (*model.Operator, error) {
	var op model.Operator
	var primarySkills, secondarySkills, coverageZones []string
	var locJSON []byte

	err := s.Scan(
		&op.ID, &op.OrgID, &op.Name, &op.Code,
		pq.Array(&primarySkills), pq.Array(&secondarySkills),
		&locJSON, pq.Array(&coverageZones),
		&op.PerformanceScore, &op.Capacity,
		&op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描人员行失败: %w", err)
	}

	op.PrimarySkills = model.SkillSet(primarySkills)
	op.SecondarySkills = model.SkillSet(secondarySkills)
	op.CoverageZones = coverageZones
	if len(locJSON) > 0 {
		if err := json.Unmarshal(locJSON, &op.Location); err != nil {
			return nil, fmt.Errorf("解析人员位置失败: %w", err)
		}
	}
	return &op, nil
}

func scanRequest(s Scanner) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	var requiredSkills []string
	var locJSON []byte

	err := s.Scan(
		&req.ID, &req.OrgID, &req.OrderNo,
		&locJSON, pq.Array(&requiredSkills), &req.Priority,
		&req.DurationHours, &req.TimeWindow.Start, &req.TimeWindow.End,
		&req.SLADeadline, &req.CustomerTier,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描服务请求行失败: %w", err)
	}

	req.RequiredSkills = model.SkillSet(requiredSkills)
	if len(locJSON) > 0 {
		if err := json.Unmarshal(locJSON, &req.Location); err != nil {
			return nil, fmt.Errorf("解析请求位置失败: %w", err)
		}
	}
	return &req, nil
}

func scanEmployee(s Scanner) (*model.Employee, error) {
	var emp model.Employee
	var skills []string
	var days []int64

	err := s.Scan(
		&emp.ID, &emp.OrgID, &emp.Name,
		pq.Array(&skills), &emp.MaxHoursPerWeek, pq.Array(&days),
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描员工行失败: %w", err)
	}

	emp.Skills = model.SkillSet(skills)
	emp.AvailabilityDays = intsToWeekdays(days)
	return &emp, nil
}

func scanSlot(s Scanner) (*model.ShiftSlot, error) {
	var slot model.ShiftSlot
	var requiredSkills []string

	err := s.Scan(
		&slot.ID, &slot.OrgID, &slot.Date, &slot.StartTime, &slot.EndTime,
		pq.Array(&requiredSkills), &slot.AgentsNeeded,
		&slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描班次槽位行失败: %w", err)
	}

	slot.RequiredSkills = model.SkillSet(requiredSkills)
	return &slot, nil
}
