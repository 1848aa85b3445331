package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/pkg/model"
)

func TestEngine_Assign_SkillPartition(t *testing.T) {
	// 技能分别为 {电工}、{水暖}、{电工,水暖} 的三名人员
	// 两个请求分别需要电工和水暖，全能人员作后备
	engine := NewEngine(testConfig())

	opA := makeOperator("OP-A", model.SkillSet{"电工"}, 31.23, 121.47, 0.8)
	opB := makeOperator("OP-B", model.SkillSet{"水暖"}, 31.23, 121.47, 0.8)
	opAB := makeOperator("OP-AB", model.SkillSet{"电工", "水暖"}, 31.23, 121.47, 0.8)

	reqA := makeRequest("R-A", model.SkillSet{"电工"}, 31.23, 121.47, 3)
	reqB := makeRequest("R-B", model.SkillSet{"水暖"}, 31.23, 121.47, 3)

	assignments, err := engine.Assign(context.Background(),
		[]*model.Operator{opA, opB, opAB},
		[]*model.ServiceRequest{reqA, reqB})
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("分配数 = %d, want 2", len(assignments))
	}

	// 一对一：每个请求、每名人员至多出现一次
	seenOps := make(map[uuid.UUID]bool)
	seenReqs := make(map[uuid.UUID]bool)
	for _, a := range assignments {
		if seenOps[a.OperatorID] {
			t.Error("同一人员被分配多个请求")
		}
		if seenReqs[a.RequestID] {
			t.Error("同一请求被分配多次")
		}
		seenOps[a.OperatorID] = true
		seenReqs[a.RequestID] = true
	}
}

func TestEngine_Assign_MissingSkillUnassigned(t *testing.T) {
	// 没有任何人员具备所需技能时请求保持未分配，而非错误
	engine := NewEngine(testConfig())

	operators := []*model.Operator{
		makeOperator("OP1", model.SkillSet{"电工"}, 31.23, 121.47, 0.8),
		makeOperator("OP2", model.SkillSet{"水暖"}, 31.23, 121.47, 0.8),
	}
	requests := []*model.ServiceRequest{
		makeRequest("R1", model.SkillSet{"燃气"}, 31.23, 121.47, 5),
	}

	assignments, err := engine.Assign(context.Background(), operators, requests)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("分配数 = %d, want 0", len(assignments))
	}
}

func TestEngine_Assign_Empty(t *testing.T) {
	engine := NewEngine(testConfig())

	assignments, err := engine.Assign(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if assignments == nil {
		t.Fatal("空输入应返回空切片而非 nil")
	}
	if len(assignments) != 0 {
		t.Errorf("分配数 = %d, want 0", len(assignments))
	}
}

func TestEngine_Assign_Deterministic(t *testing.T) {
	engine := NewEngine(testConfig())

	operators := []*model.Operator{
		makeOperator("OP1", model.SkillSet{"电工"}, 31.23, 121.47, 0.9),
		makeOperator("OP2", model.SkillSet{"电工"}, 31.25, 121.49, 0.7),
	}
	requests := []*model.ServiceRequest{
		makeRequest("R1", model.SkillSet{"电工"}, 31.24, 121.48, 3),
	}

	first, err := engine.Assign(context.Background(), operators, requests)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	for k := 0; k < 5; k++ {
		again, err := engine.Assign(context.Background(), operators, requests)
		if err != nil {
			t.Fatalf("第 %d 次 Assign() error = %v", k, err)
		}
		if len(again) != len(first) {
			t.Fatalf("第 %d 次分配数不一致", k)
		}
		for i := range again {
			if again[i].OperatorID != first[i].OperatorID || again[i].RequestID != first[i].RequestID {
				t.Fatalf("第 %d 次分配结果不一致", k)
			}
		}
	}
}

func TestEngine_Assign_CancelledContext(t *testing.T) {
	engine := NewEngine(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Assign(ctx,
		[]*model.Operator{makeOperator("OP1", model.SkillSet{"电工"}, 31.23, 121.47, 0.8)},
		[]*model.ServiceRequest{makeRequest("R1", model.SkillSet{"电工"}, 31.23, 121.47, 3)})
	if err == nil {
		t.Error("已取消的上下文应返回错误")
	}
}

func TestEngine_Assign_FieldDerivation(t *testing.T) {
	cfg := testConfig()
	engine := NewEngine(cfg)

	op := makeOperator("OP1", model.SkillSet{"电工", "水暖"}, 31.23, 121.47, 0.8)
	req := makeRequest("R1", model.SkillSet{"电工"}, 31.23, 121.47, 3)
	req.DurationHours = 2.0
	req.TimeWindow = model.TimeRange{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
	}

	assignments, err := engine.Assign(context.Background(),
		[]*model.Operator{op}, []*model.ServiceRequest{req})
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("分配数 = %d, want 1", len(assignments))
	}

	a := assignments[0]
	if !a.ScheduledStart.Equal(req.TimeWindow.Start) {
		t.Errorf("计划开始 = %v, want 时间窗口起点", a.ScheduledStart)
	}

	// 同一位置行驶时间为 0，完成时刻 = 开始 + 服务时长
	wantCompletion := req.TimeWindow.Start.Add(2 * time.Hour)
	if !a.EstimatedCompletion.Equal(wantCompletion) {
		t.Errorf("预计完成 = %v, want %v", a.EstimatedCompletion, wantCompletion)
	}

	if a.SkillMatchPercentage != 100 {
		t.Errorf("技能匹配率 = %v, want 100", a.SkillMatchPercentage)
	}
	if a.AssignmentScore <= 0 || a.AssignmentScore > 1 {
		t.Errorf("分配得分 = %v, 期望在 (0,1] 范围内", a.AssignmentScore)
	}
}

func TestEngine_AssignWithCapacity(t *testing.T) {
	cfg := testConfig()
	engine := NewEngine(cfg)

	// 一名容量为 2 的人员面对三个请求：应分得两单
	op := makeOperator("OP1", model.SkillSet{"电工"}, 31.23, 121.47, 0.8)
	op.Capacity = 2

	requests := []*model.ServiceRequest{
		makeRequest("R1", model.SkillSet{"电工"}, 31.23, 121.47, 3),
		makeRequest("R2", model.SkillSet{"电工"}, 31.23, 121.47, 4),
		makeRequest("R3", model.SkillSet{"电工"}, 31.23, 121.47, 5),
	}

	assignments, err := engine.AssignWithCapacity(context.Background(),
		[]*model.Operator{op}, requests)
	if err != nil {
		t.Fatalf("AssignWithCapacity() error = %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("分配数 = %d, want 2", len(assignments))
	}

	// 请求不重复
	seen := make(map[uuid.UUID]bool)
	for _, a := range assignments {
		if a.OperatorID != op.ID {
			t.Error("分配给了未知人员")
		}
		if seen[a.RequestID] {
			t.Error("同一请求被分配多次")
		}
		seen[a.RequestID] = true
	}
}

func TestEngine_AssignWithCapacity_DefaultCapacity(t *testing.T) {
	engine := NewEngine(testConfig())

	// 容量未设置视为 1
	op := makeOperator("OP1", model.SkillSet{"电工"}, 31.23, 121.47, 0.8)
	op.Capacity = 0

	requests := []*model.ServiceRequest{
		makeRequest("R1", model.SkillSet{"电工"}, 31.23, 121.47, 3),
		makeRequest("R2", model.SkillSet{"电工"}, 31.23, 121.47, 3),
	}

	assignments, err := engine.AssignWithCapacity(context.Background(),
		[]*model.Operator{op}, requests)
	if err != nil {
		t.Fatalf("AssignWithCapacity() error = %v", err)
	}
	if len(assignments) != 1 {
		t.Errorf("分配数 = %d, want 1", len(assignments))
	}
}
