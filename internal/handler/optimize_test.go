package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diaodu/diaodu/pkg/errors"
	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/optimize"
)

func testHandler(t *testing.T) *OptimizeHandler {
	t.Helper()

	cfg := model.DefaultOptimizerConfig()
	cfg.PopulationSize = 10
	cfg.GenerationCount = 5
	cfg.ParallelWorkers = 1

	orchestrator, err := optimize.NewOrchestrator(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return NewOptimizeHandler(orchestrator, 0)
}

func scheduleBody(seed int64) OptimizeAPIRequest {
	return OptimizeAPIRequest{
		Seed: seed,
		Snapshot: &optimize.Snapshot{
			Employees: []*model.Employee{
				{
					BaseModel:       model.NewBaseModel(),
					Name:            "小王",
					Skills:          model.SkillSet{"通用"},
					MaxHoursPerWeek: 80,
				},
			},
			Slots: []*model.ShiftSlot{
				{
					BaseModel:      model.NewBaseModel(),
					Date:           "2026-03-02",
					StartTime:      "09:00",
					EndTime:        "17:00",
					RequiredSkills: model.SkillSet{"通用"},
					AgentsNeeded:   1,
				},
			},
		},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize/dispatch", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestOptimizeHandler_Dispatch(t *testing.T) {
	h := testHandler(t)

	body := OptimizeAPIRequest{
		Snapshot: &optimize.Snapshot{
			Operators: []*model.Operator{
				{
					BaseModel:        model.NewBaseModel(),
					Name:             "小王",
					PrimarySkills:    model.SkillSet{"电工"},
					Location:         model.Location{Latitude: 31.23, Longitude: 121.47},
					PerformanceScore: 0.8,
					Capacity:         1,
				},
			},
			Requests: []*model.ServiceRequest{
				{
					BaseModel:      model.NewBaseModel(),
					OrderNo:        "R1",
					RequiredSkills: model.SkillSet{"电工"},
					Location:       model.Location{Latitude: 31.24, Longitude: 121.48},
					Priority:       3,
					DurationHours:  2,
				},
			},
		},
	}

	rec := postJSON(t, h.Dispatch, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}

	var resp OptimizeAPIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.Success {
		t.Error("响应应标记成功")
	}
	if resp.Data == nil || len(resp.Data.Assignments) != 1 {
		t.Error("应返回一条分配")
	}
}

func TestOptimizeHandler_Dispatch_EmptySnapshot(t *testing.T) {
	h := testHandler(t)

	rec := postJSON(t, h.Dispatch, OptimizeAPIRequest{Snapshot: &optimize.Snapshot{}})

	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200", rec.Code)
	}

	var resp OptimizeAPIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data == nil || !resp.Data.Empty {
		t.Error("空快照应返回显式空结果")
	}
}

func TestOptimizeHandler_Dispatch_InvalidInput(t *testing.T) {
	h := testHandler(t)

	body := OptimizeAPIRequest{
		Snapshot: &optimize.Snapshot{
			Operators: []*model.Operator{
				{
					BaseModel:        model.NewBaseModel(),
					PerformanceScore: 3.0, // 超出 [0,1]
					Location:         model.Location{Latitude: 31.23, Longitude: 121.47},
				},
			},
			Requests: []*model.ServiceRequest{
				{
					BaseModel: model.NewBaseModel(),
					Priority:  3,
					Location:  model.Location{Latitude: 31.24, Longitude: 121.48},
				},
			},
		},
	}

	rec := postJSON(t, h.Dispatch, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", rec.Code)
	}

	var resp OptimizeAPIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Success {
		t.Error("校验失败不应标记成功")
	}
	if resp.Error == nil {
		t.Error("应返回错误详情")
	}
}

func TestOptimizeHandler_Schedule(t *testing.T) {
	h := testHandler(t)

	rec := postJSON(t, h.Schedule, scheduleBody(42))
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}

	var resp OptimizeAPIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data == nil || resp.Data.Schedule == nil {
		t.Fatal("应返回排班方案")
	}
	if resp.Warning != nil {
		t.Errorf("未截断的运行不应携带警告: %v", resp.Warning)
	}
}

func TestOptimizeHandler_Schedule_RunTimeoutTruncates(t *testing.T) {
	cfg := model.DefaultOptimizerConfig()
	cfg.PopulationSize = 10
	cfg.GenerationCount = 5
	cfg.ParallelWorkers = 1

	orchestrator, err := optimize.NewOrchestrator(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	h := NewOptimizeHandler(orchestrator, time.Nanosecond)

	rec := postJSON(t, h.Schedule, scheduleBody(42))
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}

	var resp OptimizeAPIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.Success {
		t.Error("截断的运行仍应标记成功")
	}
	if resp.Data == nil || !resp.Data.Metrics.Truncated {
		t.Fatal("超时运行应返回截断标记的已见最优方案")
	}
	if resp.Warning == nil || resp.Warning.Code != errors.CodeRunTruncated {
		t.Errorf("截断的运行应携带 RUN_TRUNCATED 警告: %+v", resp.Warning)
	}
}

func TestOptimizeHandler_MethodNotAllowed(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/optimize/dispatch", nil)
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("状态码 = %d, want 405", rec.Code)
	}
}

func TestOptimizeHandler_BadJSON(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/optimize/dispatch", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, want 400", rec.Code)
	}
}
