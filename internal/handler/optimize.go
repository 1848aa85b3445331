// Package handler 提供API处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/diaodu/diaodu/internal/metrics"
	"github.com/diaodu/diaodu/pkg/errors"
	"github.com/diaodu/diaodu/pkg/logger"
	"github.com/diaodu/diaodu/pkg/model"
	"github.com/diaodu/diaodu/pkg/optimize"
)

// OptimizeHandler 优化运行处理器
type OptimizeHandler struct {
	orchestrator *optimize.Orchestrator
	runTimeout   time.Duration
}

// NewOptimizeHandler 创建优化处理器
// runTimeout > 0 时限制单次运行耗时，超时由遗传搜索按已见最优截断返回
func NewOptimizeHandler(orchestrator *optimize.Orchestrator, runTimeout time.Duration) *OptimizeHandler {
	return &OptimizeHandler{orchestrator: orchestrator, runTimeout: runTimeout}
}

// OptimizeAPIRequest 优化API请求体
type OptimizeAPIRequest struct {
	OrgID uuid.UUID `json:"org_id"`

	// 可直接携带快照；为空时从数据库加载
	Snapshot *optimize.Snapshot `json:"snapshot,omitempty"`

	// 随机种子，0 表示按时间播种（仅排班模式）
	Seed int64 `json:"seed,omitempty"`
}

// OptimizeAPIResponse 优化API响应体
// Warning 携带非致命降级信息（如运行被截止时间截断），此时 Success 仍为 true
type OptimizeAPIResponse struct {
	Success bool             `json:"success"`
	Data    *optimize.Result `json:"data,omitempty"`
	Warning *errors.AppError `json:"warning,omitempty"`
	Error   *errors.AppError `json:"error,omitempty"`
}

// Dispatch 派单优化: POST /api/v1/optimize/dispatch
func (h *OptimizeHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, model.ModeDispatch)
}

// Schedule 排班优化: POST /api/v1/optimize/schedule
func (h *OptimizeHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, model.ModeSchedule)
}

func (h *OptimizeHandler) run(w http.ResponseWriter, r *http.Request, mode model.OptimizeMode) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OptimizeAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, errors.InvalidInput("body", err.Error()))
		return
	}

	logger.Info().
		Str("mode", string(mode)).
		Str("org_id", req.OrgID.String()).
		Bool("inline_snapshot", req.Snapshot != nil).
		Msg("接收优化请求")

	ctx := r.Context()
	if h.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.runTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := h.orchestrator.Run(ctx, optimize.Request{
		OrgID:    req.OrgID,
		Mode:     mode,
		Snapshot: req.Snapshot,
		Seed:     req.Seed,
	})
	metrics.RecordOptimizeRun(string(mode), err == nil, time.Since(start))

	if err != nil {
		logger.WithError(err).Str("mode", string(mode)).Msg("优化运行失败")
		sendError(w, err)
		return
	}

	recordRunMetrics(req.OrgID, mode, result)

	resp := OptimizeAPIResponse{
		Success: true,
		Data:    result,
	}
	if result.Metrics.Truncated {
		resp.Warning = errors.New(errors.CodeRunTruncated, "迭代因截止时间提前结束，返回已见最优方案")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// recordRunMetrics 将运行结果写入指标
func recordRunMetrics(orgID uuid.UUID, mode model.OptimizeMode, result *optimize.Result) {
	org := orgID.String()
	metrics.SetCoverageRate(org, string(mode), result.Metrics.CoverageRate)

	switch mode {
	case model.ModeDispatch:
		metrics.SetSkillMatchRate(org, result.Metrics.SkillMatchRate)
	case model.ModeSchedule:
		metrics.SetSolutionScore(org, string(mode), result.Metrics.FitnessScore)
		metrics.AddEvolutionGenerations(org, result.Generations)
	}
}

// sendError 按错误码写出JSON错误响应
func sendError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, errors.CodeInternal, "内部错误")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	json.NewEncoder(w).Encode(OptimizeAPIResponse{
		Success: false,
		Error:   appErr,
	})
}
