package domains

import (
	"context"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"

	"eops/ratesync/internal/business"
	"eops/ratesync/internal/domains/common/job"
	"eops/ratesync/internal/domains/common/response"
	"eops/ratesync/pkg/lmstfyx"
	"eops/ratesync/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
// 业务服务通过 Context 传递给 Handler
func GetProcess(log logger.Logger, quoteService *business.QuoteService, pricingService *business.PricingService) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		standardJob, meta, bizPayload, err := parseJob(ctx, lmstfyJob, log)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: %v", err)
			return &lmstfyx.JobResp{
				Action: lmstfyx.JobRespStatusBury,
				Data:   nil,
			}
		}

		// 2. 注入 TraceID 和依赖到 Context
		ctx = context.WithValue(ctx, "trace_id", meta.RequestID)
		ctx = context.WithValue(ctx, "action_type", standardJob.Payload.Data.ActionType)
		ctx = context.WithValue(ctx, "start_time", startTime)
		if quoteService != nil {
			ctx = context.WithValue(ctx, "quote_service", quoteService)
		}
		if pricingService != nil {
			ctx = context.WithValue(ctx, "pricing_service", pricingService)
		}

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		// 3. 从 HandlerMap 获取 Handler
		handlerFunc, ok := HandlerMap[standardJob.Payload.Data.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", standardJob.Payload.Data.ActionType)
			return &lmstfyx.JobResp{
				Action: lmstfyx.JobRespStatusBury,
				Data:   nil,
			}
		}

		// 4. 调用 Handler（捕获 panic）
		var resp *lmstfyx.JobResp
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
					resp = &lmstfyx.JobResp{
						Action: lmstfyx.JobRespStatusBury,
						Data:   nil,
					}
				}
			}()

			handler, err := handlerFunc(ctx, meta, bizPayload)
			if err != nil {
				log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
				resp = &lmstfyx.JobResp{
					Action: lmstfyx.JobRespStatusBury,
					Data:   nil,
				}
				return
			}

			handlerResp := handler.GetProcess()
			resp = doJobReport(ctx, handlerResp, log)
		}()

		// 5. 记录处理时长
		duration := time.Since(startTime)
		log.Infof(ctx, "[GetProcess] Processing complete: action=%d, duration=%v", resp.Action, duration)

		return resp
	}
}

// parseJob 解析 Job
func parseJob(ctx context.Context, lmstfyJob *client.Job, log logger.Logger) (*job.Job, *job.Meta, interface{}, error) {
	// 1. 反序列化 Job
	var standardJob job.Job
	if err := gojson.Unmarshal(lmstfyJob.Data, &standardJob); err != nil {
		return nil, nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	// 2. 校验必填字段
	if standardJob.Payload == nil || standardJob.Payload.Data == nil {
		return nil, nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := standardJob.Payload.Data

	// 3. 提取元数据
	meta := &job.Meta{
		RequestID:  data.RequestID,
		OrgID:      data.OrgID,
		ActionType: data.ActionType,
		ID:         data.ID,
	}

	// RequestID 为空则生成一个
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	// 4. 提取业务数据
	bizPayload := data.Data

	log.Debugf(ctx, "[parseJob] Parsed: action_type=%s, request_id=%s, id=%s",
		meta.ActionType, meta.RequestID, meta.ID)

	return &standardJob, meta, bizPayload, nil
}

// doJobReport 生成 JobResp（根据 Response.Error.Retryable 判断 ACK/Bury/Release）
func doJobReport(ctx context.Context, resp *response.Response, log logger.Logger) *lmstfyx.JobResp {
	data, err := gojson.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] marshal response failed: %v", err)
		return &lmstfyx.JobResp{
			Action: lmstfyx.JobRespStatusBury,
			Data:   nil,
		}
	}

	if resp.Error != nil {
		if resp.Error.Retryable {
			return &lmstfyx.JobResp{
				Action: lmstfyx.JobRespStatusRelease,
				Data:   data,
			}
		}
		return &lmstfyx.JobResp{
			Action: lmstfyx.JobRespStatusBury,
			Data:   data,
		}
	}

	return &lmstfyx.JobResp{
		Action: lmstfyx.JobRespStatusSuccess,
		Data:   data,
	}
}
