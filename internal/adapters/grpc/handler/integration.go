package handler

import (
	"context"
	"fmt"

	compliancev1 "github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/grpc/compliancev1"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/schedule"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IntegrationGrpcHandler は IntegrationService の gRPC 実装です。
type IntegrationGrpcHandler struct {
	svc       employee.UseCase
	scheduler schedule.UseCase
	compliancev1.UnimplementedIntegrationServiceServer
}

// NewIntegrationGrpcHandler は IntegrationGrpcHandler を生成します。
func NewIntegrationGrpcHandler(svc employee.UseCase, scheduler schedule.UseCase) *IntegrationGrpcHandler {
	return &IntegrationGrpcHandler{svc: svc, scheduler: scheduler}
}

// GetIntegration はインテグレーション状態と有効性を返します。
func (h *IntegrationGrpcHandler) GetIntegration(ctx context.Context, req *compliancev1.GetIntegrationRequest) (*compliancev1.GetIntegrationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetIntegration(ctx, employee.GetIntegrationInput{Actor: actor, EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.GetIntegrationResponse{Integration: toProtoIntegration(found)}, nil
}

// ScheduleIntegrations は複数従業員のインテグレーションを一括で予約します。1 名でも不適格なら全体を拒否します。
func (h *IntegrationGrpcHandler) ScheduleIntegrations(ctx context.Context, req *compliancev1.ScheduleIntegrationsRequest) (*compliancev1.ScheduleIntegrationsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	asoDate, err := parseDate(req.AsoDate)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("aso_date: %v", err))
	}

	result, err := h.scheduler.Schedule(ctx, schedule.Request{
		Actor:         actor,
		EmployeeIDs:   req.EmployeeIDs,
		ScheduledAt:   req.ScheduledAt,
		ContractID:    req.ContractID,
		Assignment:    toDomainAssignment(req.Assignment),
		AsoDate:       asoDate,
		Justification: req.Justification,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &compliancev1.ScheduleIntegrationsResponse{
		Employees: toProtoScheduled(result.Employees),
		Records:   toProtoRecords(result.Records),
	}, nil
}

// ApproveIntegration は書類状況に関係なくインテグレーションを手動承認します。
func (h *IntegrationGrpcHandler) ApproveIntegration(ctx context.Context, req *compliancev1.ApproveIntegrationRequest) (*compliancev1.ApproveIntegrationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.ApproveIntegration(ctx, employee.ApproveIntegrationInput{
		Actor:       actor,
		EmployeeID:  req.EmployeeID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.ApproveIntegrationResponse{Integration: toProtoIntegration(updated)}, nil
}

// ConfirmSchedule は予約提案を確定します。
func (h *IntegrationGrpcHandler) ConfirmSchedule(ctx context.Context, req *compliancev1.ConfirmScheduleRequest) (*compliancev1.ConfirmScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	asoDate, err := parseDate(req.AsoDate)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("aso_date: %v", err))
	}

	updated, err := h.svc.ConfirmSchedule(ctx, employee.ConfirmScheduleInput{
		Actor:                   actor,
		EmployeeID:              req.EmployeeID,
		AsoDate:                 asoDate,
		AsoValidityDays:         fromInt32Ptr(req.AsoValidityDays),
		IntegrationValidityDays: fromInt32Ptr(req.IntegrationValidityDays),
		Observation:             req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.ConfirmScheduleResponse{Integration: toProtoIntegration(updated)}, nil
}

// DeclineSchedule は予約提案を差し戻します。
func (h *IntegrationGrpcHandler) DeclineSchedule(ctx context.Context, req *compliancev1.DeclineScheduleRequest) (*compliancev1.DeclineScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.DeclineSchedule(ctx, employee.DeclineScheduleInput{
		Actor:       actor,
		EmployeeID:  req.EmployeeID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.DeclineScheduleResponse{Integration: toProtoIntegration(updated)}, nil
}

// ConfirmPresence は出席を確認して REALIZADA にします。
func (h *IntegrationGrpcHandler) ConfirmPresence(ctx context.Context, req *compliancev1.ConfirmPresenceRequest) (*compliancev1.ConfirmPresenceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := h.svc.ConfirmPresence(ctx, employee.ConfirmPresenceInput{
		Actor:       actor,
		EmployeeID:  req.EmployeeID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.ConfirmPresenceResponse{Integration: toProtoIntegration(updated)}, nil
}

// GetIntegrationHistory は従業員の承認履歴を返します。
func (h *IntegrationGrpcHandler) GetIntegrationHistory(ctx context.Context, req *compliancev1.GetIntegrationHistoryRequest) (*compliancev1.GetIntegrationHistoryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := h.svc.IntegrationHistory(ctx, employee.IntegrationHistoryInput{Actor: actor, EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.GetIntegrationHistoryResponse{Records: toProtoRecords(records)}, nil
}
