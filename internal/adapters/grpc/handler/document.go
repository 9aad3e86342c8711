package handler

import (
	"context"
	"strings"

	compliancev1 "github.com/ogurasousui/compliance-grpc-clean-arch/internal/adapters/grpc/compliancev1"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/document"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DocumentGrpcHandler は DocumentService の gRPC 実装です。
type DocumentGrpcHandler struct {
	svc document.UseCase
	compliancev1.UnimplementedDocumentServiceServer
}

// NewDocumentGrpcHandler は DocumentGrpcHandler を生成します。
func NewDocumentGrpcHandler(svc document.UseCase) *DocumentGrpcHandler {
	return &DocumentGrpcHandler{svc: svc}
}

// SubmitDocument は書類を提出します。
func (h *DocumentGrpcHandler) SubmitDocument(ctx context.Context, req *compliancev1.SubmitDocumentRequest) (*compliancev1.SubmitDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.SubmitDocument(ctx, document.SubmitDocumentInput{
		Actor:       actor,
		Class:       document.Class(strings.ToUpper(strings.TrimSpace(req.Class))),
		OwnerID:     req.OwnerID,
		Type:        req.Type,
		Competence:  req.Competence,
		FileRef:     req.FileRef,
		FileHash:    req.FileHash,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.SubmitDocumentResponse{Document: toProtoDocument(doc)}, nil
}

// JustifyDocument は書類に補足説明を付けて再審査待ちにします。
func (h *DocumentGrpcHandler) JustifyDocument(ctx context.Context, req *compliancev1.JustifyDocumentRequest) (*compliancev1.JustifyDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.JustifyDocument(ctx, document.JustifyDocumentInput{
		Actor:       actor,
		DocumentID:  req.DocumentID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.JustifyDocumentResponse{Document: toProtoDocument(doc)}, nil
}

// ApproveDocument は書類を承認します。
func (h *DocumentGrpcHandler) ApproveDocument(ctx context.Context, req *compliancev1.ApproveDocumentRequest) (*compliancev1.ApproveDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.ApproveDocument(ctx, document.ReviewDocumentInput{
		Actor:       actor,
		DocumentID:  req.DocumentID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.ApproveDocumentResponse{Document: toProtoDocument(doc)}, nil
}

// RejectDocument は書類を却下します。
func (h *DocumentGrpcHandler) RejectDocument(ctx context.Context, req *compliancev1.RejectDocumentRequest) (*compliancev1.RejectDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.RejectDocument(ctx, document.ReviewDocumentInput{
		Actor:       actor,
		DocumentID:  req.DocumentID,
		Observation: req.Observation,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.RejectDocumentResponse{Document: toProtoDocument(doc)}, nil
}

// GetDocument は書類を取得します。
func (h *DocumentGrpcHandler) GetDocument(ctx context.Context, req *compliancev1.GetDocumentRequest) (*compliancev1.GetDocumentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := h.svc.GetDocument(ctx, document.GetDocumentInput{Actor: actor, DocumentID: req.DocumentID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.GetDocumentResponse{Document: toProtoDocument(doc)}, nil
}

// ListEmployeeDocuments は従業員書類の一覧を返します。
func (h *DocumentGrpcHandler) ListEmployeeDocuments(ctx context.Context, req *compliancev1.ListEmployeeDocumentsRequest) (*compliancev1.ListEmployeeDocumentsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := h.svc.ListEmployeeDocuments(ctx, document.ListEmployeeDocumentsInput{Actor: actor, EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}

	out := make([]*compliancev1.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, toProtoDocument(d))
	}
	return &compliancev1.ListEmployeeDocumentsResponse{Documents: out}, nil
}

// GetDocumentHistory は書類の承認履歴を古い順に返します。
func (h *DocumentGrpcHandler) GetDocumentHistory(ctx context.Context, req *compliancev1.GetDocumentHistoryRequest) (*compliancev1.GetDocumentHistoryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := h.svc.DocumentHistory(ctx, document.DocumentHistoryInput{Actor: actor, DocumentID: req.DocumentID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.GetDocumentHistoryResponse{Records: toProtoRecords(records)}, nil
}

// GetDocumentationStatus は従業員書類一式の集約状態を返します。
func (h *DocumentGrpcHandler) GetDocumentationStatus(ctx context.Context, req *compliancev1.GetDocumentationStatusRequest) (*compliancev1.GetDocumentationStatusResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := h.svc.DocumentationStatus(ctx, document.DocumentationStatusInput{Actor: actor, EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &compliancev1.GetDocumentationStatusResponse{Documentation: toProtoDocumentation(docs)}, nil
}
