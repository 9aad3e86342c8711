package handler

import (
	"context"
	"errors"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/domain"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"
)

// conflictRetryDelay は同時更新の競合時にクライアントへ提示する再試行間隔です。
const conflictRetryDelay = 500 * time.Millisecond

// ineligibleViolationType は PreconditionFailure の違反種別です。
const ineligibleViolationType = "INELIGIBLE_STATE"

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, access.ErrInvalidActor):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return withDetails(codes.InvalidArgument, err, badRequest(err))
	case errors.Is(err, domain.ErrIneligibleState):
		return withDetails(codes.FailedPrecondition, err, preconditionFailure(err))
	case errors.Is(err, domain.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return withDetails(codes.Aborted, err, &errdetails.RetryInfo{RetryDelay: durationpb.New(conflictRetryDelay)})
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func withDetails(code codes.Code, err error, detail protoadapt.MessageV1) error {
	st := status.New(code, err.Error())
	if detail == nil {
		return st.Err()
	}
	detailed, derr := st.WithDetails(detail)
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

func badRequest(err error) protoadapt.MessageV1 {
	var de *domain.Error
	if !errors.As(err, &de) || len(de.Fields) == 0 {
		return nil
	}
	br := &errdetails.BadRequest{}
	for _, field := range de.Fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       field,
			Description: de.Reason,
		})
	}
	return br
}

func preconditionFailure(err error) protoadapt.MessageV1 {
	var failures []*domain.Error
	var batch *domain.BatchError
	var de *domain.Error
	switch {
	case errors.As(err, &batch):
		failures = batch.Failures
	case errors.As(err, &de):
		failures = []*domain.Error{de}
	default:
		return nil
	}

	pf := &errdetails.PreconditionFailure{}
	for _, f := range failures {
		pf.Violations = append(pf.Violations, &errdetails.PreconditionFailure_Violation{
			Type:        ineligibleViolationType,
			Subject:     f.Subject.String(),
			Description: f.Reason,
		})
	}
	return pf
}
