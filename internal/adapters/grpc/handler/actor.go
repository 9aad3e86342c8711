package handler

import (
	"context"
	"strings"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/access"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// 上流の認証基盤が付与する操作主体のメタデータキーです。
const (
	ActorIDHeader   = "x-actor-id"
	ActorKindHeader = "x-actor-kind"
)

// actorFromContext は受信メタデータから Actor を取り出します。
func actorFromContext(ctx context.Context) (access.Actor, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return access.Actor{}, status.Error(codes.Unauthenticated, "actor metadata is required")
	}
	id := firstValue(md, ActorIDHeader)
	kind := firstValue(md, ActorKindHeader)
	if id == "" || kind == "" {
		return access.Actor{}, status.Errorf(codes.Unauthenticated, "%s and %s are required", ActorIDHeader, ActorKindHeader)
	}
	return access.Actor{ID: id, Kind: access.ActorKind(strings.ToLower(kind))}, nil
}

func firstValue(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// WithActor は発信メタデータに Actor を設定します。クライアントとテストで使います。
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return metadata.AppendToOutgoingContext(ctx, ActorIDHeader, actor.ID, ActorKindHeader, string(actor.Kind))
}
