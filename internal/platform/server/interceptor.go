package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader はリクエスト ID を運ぶメタデータキーです。
const RequestIDHeader = "x-request-id"

// RPCObserver は単項 RPC の結果を計測基盤へ通知します。
type RPCObserver interface {
	ObserveRPC(method, code string, elapsed time.Duration)
	ObserveThrottled()
}

// Limiter は RPC の受け入れ可否を判定します。golang.org/x/time/rate.Limiter が満たします。
type Limiter interface {
	Allow() bool
}

// NewRateLimiter はトークンバケット方式の Limiter を返します。rps が 0 以下の場合は nil です。
func NewRateLimiter(rps float64, burst int) Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// RequestLogging はリクエスト ID を採番し、ロガーをコンテキストへ載せて結果をログに残します。
func RequestLogging(base zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		logger := base.With().Str("request_id", requestID).Str("method", info.FullMethod).Logger()
		ctx = logger.WithContext(ctx)

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		event := logger.Info()
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss:
			event = logger.Error().Err(err)
		default:
			event = logger.Warn().Err(err)
		}
		event.Str("code", code.String()).Dur("elapsed", time.Since(start)).Msg("handled rpc")
		return resp, err
	}
}

// Observe は RPC ごとの件数と所要時間を記録します。
func Observe(observer RPCObserver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		observer.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

// RateLimit は Limiter が拒否した RPC を ResourceExhausted で返します。
func RateLimit(limiter Limiter, observer RPCObserver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !limiter.Allow() {
			if observer != nil {
				observer.ObserveThrottled()
			}
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
