// Package nats はコミット済みの承認履歴を NATS へ配信します。
package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/core/audit"
	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/resilience"
	"github.com/rs/zerolog"
)

const publishOperation = "nats.publish"

// Conn は Publisher が利用する NATS 接続の部分集合です。
type Conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// Observer は配信結果を計測基盤へ通知します。
type Observer interface {
	ObservePublish(records int, err error)
}

// Options は接続と配信の設定です。
type Options struct {
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	MaxReconnects  int
	Executor       *resilience.Executor
	Observer       Observer
	Logger         zerolog.Logger
}

// Event は配信される JSON メッセージです。
type Event struct {
	ID          string    `json:"id"`
	SubjectKind string    `json:"subject_kind"`
	SubjectID   string    `json:"subject_id"`
	ActorID     string    `json:"actor_id"`
	ProfileName string    `json:"profile_name"`
	Event       string    `json:"event"`
	Status      string    `json:"status"`
	Observation string    `json:"observation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher は audit.Publisher の NATS 実装です。
type Publisher struct {
	conn     Conn
	subject  string
	executor *resilience.Executor
	observer Observer
	logger   zerolog.Logger
}

// Connect は NATS に接続して Publisher を返します。
func Connect(url, subject string, opts Options) (*Publisher, error) {
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := opts.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := opts.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	logger := opts.Logger

	conn, err := nats.Connect(
		url,
		nats.Name("compliance-workflow"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewPublisher(conn, subject, opts), nil
}

// NewPublisher は既存の接続から Publisher を生成します。
func NewPublisher(conn Conn, subject string, opts Options) *Publisher {
	return &Publisher{
		conn:     conn,
		subject:  subject,
		executor: opts.Executor,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
}

// Publish は履歴を 1 件ずつ "<subject>.<対象種別>" へ配信します。途中で失敗した場合は残りを配信しません。
func (p *Publisher) Publish(ctx context.Context, records []*audit.Record) error {
	var err error
	sent := 0
	for _, rec := range records {
		if err = p.publishOne(ctx, rec); err != nil {
			break
		}
		sent++
	}
	if p.observer != nil {
		p.observer.ObservePublish(sent, nil)
		if err != nil {
			p.observer.ObservePublish(len(records)-sent, err)
		}
	}
	return err
}

func (p *Publisher) publishOne(ctx context.Context, rec *audit.Record) error {
	payload, err := json.Marshal(toEvent(rec))
	if err != nil {
		return fmt.Errorf("nats: encode record %s: %w", rec.ID, err)
	}
	subject := p.subject + "." + strings.ToLower(string(rec.SubjectKind))

	call := func(context.Context) error {
		if err := p.conn.Publish(subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}
	if p.executor == nil {
		return call(ctx)
	}
	return p.executor.Execute(ctx, publishOperation, call, classify)
}

// Close は未送信のメッセージをフラッシュして接続を閉じます。
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.FlushTimeout(5 * time.Second); err != nil {
		p.logger.Warn().Err(err).Msg("nats flush before close failed")
	}
	p.conn.Close()
}

func toEvent(rec *audit.Record) Event {
	return Event{
		ID:          rec.ID,
		SubjectKind: string(rec.SubjectKind),
		SubjectID:   rec.SubjectID,
		ActorID:     rec.ActorID,
		ProfileName: rec.ProfileName,
		Event:       string(rec.Event),
		Status:      rec.Status,
		Observation: rec.Observation,
		CreatedAt:   rec.CreatedAt.UTC(),
	}
}

func classify(err error) resilience.Classification {
	switch {
	case err == nil:
		return resilience.Classification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.Classification{}
	case errors.Is(err, nats.ErrNoServers),
		errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrConnectionClosed),
		errors.Is(err, nats.ErrDisconnected),
		errors.Is(err, nats.ErrConnectionReconnecting):
		return resilience.Classification{Retryable: true, CountsAsFailure: true}
	default:
		return resilience.Classification{CountsAsFailure: true}
	}
}

var _ audit.Publisher = (*Publisher)(nil)
