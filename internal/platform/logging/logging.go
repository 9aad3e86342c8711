// Package logging はプロセス全体で使う zerolog ロガーを構築します。
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ogurasousui/compliance-grpc-clean-arch/internal/platform/config"
	"github.com/rs/zerolog"
)

// New は設定に従ってロガーを生成します。format が console の場合は人間向けの出力になります。
func New(cfg config.LoggingConfig) (zerolog.Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter は出力先を指定してロガーを生成します。
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: parse level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "compliance").Logger(), nil
}
