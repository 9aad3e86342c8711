// Package jsoncodec は compliance.v1 のメッセージを JSON で送受信する gRPC コーデックです。
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name は content-subtype として使うコーデック名です。
const Name = "json"

// Codec は encoding.Codec の JSON 実装です。
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Name はコーデック名を返します。
func (Codec) Name() string {
	return Name
}

// Marshal は v を JSON に変換します。
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsoncodec: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal は空のペイロードを零値として扱います。
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("jsoncodec: unmarshal %T: %w", v, err)
	}
	return nil
}
