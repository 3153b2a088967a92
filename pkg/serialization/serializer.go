// Package serialization encodes workflow documents for storage. Stores
// pick a codec (JSON for debuggability, msgpack for density) and an
// optional compression layer; the pipeline is symmetric on read.
package serialization

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts a value to and from bytes.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() string
}

// JSONCodec encodes with encoding/json.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (JSONCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                    { return "json" }

// MsgpackCodec encodes with msgpack; the default for database payloads.
type MsgpackCodec struct{}

func (MsgpackCodec) Encode(v any) ([]byte, error)    { return msgpack.Marshal(v) }
func (MsgpackCodec) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (MsgpackCodec) Name() string                    { return "msgpack" }

// CompressionType selects the compression layer.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionGzip CompressionType = "gzip"
	CompressionZstd CompressionType = "zstd"
)

// Config holds serializer settings.
type Config struct {
	Codec       Codec
	Compression CompressionType
}

// Serializer runs the encode+compress pipeline.
type Serializer struct {
	config Config
}

// New creates a serializer. A nil codec defaults to msgpack.
func New(config Config) *Serializer {
	if config.Codec == nil {
		config.Codec = MsgpackCodec{}
	}
	return &Serializer{config: config}
}

// Default returns the store payload serializer: msgpack + zstd.
func Default() *Serializer {
	return New(Config{Codec: MsgpackCodec{}, Compression: CompressionZstd})
}

// Serialize encodes and compresses v.
func (s *Serializer) Serialize(v any) ([]byte, error) {
	data, err := s.config.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}
	data, err = s.compress(data)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return data, nil
}

// Deserialize decompresses and decodes data into v.
func (s *Serializer) Deserialize(data []byte, v any) error {
	data, err := s.decompress(data)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}
	if err := s.config.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("codec decoding failed: %w", err)
	}
	return nil
}

func (s *Serializer) compress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

func (s *Serializer) decompress(data []byte) ([]byte, error) {
	switch s.config.Compression {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}
