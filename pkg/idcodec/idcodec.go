// Package idcodec converts internal entity keys to the opaque identifiers handed to clients
// Package idcodec 在内部主键与对外暴露的不透明标识之间转换
package idcodec

import (
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrMalformed is returned when an opaque identifier cannot be decoded
var ErrMalformed = errors.New("malformed opaque identifier")

// Codec reversible encoding between entity keys and opaque strings
// Codec 主键与不透明字符串之间的可逆编码
type Codec interface {
	Encode(id uuid.UUID) string
	Decode(s string) (uuid.UUID, error)
}

// Config codec configuration
// Config 编码配置
type Config struct {
	// Alphabet custom 64 character alphabet, empty for base64url
	// Alphabet 自定义 64 位字符表，为空时使用 base64url
	Alphabet string
}

type base64Codec struct {
	enc *base64.Encoding
}

// New creates a Codec, it returns an error when the alphabet is not usable
// New 创建 Codec，字符表不可用时返回错误
func New(cfg Config) (c Codec, err error) {
	if cfg.Alphabet == "" {
		return &base64Codec{enc: base64.RawURLEncoding}, nil
	}
	if len(cfg.Alphabet) != 64 {
		return nil, errors.Errorf("id codec alphabet must be 64 bytes, got %d", len(cfg.Alphabet))
	}

	// base64.NewEncoding panics on duplicate or reserved characters
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, errors.Errorf("invalid id codec alphabet: %v", r)
		}
	}()
	return &base64Codec{enc: base64.NewEncoding(cfg.Alphabet).WithPadding(base64.NoPadding)}, nil
}

// Encode 编码
func (c *base64Codec) Encode(id uuid.UUID) string {
	return c.enc.EncodeToString(id[:])
}

// Decode 解码
func (c *base64Codec) Decode(s string) (uuid.UUID, error) {
	b, err := c.enc.DecodeString(s)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrMalformed, err.Error())
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrMalformed, err.Error())
	}
	return id, nil
}
