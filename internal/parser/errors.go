package parser

import (
	"errors"
	"fmt"

	"resume-parser-go/internal/types"
)

// 定义基础错误类型
// 这三类错误对整个解析请求是致命的，在章节切分之前短路返回
var (
	ErrUnsupportedFormat = errors.New("不支持的文档格式")
	ErrCorruptDocument   = errors.New("文档损坏或无法解析")
	ErrEmptyDocument     = errors.New("文档无可提取文本")
)

// ExtractError 包含详细信息的提取错误
type ExtractError struct {
	Format  types.DocumentFormat
	Op      string
	BaseErr error
	Detail  string
}

func (e *ExtractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 格式:%s): %s", e.BaseErr, e.Op, e.Format, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 格式:%s)", e.BaseErr, e.Op, e.Format)
}

func (e *ExtractError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ExtractError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数

func NewUnsupportedFormatError(format types.DocumentFormat, detail string) error {
	return &ExtractError{
		Format:  format,
		Op:      "dispatch",
		BaseErr: ErrUnsupportedFormat,
		Detail:  detail,
	}
}

func NewCorruptDocumentError(format types.DocumentFormat, detail string) error {
	return &ExtractError{
		Format:  format,
		Op:      "extract",
		BaseErr: ErrCorruptDocument,
		Detail:  detail,
	}
}

func NewEmptyDocumentError(format types.DocumentFormat) error {
	return &ExtractError{
		Format:  format,
		Op:      "extract",
		BaseErr: ErrEmptyDocument,
	}
}
