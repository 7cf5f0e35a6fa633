package parser

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.sajari.com/docconv"
	"github.com/rs/zerolog"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// Word文档的MIME类型
const (
	mimeTypeDOC  = "application/msword"
	mimeTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// WordTextExtractor 使用 docconv 提取 DOC/DOCX 文本
// 按文档顺序输出段落文本，每段一行，空行保留为段落分隔
type WordTextExtractor struct {
	logger  zerolog.Logger
	timeout time.Duration
	tmpDir  string // 临时文件目录，为空则使用系统默认
}

// WordOption Word提取器的配置选项
type WordOption func(*WordTextExtractor)

// WithWordLogger 配置自定义日志记录器
func WithWordLogger(logger zerolog.Logger) WordOption {
	return func(w *WordTextExtractor) {
		w.logger = logger
	}
}

// WithWordTimeout 配置单文档解析超时
func WithWordTimeout(timeout time.Duration) WordOption {
	return func(w *WordTextExtractor) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// NewWordTextExtractor 初始化Word文本提取器
func NewWordTextExtractor(options ...WordOption) *WordTextExtractor {
	extractor := &WordTextExtractor{
		logger:  zerolog.Nop(),
		timeout: constants.DefaultExtractTimeout,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// ExtractTextFromBytes 从字节数组提取Word文档全文
// 字节内容先落到请求级临时文件再交给docconv；临时文件在所有退出路径上
// （成功、失败、超时）都保证在返回前删除
func (w *WordTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, format types.DocumentFormat) (string, map[string]interface{}, error) {
	mimeType := mimeTypeDOCX
	if format == types.FormatDOC {
		mimeType = mimeTypeDOC
	}

	startTime := time.Now()
	w.logger.Debug().Str("format", string(format)).Int("bytes", len(data)).Msg("开始提取Word文本")

	tmpFile, err := os.CreateTemp(w.tmpDir, "resume-*."+string(format))
	if err != nil {
		return "", nil, NewCorruptDocumentError(format, fmt.Sprintf("创建临时文件失败: %v", err))
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // 任何退出路径都删除临时文件
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return "", nil, NewCorruptDocumentError(format, fmt.Sprintf("写入临时文件失败: %v", err))
	}
	if _, err := tmpFile.Seek(0, 0); err != nil {
		return "", nil, NewCorruptDocumentError(format, fmt.Sprintf("重置临时文件失败: %v", err))
	}

	// docconv不接受context，用goroutine加超时通道约束解析时间
	type convResult struct {
		res *docconv.Response
		err error
	}
	resultCh := make(chan convResult, 1)
	go func() {
		res, err := docconv.Convert(tmpFile, mimeType, false)
		resultCh <- convResult{res: res, err: err}
	}()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	select {
	case <-ctx.Done():
		return "", nil, NewCorruptDocumentError(format,
			fmt.Sprintf("解析超时(%.0f秒)", w.timeout.Seconds()))
	case result := <-resultCh:
		if result.err != nil {
			return "", nil, NewCorruptDocumentError(format, result.err.Error())
		}
		if result.res == nil || result.res.Body == "" {
			return "", nil, NewEmptyDocumentError(format)
		}

		duration := time.Since(startTime)
		metadata := map[string]interface{}{
			"text_length":            len(result.res.Body),
			"processing_duration_ms": duration.Milliseconds(),
		}
		w.logger.Debug().
			Int("chars", len(result.res.Body)).
			Dur("duration", duration).
			Msg("Word提取完成")
		return result.res.Body, metadata, nil
	}
}
