package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// EinoPDFTextExtractor 使用 Eino PDF Parser 逐页提取文本
// 页与页之间插入显式分页标记，下游的章节标题启发式不会跨页匹配
type EinoPDFTextExtractor struct {
	parser  *pdf.PDFParser
	logger  zerolog.Logger
	timeout time.Duration
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFTextExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.logger = logger
	}
}

// WithEinoTimeout 配置单文档解析超时，超时按文档损坏处理
func WithEinoTimeout(timeout time.Duration) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器
// 配置为按页分割，以便插入分页标记
func NewEinoPDFTextExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true, // 按页返回，页间插入分页标记
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFTextExtractor{
		parser:  p,
		logger:  zerolog.Nop(),
		timeout: constants.DefaultExtractTimeout,
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractTextFromBytes 从字节数组提取PDF全文
// 返回: 提取的文本内容, 解析器元数据, 错误
func (e *EinoPDFTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Debug().Str("uri", uri).Int("bytes", len(data)).Msg("开始提取PDF文本")

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(uri),
	)

	duration := time.Since(startTime)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", nil, NewCorruptDocumentError(types.FormatPDF,
				fmt.Sprintf("解析超时(%.0f秒)", e.timeout.Seconds()))
		}
		return "", nil, NewCorruptDocumentError(types.FormatPDF, err.Error())
	}

	if len(docs) == 0 {
		return "", nil, NewEmptyDocumentError(types.FormatPDF)
	}

	// 逐页拼接，页间插入分页标记行
	var sb strings.Builder
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n")
			sb.WriteString(constants.PageBreakMarker)
			sb.WriteString("\n")
		}
	}
	fullContent := sb.String()

	metadata := map[string]interface{}{
		"page_count":             len(docs),
		"text_length":            len(fullContent),
		"processing_duration_ms": duration.Milliseconds(),
	}

	e.logger.Debug().
		Int("pages", len(docs)).
		Int("chars", len(fullContent)).
		Dur("duration", duration).
		Msg("PDF提取完成")
	return fullContent, metadata, nil
}
