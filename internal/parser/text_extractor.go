package parser

import (
	"bytes"
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"resume-parser-go/internal/types"
)

// TextExtractor 按声明格式把原始文档转换为纯文本
// 纯字节变换，不持有跨请求状态
type TextExtractor struct {
	pdf    *EinoPDFTextExtractor
	word   *WordTextExtractor
	logger zerolog.Logger
}

// TextExtractorOption 文本提取器的配置选项
type TextExtractorOption func(*TextExtractor)

// WithTextExtractorLogger 配置自定义日志记录器
func WithTextExtractorLogger(logger zerolog.Logger) TextExtractorOption {
	return func(t *TextExtractor) {
		t.logger = logger
	}
}

// NewTextExtractor 初始化文本提取器，内部构建各格式的子提取器
func NewTextExtractor(ctx context.Context, timeout time.Duration, options ...TextExtractorOption) (*TextExtractor, error) {
	pdfExtractor, err := NewEinoPDFTextExtractor(ctx, WithEinoTimeout(timeout))
	if err != nil {
		return nil, err
	}

	extractor := &TextExtractor{
		pdf:    pdfExtractor,
		word:   NewWordTextExtractor(WithWordTimeout(timeout)),
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// Extract 把RawDocument转换为PlainText
// 失败类型：ErrUnsupportedFormat / ErrCorruptDocument / ErrEmptyDocument
func (t *TextExtractor) Extract(ctx context.Context, doc types.RawDocument) (*types.PlainText, error) {
	if !doc.Format.Valid() {
		return nil, NewUnsupportedFormatError(doc.Format, "声明格式不在 pdf/doc/docx/txt 范围内")
	}
	if len(doc.Data) == 0 {
		return nil, NewEmptyDocumentError(doc.Format)
	}

	var (
		text string
		err  error
	)
	switch doc.Format {
	case types.FormatPDF:
		text, _, err = t.pdf.ExtractTextFromBytes(ctx, doc.Data, "upload.pdf")
	case types.FormatDOC, types.FormatDOCX:
		text, _, err = t.word.ExtractTextFromBytes(ctx, doc.Data, doc.Format)
	case types.FormatTXT:
		text, err = t.extractPlainTxt(doc.Data)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, NewEmptyDocumentError(doc.Format)
	}

	return NewPlainText(text), nil
}

// extractPlainTxt TXT直通，仅统一换行符
// 声明为TXT但实际是二进制内容（如误报格式的PDF）按文档损坏处理
func (t *TextExtractor) extractPlainTxt(data []byte) (string, error) {
	if bytes.IndexByte(data, 0x00) >= 0 || !utf8.Valid(data) {
		return "", NewCorruptDocumentError(types.FormatTXT, "内容不是有效的文本（声明格式可能有误）")
	}
	return normalizeLineEndings(string(data)), nil
}

// NewPlainText 把文本包装为带行切分的PlainText
func NewPlainText(text string) *types.PlainText {
	normalized := normalizeLineEndings(text)
	return &types.PlainText{
		Text:  normalized,
		Lines: strings.Split(normalized, "\n"),
	}
}

// normalizeLineEndings 统一CRLF/CR为LF
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
