package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"
)

var tracer = otel.Tracer("processor")

// ResumeProcessor 简历解析流水线门面
// 串联文本提取、章节切分、并行字段提取和记录装配四个阶段
// 无跨请求状态，可被多goroutine并发调用
type ResumeProcessor struct {
	components Components
	settings   Settings
}

// ParseOption 单次解析调用的选项
type ParseOption func(*parseSettings)

type parseSettings struct {
	sourceFilename string
}

// WithSourceFilename 提供源文件名，用于正文无姓名时的文件名兜底推断
func WithSourceFilename(filename string) ParseOption {
	return func(s *parseSettings) {
		s.sourceFilename = filename
	}
}

// NewResumeProcessor 按配置构建流水线
// 未被组件选项覆盖的组件按配置生成默认实现
func NewResumeProcessor(ctx context.Context, cfg *config.Config, compOpts []ComponentOpt, setOpts []SettingOpt) (*ResumeProcessor, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &ResumeProcessor{
		settings: Settings{
			MinConfidence: cfg.Fields.MinConfidence,
			ParserVersion: constants.DefaultParserVer,
		},
	}
	for _, opt := range setOpts {
		opt(&p.settings)
	}
	for _, opt := range compOpts {
		opt(&p.components)
	}

	if p.components.TextExtractor == nil {
		timeout := time.Duration(cfg.Extractor.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = constants.DefaultExtractTimeout
		}
		extractor, err := parser.NewTextExtractor(ctx, timeout,
			parser.WithTextExtractorLogger(p.settings.Logger))
		if err != nil {
			return nil, fmt.Errorf("初始化文本提取器失败: %w", err)
		}
		p.components.TextExtractor = extractor
	}
	if p.components.SectionSegmenter == nil {
		segmenter, err := parser.NewSectionSegmenter(parser.SegmenterConfig{
			MaxHeadingLen:   cfg.Segmenter.MaxHeadingLen,
			SectionKeywords: cfg.SectionKeywordTable(),
		})
		if err != nil {
			return nil, fmt.Errorf("初始化章节切分器失败: %w", err)
		}
		p.components.SectionSegmenter = segmenter
	}
	if p.components.EmailExtractor == nil {
		p.components.EmailExtractor = parser.NewEmailExtractor()
	}
	if p.components.PhoneExtractor == nil {
		p.components.PhoneExtractor = parser.NewPhoneExtractor(cfg.Fields.PhoneRegion)
	}
	if p.components.NameExtractor == nil {
		p.components.NameExtractor = parser.NewNameExtractor(cfg.NameVetoWordList())
	}
	if p.components.PositionExtractor == nil {
		p.components.PositionExtractor = parser.NewPositionExtractor()
	}
	if p.components.SkillExtractor == nil {
		p.components.SkillExtractor = parser.NewSkillExtractor(cfg.SkillStopWordList())
	}
	if p.components.EducationExtractor == nil {
		p.components.EducationExtractor = parser.NewEducationExtractor(cfg.DegreeKeywordList())
	}

	return p, nil
}

// Parse 执行一次完整解析，总是返回结构完整的记录
// 致命错误（格式不支持/文档损坏/文档为空）返回success=false的空记录和错误；
// 单个字段提取失败只留下空字段，不影响整体结果
func (p *ResumeProcessor) Parse(ctx context.Context, data []byte, format types.DocumentFormat, opts ...ParseOption) (*types.ResumeRecord, error) {
	var ps parseSettings
	for _, opt := range opts {
		opt(&ps)
	}

	// 事务ID只用于日志串联
	txID := uuid.NewString()[:8]
	start := time.Now()

	ctx, span := tracer.Start(ctx, "ResumeProcessor.Parse", trace.WithAttributes(
		attribute.String("document.format", string(format)),
		attribute.Int("document.size_bytes", len(data)),
		attribute.String("parse.transaction_id", txID),
	))
	defer span.End()

	logger := p.settings.Logger.With().
		Str("tx_id", txID).
		Str("format", string(format)).
		Str("parser_version", p.settings.ParserVersion).
		Logger()

	fail := func(err error, errorType tracing.ErrorType) (*types.ResumeRecord, error) {
		tracing.RecordError(span, err, errorType)
		logger.Warn().Err(err).Msg("简历解析失败")
		record := types.NewEmptyRecord()
		record.Error = err.Error()
		record.ProcessingTime = time.Since(start).Seconds()
		return record, err
	}

	text, err := p.components.TextExtractor.Extract(ctx, types.RawDocument{Data: data, Format: format})
	if err != nil {
		return fail(err, tracing.ErrorTypeExtraction)
	}
	span.SetAttributes(attribute.Int("document.text_length", len(text.Text)))

	sections, err := p.components.SectionSegmenter.Segment(ctx, text)
	if err != nil {
		return fail(err, tracing.ErrorTypeSegmentation)
	}
	span.SetAttributes(attribute.Int("document.section_count", len(sections)))

	candidates := p.extractFields(ctx, span, text, sections)

	// 正文没有任何姓名候选时用源文件名兜底
	if len(candidates.names) == 0 && ps.sourceFilename != "" {
		if c, ok := p.components.NameExtractor.ExtractFromFilename(ps.sourceFilename); ok {
			candidates.names = append(candidates.names, c)
		}
	}

	record := NewRecordAssembler(p.settings.MinConfidence).Assemble(candidates)
	record.ProcessingTime = time.Since(start).Seconds()

	logger.Info().
		Bool("success", record.Success).
		Float64("quality_score", record.QualityScore).
		Float64("processing_time", record.ProcessingTime).
		Int("positions", len(record.EmploymentHistory.Positions)).
		Int("skills", len(record.Skills)).
		Msg("简历解析完成")

	return record, nil
}

// extractFields 并行执行五路字段提取
// 每路都有panic隔离：单路崩溃只记录到span并留下空结果
func (p *ResumeProcessor) extractFields(ctx context.Context, span trace.Span, text *types.PlainText, sections []*types.Section) *fieldCandidates {
	candidates := &fieldCandidates{}
	g, gctx := errgroup.WithContext(ctx)

	run := func(field string, extract func(context.Context)) {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					tracing.RecordFieldFailure(span, field, fmt.Sprintf("%v", r))
				}
			}()
			extract(gctx)
			return nil
		})
	}

	run("name", func(ctx context.Context) {
		candidates.names = p.components.NameExtractor.Extract(ctx, text, sections)
	})
	run("email", func(ctx context.Context) {
		candidates.emails = p.components.EmailExtractor.Extract(ctx, text)
	})
	run("phone", func(ctx context.Context) {
		candidates.phones = p.components.PhoneExtractor.Extract(ctx, text)
	})
	run("positions", func(ctx context.Context) {
		candidates.positions = p.components.PositionExtractor.Extract(ctx, text, sections)
	})
	run("skills", func(ctx context.Context) {
		candidates.skills = p.components.SkillExtractor.Extract(ctx, sections)
	})
	run("education", func(ctx context.Context) {
		candidates.education = p.components.EducationExtractor.Extract(ctx, sections)
	})

	// 提取器不返回错误，Wait只用作汇合点
	_ = g.Wait()
	return candidates
}
