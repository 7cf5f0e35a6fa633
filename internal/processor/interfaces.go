package processor

import (
	"context"

	"resume-parser-go/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 文本提取器接口
// 把声明格式的原始字节转换为纯文本
type TextExtractor interface {
	// Extract 从RawDocument提取纯文本
	// 失败时返回格式不支持/文档损坏/文档为空三类错误之一
	Extract(ctx context.Context, doc types.RawDocument) (*types.PlainText, error)
}

//
// 章节切分相关接口
//

// SectionSegmenter 章节切分器接口
type SectionSegmenter interface {
	// Segment 把纯文本切分为带标签的章节序列
	Segment(ctx context.Context, text *types.PlainText) ([]*types.Section, error)
}

//
// 字段提取相关接口
// 每个提取器在独立的作用范围内产出带置信度的候选值，
// 单个提取器失败不影响其他字段
//

// EmailFieldExtractor 邮箱提取器接口
type EmailFieldExtractor interface {
	Extract(ctx context.Context, text *types.PlainText) []types.Candidate[string]
}

// PhoneFieldExtractor 电话提取器接口
type PhoneFieldExtractor interface {
	Extract(ctx context.Context, text *types.PlainText) []types.Candidate[string]
}

// NameFieldExtractor 姓名提取器接口
type NameFieldExtractor interface {
	Extract(ctx context.Context, text *types.PlainText, sections []*types.Section) []types.Candidate[string]
	// ExtractFromFilename 从源文件名推断姓名的兜底路径
	ExtractFromFilename(filename string) (types.Candidate[string], bool)
}

// PositionFieldExtractor 工作经历提取器接口
type PositionFieldExtractor interface {
	Extract(ctx context.Context, text *types.PlainText, sections []*types.Section) []types.Candidate[types.Position]
}

// SkillFieldExtractor 技能提取器接口
type SkillFieldExtractor interface {
	Extract(ctx context.Context, sections []*types.Section) []types.Candidate[string]
}

// EducationFieldExtractor 学历提取器接口
type EducationFieldExtractor interface {
	Extract(ctx context.Context, sections []*types.Section) []types.Candidate[types.EducationEntry]
}
