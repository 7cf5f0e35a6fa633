package processor

import (
	"github.com/rs/zerolog"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// Components 流水线的可替换组件集合
// 未显式指定的组件在构造时按配置生成默认实现
type Components struct {
	TextExtractor      TextExtractor
	SectionSegmenter   SectionSegmenter
	EmailExtractor     EmailFieldExtractor
	PhoneExtractor     PhoneFieldExtractor
	NameExtractor      NameFieldExtractor
	PositionExtractor  PositionFieldExtractor
	SkillExtractor     SkillFieldExtractor
	EducationExtractor EducationFieldExtractor
}

// Settings 流水线的行为设置
type Settings struct {
	// 多值字段进入最终记录的置信度下限
	MinConfidence float64

	// 解析器版本号，写入日志用
	ParserVersion string

	Logger zerolog.Logger
}

// ----- 组件选项 -----

// WithcompTextextractor 设置文本提取器组件
func WithcompTextextractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithcompSectionsegmenter 设置章节切分器组件
func WithcompSectionsegmenter(segmenter SectionSegmenter) ComponentOpt {
	return func(c *Components) {
		c.SectionSegmenter = segmenter
	}
}

// WithcompEmailextractor 设置邮箱提取器组件
func WithcompEmailextractor(extractor EmailFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.EmailExtractor = extractor
	}
}

// WithcompPhoneextractor 设置电话提取器组件
func WithcompPhoneextractor(extractor PhoneFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.PhoneExtractor = extractor
	}
}

// WithcompNameextractor 设置姓名提取器组件
func WithcompNameextractor(extractor NameFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.NameExtractor = extractor
	}
}

// WithcompPositionextractor 设置工作经历提取器组件
func WithcompPositionextractor(extractor PositionFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.PositionExtractor = extractor
	}
}

// WithcompSkillextractor 设置技能提取器组件
func WithcompSkillextractor(extractor SkillFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.SkillExtractor = extractor
	}
}

// WithcompEducationextractor 设置学历提取器组件
func WithcompEducationextractor(extractor EducationFieldExtractor) ComponentOpt {
	return func(c *Components) {
		c.EducationExtractor = extractor
	}
}

// ----- 设置选项 -----

// WithsetMinconfidence 设置置信度下限
func WithsetMinconfidence(min float64) SettingOpt {
	return func(s *Settings) {
		s.MinConfidence = min
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// WithsetParserversion 设置解析器版本号
func WithsetParserversion(version string) SettingOpt {
	return func(s *Settings) {
		s.ParserVersion = version
	}
}
