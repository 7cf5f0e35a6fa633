package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// sectionPriority 多个关键词表同时命中一行时的显式优先级
// 经历章节的标题最可靠，错分代价也最高，排在最前
var sectionPriority = []types.SectionType{
	types.SectionExperience,
	types.SectionEducation,
	types.SectionSkills,
	types.SectionContact,
}

// SegmenterConfig 章节切分器的配置
type SegmenterConfig struct {
	// 标题行最大长度（字符数）
	MaxHeadingLen int

	// 章节关键词表：章节标签 -> 关键词列表
	// 未提供的标签使用默认表
	SectionKeywords map[string][]string
}

// SectionSegmenter 把纯文本切分为带标签的章节序列
type SectionSegmenter struct {
	config SegmenterConfig

	// 编译好的章节标题正则
	sectionRegexMap map[types.SectionType]*regexp.Regexp
}

// NewSectionSegmenter 创建章节切分器
// 每个标签的关键词表编译为一条整行匹配的正则（允许尾部冒号）
func NewSectionSegmenter(config SegmenterConfig) (*SectionSegmenter, error) {
	if config.MaxHeadingLen <= 0 {
		config.MaxHeadingLen = 48
	}

	segmenter := &SectionSegmenter{
		config:          config,
		sectionRegexMap: make(map[types.SectionType]*regexp.Regexp),
	}

	for label, keywords := range config.SectionKeywords {
		if len(keywords) == 0 {
			continue
		}
		sectionType := types.SectionType(strings.ToUpper(label))
		escaped := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			escaped = append(escaped, regexp.QuoteMeta(strings.TrimSpace(kw)))
		}
		pattern := `(?i)^(` + strings.Join(escaped, "|") + `)\s*:?\s*$`
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("编译章节正则表达式错误 %s: %w", sectionType, err)
		}
		segmenter.sectionRegexMap[sectionType] = regex
	}

	return segmenter, nil
}

// Segment 切分纯文本为章节序列
// 第一个标题之前的内容默认归入CONTACT；全文无标题时整体作为单个OTHER章节
func (s *SectionSegmenter) Segment(ctx context.Context, text *types.PlainText) ([]*types.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := text.Lines

	var sections []*types.Section
	currentType := types.SectionContact
	currentTitle := ""
	currentStart := 0
	headingFound := false

	flush := func(end int) {
		if end <= currentStart {
			return
		}
		content := strings.Join(lines[currentStart:end], "\n")
		if strings.TrimSpace(content) == "" && currentTitle == "" {
			return // 开头的空白CONTACT段不保留
		}
		sections = append(sections, &types.Section{
			Type:      currentType,
			Title:     currentTitle,
			StartLine: currentStart,
			EndLine:   end,
			Content:   content,
		})
	}

	for i, line := range lines {
		sectionType, ok := s.classifyHeading(line)
		if !ok {
			continue
		}
		headingFound = true

		// 标题关闭上一章节，新章节从下一行开始
		flush(i)
		currentType = sectionType
		currentTitle = strings.TrimSpace(line)
		currentStart = i + 1
	}
	flush(len(lines))

	// 全文未检测到任何标题：整个文档作为单个OTHER章节，
	// 字段提取器需要回退到全文扫描
	if !headingFound {
		return []*types.Section{{
			Type:      types.SectionOther,
			StartLine: 0,
			EndLine:   len(lines),
			Content:   text.Text,
		}}, nil
	}

	return sections, nil
}

// classifyHeading 判断一行是否为章节标题，并返回命中的章节类型
// 同一行命中多个关键词表时按显式优先级取最高者
func (s *SectionSegmenter) classifyHeading(line string) (types.SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed == constants.PageBreakMarker {
		return "", false
	}
	if len(trimmed) > s.config.MaxHeadingLen {
		return "", false
	}
	if !isHeadingShaped(trimmed) {
		return "", false
	}

	for _, sectionType := range sectionPriority {
		regex, ok := s.sectionRegexMap[sectionType]
		if ok && regex.MatchString(trimmed) {
			return sectionType, true
		}
	}
	return "", false
}

// isHeadingShaped 标题形状：全大写，或每个词首字母大写，且不含数字
func isHeadingShaped(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return false
	}

	if strings.ToUpper(line) == line {
		return true
	}

	// 标题式大写：每个词以大写字母开头
	for _, word := range strings.Fields(strings.TrimSuffix(line, ":")) {
		r := []rune(word)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// SectionsOfType 按文档顺序返回指定类型的章节
func SectionsOfType(sections []*types.Section, sectionType types.SectionType) []*types.Section {
	var matched []*types.Section
	for _, section := range sections {
		if section.Type == sectionType {
			matched = append(matched, section)
		}
	}
	return matched
}

// WholeTextFallback 判断切分结果是否为"无标题回退"形态（单个OTHER章节）
func WholeTextFallback(sections []*types.Section) bool {
	return len(sections) == 1 && sections[0].Type == types.SectionOther
}
