package parser

import (
	"context"
	"strings"

	"resume-parser-go/internal/types"
)

// bulletPrefixes 技能行常见的项目符号
var bulletPrefixes = []string{"•", "●", "◦", "·", "-", "*"}

// SkillExtractor 从技能章节提取技能词条
// 仅在SKILLS章节内工作，文档没有技能章节时返回空列表而非报错
type SkillExtractor struct {
	stopWords map[string]bool // 过滤掉的结构词（and、years、proficient等）
}

// NewSkillExtractor 创建技能提取器
func NewSkillExtractor(stopWords []string) *SkillExtractor {
	stop := make(map[string]bool, len(stopWords))
	for _, word := range stopWords {
		stop[strings.ToLower(strings.TrimSpace(word))] = true
	}
	return &SkillExtractor{stopWords: stop}
}

// Extract 逐行解析SKILLS章节内容
// 按分隔符类型给置信度：竖线/逗号分隔0.9，项目符号行和裸短行0.85
func (s *SkillExtractor) Extract(ctx context.Context, sections []*types.Section) []types.Candidate[string] {
	skillSections := SectionsOfType(sections, types.SectionSkills)
	if len(skillSections) == 0 {
		return nil
	}

	var candidates []types.Candidate[string]
	seen := make(map[string]bool)

	add := func(raw string, confidence float64, lineNum int) {
		skill := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), "."))
		if len(skill) < 2 {
			return
		}
		if s.stopWords[strings.ToLower(skill)] {
			return
		}
		key := strings.ToLower(skill)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, types.Candidate[string]{
			Value:      skill, // 保留首次出现的原始大小写
			Confidence: confidence,
			Line:       lineNum,
		})
	}

	for _, section := range skillSections {
		lines := strings.Split(section.Content, "\n")
		for i, line := range lines {
			lineNum := section.StartLine + i
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}

			switch {
			case strings.Contains(trimmed, "|"):
				for _, part := range strings.Split(trimmed, "|") {
					add(part, Score(0.8, SignalInExpectedSection), lineNum)
				}
			case strings.ContainsAny(trimmed, ",;"):
				for _, part := range strings.FieldsFunc(trimmed, func(r rune) bool {
					return r == ',' || r == ';'
				}) {
					add(part, Score(0.8, SignalInExpectedSection), lineNum)
				}
			case hasBulletPrefix(trimmed):
				add(stripBulletPrefix(trimmed), Score(0.75, SignalInExpectedSection), lineNum)
			default:
				// 裸短行视为单个技能词条
				add(trimmed, Score(0.75, SignalInExpectedSection), lineNum)
			}
		}
	}
	return candidates
}

func hasBulletPrefix(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func stripBulletPrefix(line string) string {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}
