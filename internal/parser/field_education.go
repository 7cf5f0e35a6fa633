package parser

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"resume-parser-go/internal/types"
)

// institutionKeywords 机构名的标志词
var institutionKeywords = []string{
	"University", "College", "Institute", "School", "Academy",
}

// yearRegex 19xx/20xx四位年份
var yearRegex = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// EducationExtractor 从教育章节提取学历条目
type EducationExtractor struct {
	degreeRegex *regexp.Regexp
}

// NewEducationExtractor 从学位关键词表编译提取器
func NewEducationExtractor(degreeKeywords []string) *EducationExtractor {
	escaped := make([]string, 0, len(degreeKeywords))
	for _, kw := range degreeKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		// B.S.之类带点的缩写需要转义
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}
	pattern := `(?i)\b(` + strings.Join(escaped, "|") + `)[^,\n]*`
	return &EducationExtractor{degreeRegex: regexp.MustCompile(pattern)}
}

// Extract 提取学历候选
// 作用范围：EDUCATION章节；无标题回退时降低置信度扫描全文；其余情况返回空
func (e *EducationExtractor) Extract(ctx context.Context, sections []*types.Section) []types.Candidate[types.EducationEntry] {
	var scope []*types.Section
	inExpected := false
	switch {
	case WholeTextFallback(sections):
		scope = sections
	default:
		scope = SectionsOfType(sections, types.SectionEducation)
		inExpected = true
	}
	if len(scope) == 0 {
		return nil
	}

	var candidates []types.Candidate[types.EducationEntry]
	seen := make(map[string]bool)

	for _, section := range scope {
		lines := strings.Split(section.Content, "\n")
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || !e.degreeRegex.MatchString(trimmed) {
				continue
			}

			entry := e.parseLine(trimmed)
			key := strings.ToLower(entry.Degree)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			signals := []Signal{}
			if inExpected {
				signals = append(signals, SignalInExpectedSection)
			}
			candidates = append(candidates, types.Candidate[types.EducationEntry]{
				Value:      entry,
				Confidence: Score(0.75, signals...),
				Line:       section.StartLine + i,
			})
		}
	}
	return candidates
}

// parseLine 按逗号切分一行：学位段、机构段、年份段各自独立识别
// 例："B.S. in Computer Science, MIT, 2018"
func (e *EducationExtractor) parseLine(line string) types.EducationEntry {
	entry := types.EducationEntry{}
	segments := strings.Split(line, ",")

	var unclaimed []string
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		switch {
		case entry.Degree == "" && e.degreeRegex.MatchString(segment):
			entry.Degree = strings.TrimSpace(e.degreeRegex.FindString(segment))
		case entry.Institution == "" && hasInstitutionKeyword(segment):
			entry.Institution = segment
		case entry.Date == "" && yearRegex.MatchString(segment) && len(segment) <= 12:
			entry.Date = yearRegex.FindString(segment)
		default:
			unclaimed = append(unclaimed, segment)
		}
	}

	// 没有明确机构段时：优先取未归类的大写开头段（如"MIT"），
	// 再退到学位匹配之外最长的大写开头词串
	if entry.Institution == "" {
		for _, segment := range unclaimed {
			runes := []rune(segment)
			if unicode.IsUpper(runes[0]) {
				entry.Institution = segment
				break
			}
		}
	}
	if entry.Institution == "" {
		entry.Institution = longestCapitalizedRun(line, e.degreeRegex)
	}
	if entry.Date == "" {
		entry.Date = yearRegex.FindString(line)
	}
	return entry
}

func hasInstitutionKeyword(segment string) bool {
	for _, kw := range institutionKeywords {
		if strings.Contains(segment, kw) {
			return true
		}
	}
	return false
}

// longestCapitalizedRun 学位匹配范围之外连续大写开头词的最长一段
func longestCapitalizedRun(line string, exclude *regexp.Regexp) string {
	masked := exclude.ReplaceAllString(line, "")
	masked = yearRegex.ReplaceAllString(masked, "")

	var best, current []string
	for _, word := range strings.Fields(masked) {
		trimmed := strings.Trim(word, ".,;:")
		runes := []rune(trimmed)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			current = append(current, trimmed)
			if len(current) > len(best) {
				best = append([]string(nil), current...)
			}
			continue
		}
		current = nil
	}
	if len(best) < 2 {
		return ""
	}
	return strings.Join(best, " ")
}
