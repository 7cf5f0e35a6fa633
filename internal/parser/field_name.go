package parser

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/types"
)

// urlRegex 网址与社交主页链接，含这类内容的行不可能是姓名行
var urlRegex = regexp.MustCompile(`(?i)\b(?:https?://|www\.|linkedin\.com|github\.com)\S*`)

// resumeOfRegex 文件名中的"resume of xxx"形式
var resumeOfRegex = regexp.MustCompile(`(?i)^resume[\s_-]*(?:of)?[\s_-]+(.+)$`)

// NameExtractor 从文档头部或CONTACT章节提取候选姓名
type NameExtractor struct {
	vetoWords map[string]bool // 出现即否决该行的词（职位词、地址词等）
}

// NewNameExtractor 创建姓名提取器
func NewNameExtractor(vetoWords []string) *NameExtractor {
	veto := make(map[string]bool, len(vetoWords))
	for _, word := range vetoWords {
		veto[strings.ToLower(strings.TrimSpace(word))] = true
	}
	return &NameExtractor{vetoWords: veto}
}

// Extract 扫描CONTACT章节（无则取文档前几个非空行），返回姓名候选
// 越靠前的候选置信度越高；邻近邮箱或电话的行有小幅加成
func (n *NameExtractor) Extract(ctx context.Context, text *types.PlainText, sections []*types.Section) []types.Candidate[string] {
	scanLines := n.scanScope(text, sections)

	contactLines := make(map[int]bool)
	for lineNum, line := range text.Lines {
		if emailRegex.MatchString(line) || lineHasPhone(line) {
			contactLines[lineNum] = true
		}
	}

	var candidates []types.Candidate[string]
	index := 0
	for _, sl := range scanLines {
		line := strings.TrimSpace(sl.text)
		if line == "" {
			continue
		}
		if !n.looksLikeName(line) {
			continue
		}

		base := 0.9 - 0.05*float64(index)
		if base < 0.5 {
			base = 0.5
		}
		index++

		signals := []Signal{}
		if nearContactLine(sl.num, contactLines) {
			signals = append(signals, SignalNearContact)
		}
		candidates = append(candidates, types.Candidate[string]{
			Value:      line,
			Confidence: Score(base, signals...),
			Line:       sl.num,
		})
	}
	return candidates
}

// ExtractFromFilename 从源文件名推断姓名的兜底路径
// 仅在正文未产出任何候选时由上层调用，置信度带兜底来源的折减
func (n *NameExtractor) ExtractFromFilename(filename string) (types.Candidate[string], bool) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.TrimSpace(base)

	if groups := resumeOfRegex.FindStringSubmatch(base); groups != nil {
		base = strings.TrimSpace(groups[1])
	}
	if base == "" {
		return types.Candidate[string]{}, false
	}

	name := titleCase(base)
	if !n.looksLikeName(name) {
		return types.Candidate[string]{}, false
	}
	return types.Candidate[string]{
		Value:      name,
		Confidence: Score(0.8, SignalFallbackSource),
		Line:       -1,
	}, true
}

type scanLine struct {
	num  int
	text string
}

// scanScope 有CONTACT章节时扫描其全部行，否则取文档开头的若干非空行
func (n *NameExtractor) scanScope(text *types.PlainText, sections []*types.Section) []scanLine {
	var scope []scanLine
	contactSections := SectionsOfType(sections, types.SectionContact)
	if len(contactSections) > 0 {
		for _, section := range contactSections {
			for i := section.StartLine; i < section.EndLine && i < len(text.Lines); i++ {
				scope = append(scope, scanLine{num: i, text: text.Lines[i]})
			}
		}
		return scope
	}

	count := 0
	for i, line := range text.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		scope = append(scope, scanLine{num: i, text: line})
		count++
		if count >= constants.MaxNameScanLines {
			break
		}
	}
	return scope
}

// looksLikeName 姓名形状判定：2-4个词、每词首字母大写、不含数字、
// 不含邮箱/电话/网址、不含否决词。允许中间名缩写和全大写写法。
func (n *NameExtractor) looksLikeName(line string) bool {
	if emailRegex.MatchString(line) || lineHasPhone(line) || urlRegex.MatchString(line) {
		return false
	}
	// 列表标点说明这是枚举行而不是姓名行
	if strings.ContainsAny(line, ",;:|/\\()[]") {
		return false
	}
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
	}

	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	allUpper := strings.ToUpper(line) == line
	for _, word := range words {
		trimmed := strings.Trim(word, ".,")
		if trimmed == "" {
			return false
		}
		if n.vetoWords[strings.ToLower(trimmed)] {
			return false
		}
		r := []rune(trimmed)[0]
		if !unicode.IsLetter(r) {
			return false
		}
		if !allUpper && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// lineHasPhone 该行是否含电话号码
func lineHasPhone(line string) bool {
	for _, pattern := range phonePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// nearContactLine 是否与某个联系方式行相距不超过2行
func nearContactLine(lineNum int, contactLines map[int]bool) bool {
	for offset := -2; offset <= 2; offset++ {
		if contactLines[lineNum+offset] {
			return true
		}
	}
	return false
}

// titleCase 每个词首字母大写，用于从文件名还原姓名
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
