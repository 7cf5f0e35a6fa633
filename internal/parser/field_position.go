package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"resume-parser-go/internal/types"
)

// dateToken 单个日期写法：月份缩写+年、MM/YYYY、纯四位年
const dateToken = `(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?'?\s*\d{2,4}|\d{1,2}/\d{4}|\d{4})`

// dateRangeRegex 日期区间锚：起始日期 + 分隔符 + 结束日期或"至今"类词
var dateRangeRegex = regexp.MustCompile(
	`(?i)(` + dateToken + `)\s*(?:[-–—]|to)\s*(` + dateToken + `|Present|Current|Now|Ongoing)`)

// presentWords 结束日期的"至今"写法，统一规范为Present
var presentWords = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
}

// jobTitleKeywords 含这些词的片段倾向判定为职位名而非公司名
var jobTitleKeywords = []string{
	"Engineer", "Developer", "Manager", "Consultant", "Analyst",
	"Director", "Lead", "Architect", "Specialist", "Administrator", "Intern",
}

// PositionExtractor 从经历章节提取工作经历条目
// 以日期区间为锚点切块；无任何锚点时退化为段落切块
type PositionExtractor struct{}

// NewPositionExtractor 创建工作经历提取器
func NewPositionExtractor() *PositionExtractor {
	return &PositionExtractor{}
}

// Extract 提取工作经历候选
// 作用范围：EXPERIENCE章节；无标题回退时扫描全文；有标题但无EXPERIENCE章节时返回空
func (p *PositionExtractor) Extract(ctx context.Context, text *types.PlainText, sections []*types.Section) []types.Candidate[types.Position] {
	var scope []*types.Section
	inExpected := false
	switch {
	case WholeTextFallback(sections):
		scope = sections
	default:
		scope = SectionsOfType(sections, types.SectionExperience)
		inExpected = true
	}
	if len(scope) == 0 {
		return nil
	}

	var candidates []types.Candidate[types.Position]
	for _, section := range scope {
		lines := strings.Split(section.Content, "\n")
		anchored := p.extractAnchored(lines, section.StartLine, inExpected)
		if len(anchored) > 0 {
			candidates = append(candidates, anchored...)
			continue
		}
		candidates = append(candidates, p.extractParagraphs(lines, section.StartLine, inExpected)...)
	}
	return candidates
}

// extractAnchored 以日期区间行为锚点切分经历块
func (p *PositionExtractor) extractAnchored(lines []string, baseLine int, inExpected bool) []types.Candidate[types.Position] {
	// 先定位全部锚点行，块的边界由下一个锚点或空行决定
	// 正则命中之外还要求起始日期能规范化为可信年月，"1234 - 5678"不算锚点
	var anchors []int
	for i, line := range lines {
		groups := dateRangeRegex.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		if _, ok := normalizeDateToken(groups[1]); !ok {
			continue
		}
		if _, endOK := normalizeDateToken(groups[2]); !endOK && !presentWords[strings.ToLower(strings.TrimSpace(groups[2]))] {
			continue
		}
		anchors = append(anchors, i)
	}
	if len(anchors) == 0 {
		return nil
	}

	var candidates []types.Candidate[types.Position]
	for ai, anchor := range anchors {
		line := lines[anchor]
		groups := dateRangeRegex.FindStringSubmatch(line)

		position := types.Position{
			StartDate: strings.TrimSpace(groups[1]),
			EndDate:   normalizeEndDate(groups[2]),
		}

		// 锚点行去掉日期区间后的剩余文本承载职位和公司
		remainder := strings.TrimSpace(strings.Replace(line, groups[0], "", 1))
		remainder = strings.Trim(remainder, " ,;|-–")

		usedNeighbor := -1
		if remainder == "" {
			// 日期独占一行：职位和公司在紧邻的上一行或下一行
			if prev := previousNonEmpty(lines, anchor); prev >= 0 && !containsAnchor(anchors, prev) {
				remainder = strings.TrimSpace(lines[prev])
				usedNeighbor = prev
			} else if anchor+1 < len(lines) && strings.TrimSpace(lines[anchor+1]) != "" {
				remainder = strings.TrimSpace(lines[anchor+1])
				usedNeighbor = anchor + 1
			}
		}
		position.Title, position.Organization = splitTitleOrg(remainder)

		blockEnd := len(lines)
		if ai+1 < len(anchors) {
			blockEnd = anchors[ai+1]
		}
		position.RawText = rawBlock(lines, anchor, blockEnd, usedNeighbor)

		signals := []Signal{SignalDateAnchored}
		if inExpected {
			signals = append(signals, SignalInExpectedSection)
		}
		candidates = append(candidates, types.Candidate[types.Position]{
			Value:      position,
			Confidence: Score(0.7, signals...),
			Line:       baseLine + anchor,
		})
	}
	return candidates
}

// extractParagraphs 无日期锚点的兜底：按空行切段，每段作为一条无日期经历
func (p *PositionExtractor) extractParagraphs(lines []string, baseLine int, inExpected bool) []types.Candidate[types.Position] {
	var candidates []types.Candidate[types.Position]
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		block := lines[start:end]
		first := strings.TrimSpace(block[0])
		position := types.Position{RawText: strings.TrimSpace(strings.Join(block, "\n"))}
		position.Title, position.Organization = splitTitleOrg(first)

		base := 0.3
		signals := []Signal{}
		if inExpected {
			signals = append(signals, SignalInExpectedSection)
		}
		candidates = append(candidates, types.Candidate[types.Position]{
			Value:      position,
			Confidence: Score(base, signals...),
			Line:       baseLine + start,
		})
		start = -1
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(lines))
	return candidates
}

// splitTitleOrg 把"职位+公司"文本拆为两部分
// 优先识别" at "连接词，其次破折号或竖线分隔，最后按职位关键词归类
func splitTitleOrg(text string) (title, org string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	if idx := strings.Index(text, " at "); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+4:])
	}
	for _, sep := range []string{" – ", " - ", " | "} {
		if idx := strings.Index(text, sep); idx >= 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(sep):])
		}
	}
	if containsJobKeyword(text) {
		return text, ""
	}
	return "", text
}

// containsJobKeyword 文本是否含职位关键词
func containsJobKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range jobTitleKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// monthAbbrevs 月份缩写到月序号
var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// normalizeDateToken 把日期写法规范化为年月，用于锚点可信度判定
// 输出只参与判定，记录中的日期字段保留原文
// 支持三种形状：月份名+年、MM/YYYY、纯四位年；年份须在1950..明年之间
func normalizeDateToken(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return time.Time{}, false
	}

	month := time.January
	yearStr := raw

	if idx := strings.Index(raw, "/"); idx > 0 {
		// MM/YYYY
		m, err := strconv.Atoi(raw[:idx])
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, false
		}
		month = time.Month(m)
		yearStr = raw[idx+1:]
	} else if len(raw) >= 3 {
		if m, ok := monthAbbrevs[raw[:3]]; ok {
			// 月份名后的年份可能紧贴撇号（Sep'19），取末尾连续数字
			month = m
			yearStr = strings.TrimLeftFunc(raw, func(r rune) bool {
				return r < '0' || r > '9'
			})
		}
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		// 两位年：'20 按2000年代处理
		year += 2000
	}
	if year < 1950 || year > time.Now().Year()+1 {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// normalizeEndDate "至今"类写法统一为Present，具体日期保留原文
func normalizeEndDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if presentWords[strings.ToLower(raw)] {
		return "Present"
	}
	return raw
}

// previousNonEmpty 返回anchor之前最近的非空行下标，没有则返回-1
func previousNonEmpty(lines []string, anchor int) int {
	for i := anchor - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

func containsAnchor(anchors []int, line int) bool {
	for _, a := range anchors {
		if a == line {
			return true
		}
	}
	return false
}

// rawBlock 经历块的原文：锚点行（及借用的邻行）到下一锚点或空行为止
func rawBlock(lines []string, anchor, blockEnd, usedNeighbor int) string {
	start := anchor
	if usedNeighbor >= 0 && usedNeighbor < anchor {
		start = usedNeighbor
	}
	end := anchor + 1
	if usedNeighbor > anchor {
		end = usedNeighbor + 1
	}
	for end < blockEnd {
		if strings.TrimSpace(lines[end]) == "" {
			break
		}
		end++
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}
