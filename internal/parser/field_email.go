package parser

import (
	"context"
	"regexp"
	"strings"

	"resume-parser-go/internal/types"
)

// emailRegex 标准邮箱语法
var emailRegex = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

// EmailExtractor 在全文范围内提取邮箱地址
type EmailExtractor struct{}

// NewEmailExtractor 创建邮箱提取器
func NewEmailExtractor() *EmailExtractor {
	return &EmailExtractor{}
}

// Extract 逐行扫描全文，按首次出现顺序返回去重后的邮箱候选
// 命中严格语法的邮箱置信度为1.0
func (e *EmailExtractor) Extract(ctx context.Context, text *types.PlainText) []types.Candidate[string] {
	var candidates []types.Candidate[string]
	seen := make(map[string]bool)

	for lineNum, line := range text.Lines {
		for _, match := range emailRegex.FindAllString(line, -1) {
			key := strings.ToLower(match)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, types.Candidate[string]{
				Value:      match,
				Confidence: Score(0.75, SignalStrictSyntax),
				Line:       lineNum,
			})
		}
	}
	return candidates
}
