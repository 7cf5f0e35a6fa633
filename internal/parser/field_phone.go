package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"resume-parser-go/internal/types"
)

// phonePatterns 电话号码的正则族，覆盖常见分隔形式
// （括号、短横线、点、空格、长破折号，可选国家码，可选标签前缀）
var phonePatterns = []*regexp.Regexp{
	// (123) 456-7890, (123)–456–7890, (123) 779 – 5417
	regexp.MustCompile(`\(\d{3}\)[-.–\s]*\d{3}[-.–\s]*\d{4}`),
	// +1 123 456 7890, +1 (123) 456-7890
	regexp.MustCompile(`\+\d{1,3}[-.–\s]*\(?\d{3}\)?[-.–\s]*\d{3}[-.–\s]*\d{4}`),
	// 123-456-7890, 123.456.7890, 123 456 7890
	regexp.MustCompile(`\b\d{3}[-.–\s]+\d{3}[-.–\s]+\d{4}\b`),
	// Phone: (123) 456-7890 / Tel: ... / Mobile: ... / Cell: ...（只取号码部分）
	regexp.MustCompile(`(?i)(?:phone|tel|mobile|cell)[:\s]+(\(?\d{3}\)?[-.–\s]*\d{3}[-.–\s]*\d{4})`),
}

// PhoneExtractor 在全文范围内提取电话号码
// 号码保留原文格式不做改写，按归一化的数字序列去重
type PhoneExtractor struct {
	region string // phonenumbers校验使用的默认地区
}

// NewPhoneExtractor 创建电话提取器
func NewPhoneExtractor(region string) *PhoneExtractor {
	if region == "" {
		region = "US"
	}
	return &PhoneExtractor{region: region}
}

// Extract 逐行扫描全文，返回按首次出现顺序去重后的电话候选
// 能通过号码库校验的候选置信度提升到1.0
func (p *PhoneExtractor) Extract(ctx context.Context, text *types.PlainText) []types.Candidate[string] {
	var candidates []types.Candidate[string]
	seen := make(map[string]bool)

	for lineNum, line := range text.Lines {
		for _, pattern := range phonePatterns {
			for _, groups := range pattern.FindAllStringSubmatch(line, -1) {
				raw := groups[0]
				if len(groups) > 1 && groups[1] != "" {
					raw = groups[1] // 带标签前缀的模式只保留号码部分
				}
				raw = strings.TrimSpace(raw)

				key := normalizeDigits(raw)
				if len(key) < 10 || seen[key] {
					continue
				}
				seen[key] = true

				signals := []Signal{}
				if p.corroborate(raw) {
					signals = append(signals, SignalCorroborated)
				}
				candidates = append(candidates, types.Candidate[string]{
					Value:      raw,
					Confidence: Score(0.7, signals...),
					Line:       lineNum,
				})
			}
		}
	}
	return candidates
}

// corroborate 用号码库独立校验候选号码
func (p *PhoneExtractor) corroborate(raw string) bool {
	num, err := phonenumbers.Parse(raw, p.region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// normalizeDigits 提取纯数字序列作为去重键，11位带国家码1的去掉前缀
func normalizeDigits(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	return digits
}
