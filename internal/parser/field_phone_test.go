package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneExtractFormats(t *testing.T) {
	extractor := NewPhoneExtractor("US")

	cases := []struct {
		name string
		line string
		want string
	}{
		{"括号格式", "(415) 555-2671", "(415) 555-2671"},
		{"短横线格式", "415-555-2671", "415-555-2671"},
		{"点分格式", "415.555.2671", "415.555.2671"},
		{"带国家码", "+1 415 555 2671", "+1 415 555 2671"},
		{"带标签", "Phone: 415-555-2671", "415-555-2671"},
		{"长破折号", "(415) 555 – 2671", "(415) 555 – 2671"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := NewPlainText("John Smith\n" + tc.line)
			candidates := extractor.Extract(context.Background(), text)
			require.Len(t, candidates, 1, "应提取到一个号码: %s", tc.line)
			assert.Equal(t, tc.want, candidates[0].Value, "号码保留原文格式")
			assert.Equal(t, 1, candidates[0].Line)
		})
	}
}

func TestPhoneConfidenceCorroboration(t *testing.T) {
	extractor := NewPhoneExtractor("US")

	// 415-555-2671 是可通过号码库校验的形状
	valid := extractor.Extract(context.Background(), NewPlainText("415-555-2671"))
	require.Len(t, valid, 1)
	assert.InDelta(t, 1.0, valid[0].Confidence, 1e-9, "通过号码库校验应提升到1.0")

	// 123开头的区号在北美编号计划中不存在
	invalid := extractor.Extract(context.Background(), NewPlainText("123-456-7890"))
	require.Len(t, invalid, 1)
	assert.InDelta(t, 0.7, invalid[0].Confidence, 1e-9, "形状命中但校验失败保持基础分")
}

func TestPhoneDedupByDigits(t *testing.T) {
	extractor := NewPhoneExtractor("US")
	text := NewPlainText("(415) 555-2671\n415.555.2671\n+1 415 555 2671")

	candidates := extractor.Extract(context.Background(), text)
	require.Len(t, candidates, 1, "同一数字序列的不同写法只保留首次出现")
	assert.Equal(t, "(415) 555-2671", candidates[0].Value)
}

func TestPhoneIgnoresShortDigitRuns(t *testing.T) {
	extractor := NewPhoneExtractor("US")
	text := NewPlainText("worked 2019 - 2023\nGPA 3.9 out of 4.0")

	candidates := extractor.Extract(context.Background(), text)
	assert.Empty(t, candidates, "年份区间和小数不是电话号码")
}
