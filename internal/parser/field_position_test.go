package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

func experienceSection(content string) []*types.Section {
	return []*types.Section{{
		Type:      types.SectionExperience,
		Title:     "EXPERIENCE",
		StartLine: 1,
		EndLine:   1 + len(strings.Split(content, "\n")),
		Content:   content,
	}}
}

func TestPositionInlineTitleOrgDate(t *testing.T) {
	extractor := NewPositionExtractor()
	sections := experienceSection("Software Engineer at Acme Corp, Jan 2020 - Present\nBuilt the billing platform.")

	candidates := extractor.Extract(context.Background(), nil, sections)
	require.Len(t, candidates, 1)

	position := candidates[0].Value
	assert.Equal(t, "Software Engineer", position.Title)
	assert.Equal(t, "Acme Corp", position.Organization)
	assert.Equal(t, "Jan 2020", position.StartDate)
	assert.Equal(t, "Present", position.EndDate)
	assert.Contains(t, position.RawText, "billing platform")
	assert.InDelta(t, 1.0, candidates[0].Confidence, 1e-9, "日期锚定+经历章节")
}

func TestPositionDateOnOwnLine(t *testing.T) {
	extractor := NewPositionExtractor()
	sections := experienceSection("Senior Developer - Initech\n2018 – 2021\nMaintained the TPS pipeline.")

	candidates := extractor.Extract(context.Background(), nil, sections)
	require.Len(t, candidates, 1)

	position := candidates[0].Value
	assert.Equal(t, "Senior Developer", position.Title, "日期独占一行时从邻行取职位公司")
	assert.Equal(t, "Initech", position.Organization)
	assert.Equal(t, "2018", position.StartDate)
	assert.Equal(t, "2021", position.EndDate)
}

func TestPositionMultipleAnchors(t *testing.T) {
	extractor := NewPositionExtractor()
	sections := experienceSection(strings.Join([]string{
		"Backend Engineer at Acme Corp, Mar 2021 - Present",
		"Did backend things.",
		"",
		"Data Analyst at Initech, 06/2018 - 02/2021",
		"Did analyst things.",
	}, "\n"))

	candidates := extractor.Extract(context.Background(), nil, sections)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Acme Corp", candidates[0].Value.Organization, "保持文档顺序")
	assert.Equal(t, "Initech", candidates[1].Value.Organization)
	assert.Equal(t, "06/2018", candidates[1].Value.StartDate)
	assert.Equal(t, "02/2021", candidates[1].Value.EndDate)
	assert.NotContains(t, candidates[0].Value.RawText, "Initech", "块边界止于下一个锚点")
}

func TestPositionEndDateNormalization(t *testing.T) {
	extractor := NewPositionExtractor()

	cases := []struct {
		raw  string
		want string
	}{
		{"Jan 2020 - Present", "Present"},
		{"Jan 2020 - current", "Present"},
		{"Jan 2020 to Now", "Present"},
		{"Jan 2020 - Ongoing", "Present"},
		{"Jan 2020 - Dec 2022", "Dec 2022"},
	}
	for _, tc := range cases {
		sections := experienceSection("Engineer at Acme, " + tc.raw)
		candidates := extractor.Extract(context.Background(), nil, sections)
		require.Len(t, candidates, 1, "锚点应命中: %s", tc.raw)
		assert.Equal(t, tc.want, candidates[0].Value.EndDate)
	}
}

func TestPositionParagraphFallback(t *testing.T) {
	extractor := NewPositionExtractor()
	sections := experienceSection("Consultant at Globex\nhelped with migrations\n\nFreelance work\nodd jobs")

	candidates := extractor.Extract(context.Background(), nil, sections)
	require.Len(t, candidates, 2, "无日期锚点时按空行切段")

	assert.Equal(t, "Consultant", candidates[0].Value.Title)
	assert.Equal(t, "Globex", candidates[0].Value.Organization)
	assert.Empty(t, candidates[0].Value.StartDate, "无锚点的条目日期为空")
	assert.InDelta(t, 0.4, candidates[0].Confidence, 1e-9, "段落兜底在经历章节内为0.4")
}

func TestPositionScopeRules(t *testing.T) {
	extractor := NewPositionExtractor()

	// 有章节结构但没有EXPERIENCE章节：不扫描其他章节
	skillsOnly := []*types.Section{{
		Type: types.SectionSkills, StartLine: 0, EndLine: 1,
		Content: "Engineer at Acme, Jan 2020 - Present",
	}}
	assert.Empty(t, extractor.Extract(context.Background(), nil, skillsOnly))

	// 无标题回退：全文扫描
	fallback := []*types.Section{{
		Type: types.SectionOther, StartLine: 0, EndLine: 1,
		Content: "Engineer at Acme, Jan 2020 - Present",
	}}
	candidates := extractor.Extract(context.Background(), nil, fallback)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 0.9, candidates[0].Confidence, 1e-9, "回退时没有预期章节加成")
}

func TestPositionRejectsImplausibleDates(t *testing.T) {
	extractor := NewPositionExtractor()

	// 形状像日期区间但年份不可信：不作为锚点，落入段落兜底
	sections := experienceSection("Part number 1234 - 5678 rework")
	candidates := extractor.Extract(context.Background(), nil, sections)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0].Value.StartDate, "不可信年份不产生日期锚")
	assert.InDelta(t, 0.4, candidates[0].Confidence, 1e-9)
}

func TestNormalizeDateToken(t *testing.T) {
	cases := []struct {
		raw   string
		year  int
		month int
		ok    bool
	}{
		{"Jan 2020", 2020, 1, true},
		{"September 2019", 2019, 9, true},
		{"Sep'19", 2019, 9, true},
		{"06/2018", 2018, 6, true},
		{"2018", 2018, 1, true},
		{"5678", 0, 0, false},
		{"1234", 0, 0, false},
		{"13/2018", 0, 0, false},
	}
	for _, tc := range cases {
		parsed, ok := normalizeDateToken(tc.raw)
		assert.Equal(t, tc.ok, ok, "输入: %q", tc.raw)
		if tc.ok {
			assert.Equal(t, tc.year, parsed.Year(), "输入: %q", tc.raw)
			assert.Equal(t, tc.month, int(parsed.Month()), "输入: %q", tc.raw)
		}
	}
}

func TestSplitTitleOrg(t *testing.T) {
	cases := []struct {
		text  string
		title string
		org   string
	}{
		{"Software Engineer at Acme Corp", "Software Engineer", "Acme Corp"},
		{"Senior Developer - Initech", "Senior Developer", "Initech"},
		{"Architect | Globex", "Architect", "Globex"},
		{"Staff Engineer", "Staff Engineer", ""},
		{"Acme Corporation", "", "Acme Corporation"},
		{"", "", ""},
	}
	for _, tc := range cases {
		title, org := splitTitleOrg(tc.text)
		assert.Equal(t, tc.title, title, "输入: %q", tc.text)
		assert.Equal(t, tc.org, org, "输入: %q", tc.text)
	}
}
