package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

func educationSection(content string) []*types.Section {
	return []*types.Section{{
		Type:      types.SectionEducation,
		Title:     "EDUCATION",
		StartLine: 1,
		EndLine:   10,
		Content:   content,
	}}
}

func newTestEducationExtractor() *EducationExtractor {
	return NewEducationExtractor([]string{
		"Bachelor", "Master", "PhD", "MBA", "B.S.", "M.S.", "BSc", "MSc",
	})
}

func TestEducationCommaSeparatedLine(t *testing.T) {
	extractor := newTestEducationExtractor()

	candidates := extractor.Extract(context.Background(),
		educationSection("B.S. in Computer Science, Massachusetts Institute of Technology, 2018"))
	require.Len(t, candidates, 1)

	entry := candidates[0].Value
	assert.Equal(t, "B.S. in Computer Science", entry.Degree)
	assert.Equal(t, "Massachusetts Institute of Technology", entry.Institution, "机构标志词命中")
	assert.Equal(t, "2018", entry.Date)
	assert.InDelta(t, 0.85, candidates[0].Confidence, 1e-9, "教育章节内")
}

func TestEducationInstitutionWithoutKeyword(t *testing.T) {
	extractor := newTestEducationExtractor()

	candidates := extractor.Extract(context.Background(),
		educationSection("Master of Science, MIT, 2020"))
	require.Len(t, candidates, 1)
	assert.Equal(t, "MIT", candidates[0].Value.Institution, "无标志词时取未归类的大写段")
}

func TestEducationMultipleEntriesAndDedup(t *testing.T) {
	extractor := newTestEducationExtractor()

	candidates := extractor.Extract(context.Background(), educationSection(
		"Master of Science, Stanford University, 2020\n"+
			"Bachelor of Science, State College, 2016\n"+
			"Bachelor of Science, State College, 2016"))
	require.Len(t, candidates, 2, "相同学位去重")
	assert.Equal(t, "Master of Science", candidates[0].Value.Degree, "保持文档顺序")
	assert.Equal(t, "Bachelor of Science", candidates[1].Value.Degree)
}

func TestEducationScopeRules(t *testing.T) {
	extractor := newTestEducationExtractor()

	// 有章节结构但没有EDUCATION章节：不扫描其他章节
	skillsOnly := []*types.Section{{
		Type: types.SectionSkills, Content: "Bachelor of Science, State College, 2016",
	}}
	assert.Empty(t, extractor.Extract(context.Background(), skillsOnly))

	// 无标题回退：全文扫描，无预期章节加成
	fallback := []*types.Section{{
		Type: types.SectionOther, StartLine: 0, EndLine: 1,
		Content: "Bachelor of Science, State College, 2016",
	}}
	candidates := extractor.Extract(context.Background(), fallback)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 0.75, candidates[0].Confidence, 1e-9)
}

func TestEducationNoDegreeLines(t *testing.T) {
	extractor := newTestEducationExtractor()

	candidates := extractor.Extract(context.Background(),
		educationSection("attended some courses in 2019\nno formal degree"))
	assert.Empty(t, candidates)
}
