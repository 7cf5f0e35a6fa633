package processor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/types"
)

// 结构规整的简历样本：标准章节标题、行内日期区间
var wellFormedResume = strings.Join([]string{
	"John Smith",
	"john.smith@example.com",
	"(415) 555-2671",
	"",
	"EXPERIENCE",
	"Software Engineer at Acme Corp, Jan 2020 - Present",
	"Built the billing platform.",
	"",
	"EDUCATION",
	"B.S. in Computer Science, Massachusetts Institute of Technology, 2018",
	"",
	"SKILLS",
	"Go, Python, SQL",
}, "\n")

func newTestProcessor(t *testing.T) *ResumeProcessor {
	t.Helper()
	proc, err := NewResumeProcessor(context.Background(), config.Default(), nil, nil)
	require.NoError(t, err, "流水线初始化不应失败")
	return proc
}

func TestParseWellFormedResume(t *testing.T) {
	proc := newTestProcessor(t)

	record, err := proc.Parse(context.Background(), []byte(wellFormedResume), types.FormatTXT)
	require.NoError(t, err)
	require.True(t, record.Success)

	assert.Equal(t, "John Smith", record.ContactInformation.CandidateName.FormattedName)
	assert.Equal(t, "John", record.ContactInformation.CandidateName.GivenName)
	assert.Equal(t, "Smith", record.ContactInformation.CandidateName.FamilyName)

	require.Len(t, record.ContactInformation.EmailAddresses, 1)
	assert.Equal(t, "john.smith@example.com", record.ContactInformation.EmailAddresses[0].Address)
	require.Len(t, record.ContactInformation.Telephones, 1)
	assert.Equal(t, "(415) 555-2671", record.ContactInformation.Telephones[0].Raw, "电话保留原文格式")

	require.Len(t, record.EmploymentHistory.Positions, 1)
	position := record.EmploymentHistory.Positions[0]
	assert.Equal(t, "Software Engineer", position.Title)
	assert.Equal(t, "Acme Corp", position.Organization)
	assert.Equal(t, "Jan 2020", position.StartDate)
	assert.Equal(t, "Present", position.EndDate)

	assert.Equal(t, []string{"Go", "Python", "SQL"}, record.Skills)

	require.Len(t, record.Education, 1)
	assert.Equal(t, "B.S. in Computer Science", record.Education[0].Degree)
	assert.Equal(t, "Massachusetts Institute of Technology", record.Education[0].Institution)
	assert.Equal(t, "2018", record.Education[0].Date)

	assert.InDelta(t, 1.0, record.QualityScore, 1e-9, "四个维度齐全")
	assert.GreaterOrEqual(t, record.ProcessingTime, 0.0)
}

func TestParseUnstructuredResume(t *testing.T) {
	proc := newTestProcessor(t)

	// 无任何章节标题：切分器回退为单个OTHER章节，提取器降级工作
	unstructured := "Jane Doe\njane@example.com\nworked on various backend projects, 2019 - 2022"
	record, err := proc.Parse(context.Background(), []byte(unstructured), types.FormatTXT)
	require.NoError(t, err)

	assert.True(t, record.Success, "降级路径仍应产出结果")
	assert.Equal(t, "Jane Doe", record.ContactInformation.CandidateName.FormattedName)
	require.Len(t, record.ContactInformation.EmailAddresses, 1)
	assert.NotEmpty(t, record.EmploymentHistory.Positions, "日期锚定在全文回退中仍然有效")
	assert.NotNil(t, record.Skills, "无技能章节时技能为空序列而不是null")
	assert.Empty(t, record.Skills)
}

func TestParseBinaryDeclaredAsTxt(t *testing.T) {
	proc := newTestProcessor(t)

	pdfBytes := append([]byte("%PDF-1.4\x00"), 0xff, 0xfe, 0x00)
	record, err := proc.Parse(context.Background(), pdfBytes, types.FormatTXT)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrCorruptDocument), "格式谎报判定为文档损坏")

	// 失败路径也返回结构完整的记录
	require.NotNil(t, record)
	assert.False(t, record.Success)
	assert.NotEmpty(t, record.Error)
	assert.NotNil(t, record.ContactInformation.EmailAddresses)
	assert.NotNil(t, record.EmploymentHistory.Positions)
	assert.NotNil(t, record.Skills)
	assert.NotNil(t, record.Education)
}

func TestParseUnsupportedFormat(t *testing.T) {
	proc := newTestProcessor(t)

	record, err := proc.Parse(context.Background(), []byte("content"), types.DocumentFormat("rtf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnsupportedFormat))
	assert.False(t, record.Success)
}

func TestParseEmptyDocument(t *testing.T) {
	proc := newTestProcessor(t)

	for _, data := range [][]byte{{}, []byte("   \n  \n")} {
		record, err := proc.Parse(context.Background(), data, types.FormatTXT)
		require.Error(t, err)
		assert.True(t, errors.Is(err, parser.ErrEmptyDocument))
		assert.False(t, record.Success)
		assert.Empty(t, record.ContactInformation.EmailAddresses)
		assert.Empty(t, record.EmploymentHistory.Positions)
		assert.Empty(t, record.Skills)
		assert.Empty(t, record.Education)
	}
}

func TestParseTypicalSingleColumnResume(t *testing.T) {
	proc := newTestProcessor(t)

	sample := "John Doe\njohn@example.com\n(123) 456-7890\n\n" +
		"EXPERIENCE\nSoftware Engineer at Acme Corp, Jan 2020 - Present\n\n" +
		"SKILLS\nPython, Go, SQL\n\n" +
		"EDUCATION\nB.S. Computer Science, State University, 2019"

	record, err := proc.Parse(context.Background(), []byte(sample), types.FormatTXT)
	require.NoError(t, err)
	require.True(t, record.Success)

	assert.Equal(t, "John Doe", record.ContactInformation.CandidateName.FormattedName)
	require.Len(t, record.ContactInformation.EmailAddresses, 1)
	assert.Equal(t, "john@example.com", record.ContactInformation.EmailAddresses[0].Address)
	require.Len(t, record.ContactInformation.Telephones, 1)
	assert.Equal(t, "(123) 456-7890", record.ContactInformation.Telephones[0].Raw)

	require.Len(t, record.EmploymentHistory.Positions, 1)
	assert.Equal(t, "Software Engineer", record.EmploymentHistory.Positions[0].Title)
	assert.Equal(t, "Acme Corp", record.EmploymentHistory.Positions[0].Organization)
	assert.Contains(t, record.EmploymentHistory.Positions[0].StartDate, "Jan 2020")
	assert.Equal(t, "Present", record.EmploymentHistory.Positions[0].EndDate)

	assert.Equal(t, []string{"Python", "Go", "SQL"}, record.Skills)

	require.Len(t, record.Education, 1)
	assert.Contains(t, record.Education[0].Degree, "B.S.")
	assert.Equal(t, "State University", record.Education[0].Institution)
	assert.Equal(t, "2019", record.Education[0].Date)
}

func TestParseIsDeterministic(t *testing.T) {
	proc := newTestProcessor(t)

	first, err := proc.Parse(context.Background(), []byte(wellFormedResume), types.FormatTXT)
	require.NoError(t, err)
	second, err := proc.Parse(context.Background(), []byte(wellFormedResume), types.FormatTXT)
	require.NoError(t, err)

	// 耗时是唯一允许不同的字段
	first.ProcessingTime = 0
	second.ProcessingTime = 0
	assert.Equal(t, first, second, "相同输入必须产出相同记录")
}

func TestParseFilenameFallback(t *testing.T) {
	proc := newTestProcessor(t)

	// 正文没有可识别的姓名行
	body := "SKILLS\nGo, Python"
	record, err := proc.Parse(context.Background(), []byte(body), types.FormatTXT,
		WithSourceFilename("resume_of_jane_doe.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.ContactInformation.CandidateName.FormattedName,
		"文件名兜底推断")

	// 不提供文件名时该字段保持为空
	record, err = proc.Parse(context.Background(), []byte(body), types.FormatTXT)
	require.NoError(t, err)
	assert.Empty(t, record.ContactInformation.CandidateName.FormattedName)
}

func TestRecordMatchesSchema(t *testing.T) {
	schema, err := jsonschema.CompileString("resume_record.schema.json", string(RecordSchema))
	require.NoError(t, err, "内嵌schema必须可编译")

	proc := newTestProcessor(t)

	validate := func(record *types.ResumeRecord) {
		t.Helper()
		out, err := json.Marshal(record)
		require.NoError(t, err)
		var doc interface{}
		require.NoError(t, json.Unmarshal(out, &doc))
		assert.NoError(t, schema.Validate(doc), "输出必须符合schema契约")
	}

	record, err := proc.Parse(context.Background(), []byte(wellFormedResume), types.FormatTXT)
	require.NoError(t, err)
	validate(record)

	// 失败记录同样符合契约
	failed, _ := proc.Parse(context.Background(), []byte{0x00, 0x01}, types.FormatTXT)
	validate(failed)
}
