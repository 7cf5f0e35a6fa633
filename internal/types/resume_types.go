package types

// DocumentFormat 调用方声明的文档格式
type DocumentFormat string

const (
	// FormatPDF PDF文档
	FormatPDF DocumentFormat = "pdf"
	// FormatDOC 旧版Word文档
	FormatDOC DocumentFormat = "doc"
	// FormatDOCX 新版Word文档
	FormatDOCX DocumentFormat = "docx"
	// FormatTXT 纯文本文档
	FormatTXT DocumentFormat = "txt"
)

// Valid 判断声明格式是否在支持范围内
func (f DocumentFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatDOC, FormatDOCX, FormatTXT:
		return true
	}
	return false
}

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionContact 联系方式章节（简历开头默认归入此类）
	SectionContact SectionType = "CONTACT"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionOther 未分类内容章节
	SectionOther SectionType = "OTHER"
)

// RawDocument 一次解析请求的原始输入，文本提取后即被丢弃
type RawDocument struct {
	Data   []byte         // 原始字节
	Format DocumentFormat // 调用方声明的格式
}

// PlainText 提取后的纯文本，以及按文档顺序排列的行
// 每次请求独享一份实例，不跨请求共享
type PlainText struct {
	Text  string   // 完整文本
	Lines []string // 按行切分的结果，与Text保持一致
}

// Section 简历章节结构
// StartLine/EndLine 为PlainText.Lines上的左闭右开区间
type Section struct {
	Type      SectionType // 章节类型
	Title     string      // 实际命中的章节标题行（CONTACT默认章节为空）
	StartLine int         // 起始行
	EndLine   int         // 结束行（不含）
	Content   string      // 章节内容
}

// Candidate 某字段的一个候选值，附带确定性置信度和来源行号
type Candidate[T any] struct {
	Value      T       // 候选值
	Confidence float64 // 置信度 [0,1]
	Line       int     // 首次出现的行号
}

// Position 一段工作经历
type Position struct {
	Title        string `json:"Title"`
	Organization string `json:"Organization"`
	StartDate    string `json:"StartDate"`
	EndDate      string `json:"EndDate"`
	RawText      string `json:"RawText"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Degree      string `json:"Degree"`
	Institution string `json:"Institution"`
	Date        string `json:"Date"`
}

// CandidateName 候选人姓名
// GivenName/FamilyName 由FormattedName拆分得到，可能为空
type CandidateName struct {
	FormattedName string `json:"FormattedName"`
	GivenName     string `json:"GivenName,omitempty"`
	FamilyName    string `json:"FamilyName,omitempty"`
}

// EmailAddress 邮箱地址
type EmailAddress struct {
	Address string `json:"Address"`
}

// Telephone 电话号码，保留原文格式不做改写
type Telephone struct {
	Raw string `json:"Raw"`
}

// ContactInformation 联系信息
type ContactInformation struct {
	CandidateName  CandidateName  `json:"CandidateName"`
	EmailAddresses []EmailAddress `json:"EmailAddresses"`
	Telephones     []Telephone    `json:"Telephones"`
}

// EmploymentHistory 工作经历汇总
type EmploymentHistory struct {
	Positions []Position `json:"Positions"`
}

// ResumeRecord 标准化输出结构
// 约定：任何字段都不为null，缺失数据用空串/空序列表示；
// 所有序列保持文档中首次出现的顺序
type ResumeRecord struct {
	Success            bool               `json:"success"`
	Error              string             `json:"error,omitempty"`
	ContactInformation ContactInformation `json:"ContactInformation"`
	EmploymentHistory  EmploymentHistory  `json:"EmploymentHistory"`
	Skills             []string           `json:"Skills"`
	Education          []EducationEntry   `json:"Education"`
	ProcessingTime     float64            `json:"processing_time"`
	StandardFormat     bool               `json:"standard_format"`
	QualityScore       float64            `json:"quality_score"`
}

// NewEmptyRecord 构造一个所有集合均已初始化的空记录
// 失败路径也必须返回完整结构（字段存在但为空）
func NewEmptyRecord() *ResumeRecord {
	return &ResumeRecord{
		ContactInformation: ContactInformation{
			EmailAddresses: []EmailAddress{},
			Telephones:     []Telephone{},
		},
		EmploymentHistory: EmploymentHistory{
			Positions: []Position{},
		},
		Skills:         []string{},
		Education:      []EducationEntry{},
		StandardFormat: true,
	}
}
