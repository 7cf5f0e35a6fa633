package processor

import (
	"sort"
	"strings"

	"resume-parser-go/internal/types"
)

// fieldCandidates 五路字段提取器的汇总结果，装配前的中间形态
type fieldCandidates struct {
	names     []types.Candidate[string]
	emails    []types.Candidate[string]
	phones    []types.Candidate[string]
	positions []types.Candidate[types.Position]
	skills    []types.Candidate[string]
	education []types.Candidate[types.EducationEntry]
}

// RecordAssembler 把候选值集合装配为标准输出记录
// 单值字段取置信度最高者（平分时取行号靠前者），
// 多值字段保留达到下限的全部候选并维持文档顺序
type RecordAssembler struct {
	minConfidence float64
}

// NewRecordAssembler 创建记录装配器
func NewRecordAssembler(minConfidence float64) *RecordAssembler {
	return &RecordAssembler{minConfidence: minConfidence}
}

// Assemble 装配最终记录
// success的定义：至少一个字段产出了非空结果
func (a *RecordAssembler) Assemble(candidates *fieldCandidates) *types.ResumeRecord {
	record := types.NewEmptyRecord()

	if name, ok := pickBest(candidates.names); ok {
		record.ContactInformation.CandidateName = splitName(name.Value)
	}

	for _, c := range filterByConfidence(candidates.emails, a.minConfidence) {
		record.ContactInformation.EmailAddresses = append(
			record.ContactInformation.EmailAddresses, types.EmailAddress{Address: c.Value})
	}
	for _, c := range filterByConfidence(candidates.phones, a.minConfidence) {
		record.ContactInformation.Telephones = append(
			record.ContactInformation.Telephones, types.Telephone{Raw: c.Value})
	}
	for _, c := range filterByConfidence(candidates.positions, a.minConfidence) {
		record.EmploymentHistory.Positions = append(record.EmploymentHistory.Positions, c.Value)
	}
	for _, c := range filterByConfidence(candidates.skills, a.minConfidence) {
		record.Skills = append(record.Skills, c.Value)
	}
	for _, c := range filterByConfidence(candidates.education, a.minConfidence) {
		record.Education = append(record.Education, c.Value)
	}

	record.QualityScore = qualityScore(record)
	record.Success = record.ContactInformation.CandidateName.FormattedName != "" ||
		len(record.ContactInformation.EmailAddresses) > 0 ||
		len(record.ContactInformation.Telephones) > 0 ||
		len(record.EmploymentHistory.Positions) > 0 ||
		len(record.Skills) > 0 ||
		len(record.Education) > 0

	return record
}

// pickBest 单值字段的决胜：置信度最高者，平分时行号靠前者
func pickBest[T any](candidates []types.Candidate[T]) (types.Candidate[T], bool) {
	if len(candidates) == 0 {
		var zero types.Candidate[T]
		return zero, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence ||
			(c.Confidence == best.Confidence && c.Line < best.Line) {
			best = c
		}
	}
	return best, true
}

// filterByConfidence 保留达到下限的候选并按行号维持文档顺序
func filterByConfidence[T any](candidates []types.Candidate[T], min float64) []types.Candidate[T] {
	var kept []types.Candidate[T]
	for _, c := range candidates {
		if c.Confidence >= min {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Line < kept[j].Line
	})
	return kept
}

// splitName 从格式化姓名拆出名和姓：首词为名，末词为姓
// 单词姓名只填FormattedName
func splitName(formatted string) types.CandidateName {
	name := types.CandidateName{FormattedName: formatted}
	words := strings.Fields(formatted)
	if len(words) >= 2 {
		name.GivenName = words[0]
		name.FamilyName = words[len(words)-1]
	}
	return name
}

// qualityScore 记录完整性评分：姓名0.25 + 经历0.30 + 学历0.25 + 技能0.20
func qualityScore(record *types.ResumeRecord) float64 {
	score := 0.0
	if record.ContactInformation.CandidateName.FormattedName != "" {
		score += 0.25
	}
	if len(record.EmploymentHistory.Positions) > 0 {
		score += 0.30
	}
	if len(record.Education) > 0 {
		score += 0.25
	}
	if len(record.Skills) > 0 {
		score += 0.20
	}
	return score
}
