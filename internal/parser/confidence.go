package parser

// Signal 候选值的佐证信号
// 置信度是信号集合到分数的纯函数，同样输入必然得到同样输出
type Signal string

const (
	// SignalStrictSyntax 值通过了严格语法校验（如完整的邮箱语法）
	SignalStrictSyntax Signal = "strict_syntax"
	// SignalInExpectedSection 值出现在预期章节内（技能在SKILLS章节等）
	SignalInExpectedSection Signal = "in_expected_section"
	// SignalDateAnchored 值由日期区间锚定（工作经历块）
	SignalDateAnchored Signal = "date_anchored"
	// SignalCorroborated 值被独立来源佐证（如号码库校验通过）
	SignalCorroborated Signal = "corroborated"
	// SignalNearContact 值邻近其他联系方式出现
	SignalNearContact Signal = "near_contact"
	// SignalFallbackSource 值来自兜底来源（如文件名推断）
	SignalFallbackSource Signal = "fallback_source"
)

// 每个信号对基础分的固定增减
var signalBoosts = map[Signal]float64{
	SignalStrictSyntax:      0.25,
	SignalInExpectedSection: 0.10,
	SignalDateAnchored:      0.20,
	SignalCorroborated:      0.30,
	SignalNearContact:       0.05,
	SignalFallbackSource:    -0.30,
}

// Score 由基础分和信号集合计算置信度，结果截断到[0,1]
func Score(base float64, signals ...Signal) float64 {
	score := base
	for _, signal := range signals {
		score += signalBoosts[signal]
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
