package constants

import "time"

const (
	// DefaultParserVer 解析引擎版本号
	DefaultParserVer = "2.0"

	// PageBreakMarker PDF逐页提取后插入的分页标记行
	// 章节标题启发式不允许跨越此标记匹配
	PageBreakMarker = "--- Page Break ---"

	// DefaultExtractTimeout 单个文档文本提取的默认超时时间
	DefaultExtractTimeout = 30 * time.Second

	// MaxNameScanLines 无CONTACT章节时姓名扫描的非空行数上限
	MaxNameScanLines = 5

	// DefaultMinConfidence 多值字段进入最终记录的默认置信度下限
	DefaultMinConfidence = 0.35
)
