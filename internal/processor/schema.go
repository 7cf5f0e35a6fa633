package processor

import (
	_ "embed"
)

// RecordSchema 输出记录的JSON Schema，随二进制一起分发
// 下游按此契约消费解析结果
//
//go:embed schema/resume_record.schema.json
var RecordSchema []byte
