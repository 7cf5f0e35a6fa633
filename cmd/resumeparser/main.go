package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"
)

func main() {
	var (
		configPath   string
		filePath     string
		formatFlag   string
		outputPath   string
		pretty       bool
		sampleConfig string
	)

	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（默认在常见位置查找）")
	pflag.StringVarP(&filePath, "file", "f", "", "待解析的简历文件")
	pflag.StringVar(&formatFlag, "format", "", "声明格式 pdf/doc/docx/txt（默认按扩展名推断）")
	pflag.StringVarP(&outputPath, "save", "s", "", "结果写入文件（默认输出到stdout）")
	pflag.BoolVar(&pretty, "pretty", false, "格式化输出JSON")
	pflag.StringVar(&sampleConfig, "sample-config", "", "生成配置样例文件到指定路径后退出")
	pflag.Parse()

	if sampleConfig != "" {
		if err := config.CreateSampleConfig(sampleConfig); err != nil {
			fmt.Fprintf(os.Stderr, "生成配置样例失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("配置样例已写入 %s\n", sampleConfig)
		return
	}

	if filePath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logger)

	ctx := context.Background()

	shutdown, err := tracing.InitTracerProvider(ctx,
		cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		logger.Warn().Err(err).Msg("初始化链路追踪失败，继续运行")
	} else {
		defer shutdown(ctx)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", filePath).Msg("读取简历文件失败")
	}

	format := inferFormat(filePath, formatFlag)

	proc, err := processor.NewResumeProcessor(ctx, cfg, nil, []processor.SettingOpt{
		processor.WithsetLogger(logger.Logger),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化解析器失败")
	}

	record, err := proc.Parse(ctx, data, format,
		processor.WithSourceFilename(filepath.Base(filePath)))
	if err != nil {
		// 致命错误也输出结构完整的失败记录，再以非零码退出
		writeRecord(record, outputPath, pretty)
		os.Exit(1)
	}

	writeRecord(record, outputPath, pretty)
}

// inferFormat 显式指定优先，否则按文件扩展名推断
func inferFormat(filePath, formatFlag string) types.DocumentFormat {
	if formatFlag != "" {
		return types.DocumentFormat(strings.ToLower(formatFlag))
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	return types.DocumentFormat(ext)
}

func writeRecord(record *types.ResumeRecord, outputPath string, pretty bool) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(record, "", "  ")
	} else {
		out, err = json.Marshal(record)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("序列化解析结果失败")
	}

	if outputPath == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(outputPath, append(out, '\n'), 0644); err != nil {
		logger.Fatal().Err(err).Str("file", outputPath).Msg("写入结果文件失败")
	}
	logger.Info().Str("file", outputPath).Msg("解析结果已保存")
}
