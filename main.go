package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"weathercn.app/app"
	"weathercn.app/forecast"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("weathercn", flag.ContinueOnError)

	var opts app.Options
	fs.StringVar(&opts.Format, "format", "text", "输出格式: text 或 json")
	fs.StringVar(&opts.Detail, "detail", "basic", "输出详情级别: basic 或 full")
	fs.IntVar(&opts.HourlySteps, "hourly-steps", forecast.BasicHourlySteps, "小时级步数 1-360 (full 模式生效)")
	fs.BoolVar(&opts.Mock, "mock", false, "离线调试模式，不发起外网请求")
	fs.BoolVar(&opts.Debug, "debug", false, "打印调试日志")
	fs.BoolVar(&opts.IncludeRaw, "raw", false, "json 输出时附加原始彩云响应")
	fs.StringVar(&opts.CacheDir, "cache-dir", "", "缓存目录 (默认: ./cache)")
	fs.IntVar(&opts.TimeoutSeconds, "timeout", 0, "HTTP 超时时间(秒)")
	fs.StringVar(&opts.AmapKey, "amap-key", "", "高德 API Key")
	fs.StringVar(&opts.CaiyunToken, "caiyun-token", "", "彩云 API Token")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "用法: weathercn [flags] <位置描述>\n例: weathercn -mock 北京市朝阳区\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "place 不能为空")
		fs.Usage()
		return 1
	}
	opts.Place = fs.Arg(0)

	setupLogging(opts.Debug)

	application, err := app.NewApplication(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := application.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if debug {
		logger = logger.With("run_id", uuid.NewString())
	}
	slog.SetDefault(logger)
}
