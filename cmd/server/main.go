package main

import (
	"log"

	"github.com/joho/godotenv"

	"settrack/pkg/api"
	"settrack/pkg/collector"
	"settrack/pkg/config"
	"settrack/pkg/database"
	"settrack/pkg/jobs"
	"settrack/pkg/notifier"
	"settrack/pkg/scheduler"
)

func main() {
	log.Println("启动服务...")

	// 加载 .env，文件不存在时忽略
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用进程环境变量")
	}

	// 加载配置
	cfg, err := config.LoadConfig(config.GetDefaultConfigPath())
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 连接数据库并建表
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 数据源
	priceSource := collector.NewGoogleFinance(
		cfg.Sources.GoogleFinance.BaseURL,
		cfg.Sources.GoogleFinance.Timeout,
	)
	historySource := collector.NewYahoo(
		cfg.Sources.Yahoo.BaseURL,
		cfg.Sources.Yahoo.Timeout,
	)

	// 通知服务
	emailSender := notifier.NewEmailSender(cfg)
	if !emailSender.Configured() {
		log.Println("未配置SMTP，邮件通知降级为日志输出")
	}

	// 任务执行器
	runner := jobs.NewRunner(db, priceSource, historySource, emailSender)

	// 进程内调度器
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(runner)
		if err := sched.Start(cfg.Scheduler.HourlySpec, cfg.Scheduler.DailySpec); err != nil {
			log.Fatalf("启动调度器失败: %v", err)
		}
		defer sched.Stop()
	}

	// 创建并启动API服务器
	handlers := api.NewHandlers(db, priceSource, runner, emailSender)
	server := api.NewServer(cfg)
	server.SetupRoutes(handlers)
	server.Start()
}
