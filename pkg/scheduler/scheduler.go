package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"settrack/pkg/jobs"
)

// Scheduler 进程内任务调度器。各任务在回调内同步执行完毕，
// 调度周期不重叠即可保证同一时刻只有一个任务实例在跑；
// 改用外部调度器触发 /api/v1/jobs/run 时，需要由外部保证不并发
type Scheduler struct {
	cron   *cron.Cron
	runner *jobs.Runner
}

// NewScheduler 创建任务调度器
func NewScheduler(runner *jobs.Runner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
	}
}

// Start 注册任务并启动调度器
func (s *Scheduler) Start(hourlySpec, dailySpec string) error {
	// 小时任务：价格同步与提醒评估，任务内部自行判断交易时段
	if _, err := s.cron.AddFunc(hourlySpec, func() {
		result, err := s.runner.RunHourly()
		if err != nil {
			log.Printf("小时任务执行失败: %v", err)
			return
		}
		if !result.Skipped {
			log.Printf("小时任务触发 %d 条提醒", result.Triggered)
		}
	}); err != nil {
		return fmt.Errorf("注册小时任务失败: %w", err)
	}

	// 每日任务：收盘后记录历史
	if _, err := s.cron.AddFunc(dailySpec, func() {
		result, err := s.runner.RunDaily()
		if err != nil {
			log.Printf("每日任务执行失败: %v", err)
			return
		}
		log.Printf("每日任务记录 %d 只股票", result.Updated)
	}); err != nil {
		return fmt.Errorf("注册每日任务失败: %w", err)
	}

	s.cron.Start()
	log.Printf("调度器已启动 (hourly=%q, daily=%q)", hourlySpec, dailySpec)
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
