// pkg/jobs/runner.go

// Package jobs 定时任务：小时级提醒评估与价格同步、每日收盘记录、历史回填
package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"settrack/pkg/collector"
	"settrack/pkg/market"
	"settrack/pkg/model"
	"settrack/pkg/notifier"
)

// Store 任务消费的存储操作，由 pkg/database 的 DB 实现
type Store interface {
	ActiveAlerts() ([]model.Alert, error)
	UpdateStockPrice(symbol string, price float64, ts time.Time) error
	DeactivateAlert(alertID string) error
	AllStocks() ([]model.Stock, error)
	HasHistoryOn(stockID string, day time.Time) (bool, error)
	InsertHistory(entry *model.HistoryEntry) error
}

// HourlyResult 小时任务执行结果
type HourlyResult struct {
	Triggered int  `json:"triggered"`
	Skipped   bool `json:"skipped"` // 休市跳过时为真
}

// DailyResult 每日收盘记录任务执行结果
type DailyResult struct {
	Updated int `json:"updated"`
}

// SeedResult 历史回填执行结果
type SeedResult struct {
	StocksProcessed int `json:"stocks_processed"`
	RecordsCreated  int `json:"records_created"`
}

// Runner 任务执行器。单次调用内顺序执行，不做并发展开
type Runner struct {
	store   Store
	prices  collector.PriceFetcher
	history collector.HistoryFetcher
	sender  notifier.Sender

	// 便于测试注入
	now    func() time.Time
	isOpen func(time.Time) bool
}

// NewRunner 创建任务执行器
func NewRunner(store Store, prices collector.PriceFetcher, history collector.HistoryFetcher, sender notifier.Sender) *Runner {
	return &Runner{
		store:   store,
		prices:  prices,
		history: history,
		sender:  sender,
		now:     time.Now,
		isOpen:  market.IsOpen,
	}
}

// RunHourly 小时任务：同步价格并评估活跃提醒。休市期间不评估也不刷新价格
func (r *Runner) RunHourly() (HourlyResult, error) {
	if !r.isOpen(r.now()) {
		log.Println("市场休市，跳过本轮检查")
		return HourlyResult{Skipped: true}, nil
	}

	// 1. 加载全部活跃提醒，附带股票和用户信息
	alerts, err := r.store.ActiveAlerts()
	if err != nil {
		return HourlyResult{}, fmt.Errorf("加载活跃提醒失败: %w", err)
	}
	if len(alerts) == 0 {
		log.Println("没有活跃提醒")
		return HourlyResult{}, nil
	}

	// 2. 按股票去重，每个代码每轮最多请求一次数据源
	symbols := make([]string, 0)
	seen := make(map[string]bool)
	for _, a := range alerts {
		sym := strings.ToUpper(a.Stock.Symbol)
		if !seen[sym] {
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}

	// 3. 拉取现价并落库。价格缓存仅在本轮任务内有效
	prices := make(map[string]float64)
	for _, sym := range symbols {
		price, err := r.prices.FetchPrice(sym)
		if err != nil {
			// 软失败：保留库内旧价格，本轮不评估该股票的提醒
			log.Printf("获取 %s 价格失败，本轮跳过: %v", sym, err)
			continue
		}
		prices[sym] = price

		if err := r.store.UpdateStockPrice(sym, price, r.now()); err != nil {
			log.Printf("更新 %s 价格失败: %v", sym, err)
		}
	}

	// 4. 逐条评估提醒
	triggered := 0
	for _, alert := range alerts {
		current, ok := prices[strings.ToUpper(alert.Stock.Symbol)]
		if !ok {
			continue
		}
		if !alert.ShouldTrigger(current) {
			continue
		}

		triggered++

		subject := fmt.Sprintf("Stock Alert: %s is %.2f", alert.Stock.Symbol, current)
		body := fmt.Sprintf(
			"Your alert for %s has been triggered.\nCurrent Price: %.2f\nTarget: %.2f (%s)",
			alert.Stock.Symbol, current, alert.TargetPrice, alert.Condition.Operator(),
		)

		// 通知失败只记录日志，不重试
		if err := r.sender.Send(alert.User.Email, subject, body); err != nil {
			log.Printf("发送提醒邮件失败 (alert=%s): %v", alert.ID, err)
		}

		// 触发后无条件停用，即使邮件发送失败，保证一次性语义
		if err := r.store.DeactivateAlert(alert.ID); err != nil {
			log.Printf("停用提醒失败 (alert=%s): %v", alert.ID, err)
		}
	}

	log.Printf("小时任务完成，触发 %d 条提醒", triggered)
	return HourlyResult{Triggered: triggered}, nil
}

// RunDaily 每日任务：为全部股票追加当日收盘记录。不受交易时段限制
func (r *Runner) RunDaily() (DailyResult, error) {
	stocks, err := r.store.AllStocks()
	if err != nil {
		return DailyResult{}, fmt.Errorf("加载股票列表失败: %w", err)
	}

	updated := 0
	for _, stock := range stocks {
		price, err := r.prices.FetchPrice(stock.Symbol)
		if err != nil {
			// 软失败：跳过，不计入成功数
			log.Printf("获取 %s 收盘价失败，跳过: %v", stock.Symbol, err)
			continue
		}

		entry := &model.HistoryEntry{
			StockID: stock.ID,
			Date:    r.now(),
			Close:   price,
		}
		if err := r.store.InsertHistory(entry); err != nil {
			log.Printf("写入 %s 收盘记录失败: %v", stock.Symbol, err)
			continue
		}
		updated++
	}

	log.Printf("每日任务完成，记录 %d 只股票", updated)
	return DailyResult{Updated: updated}, nil
}

// SeedHistory 回填历史收盘数据。同一股票同一自然日已有记录时跳过，可重复执行
func (r *Runner) SeedHistory() (SeedResult, error) {
	stocks, err := r.store.AllStocks()
	if err != nil {
		return SeedResult{}, fmt.Errorf("加载股票列表失败: %w", err)
	}

	created := 0
	for _, stock := range stocks {
		log.Printf("回填 %s 历史数据...", stock.Symbol)

		candles, err := r.history.FetchHistory(stock.Symbol)
		if err != nil {
			log.Printf("获取 %s 历史数据失败，跳过: %v", stock.Symbol, err)
			continue
		}

		for _, candle := range candles {
			exists, err := r.store.HasHistoryOn(stock.ID, candle.Date)
			if err != nil {
				log.Printf("检查 %s 历史记录失败: %v", stock.Symbol, err)
				continue
			}
			if exists {
				continue
			}

			entry := &model.HistoryEntry{
				StockID: stock.ID,
				Date:    candle.Date,
				Close:   candle.Close,
			}
			if err := r.store.InsertHistory(entry); err != nil {
				log.Printf("写入 %s 历史记录失败: %v", stock.Symbol, err)
				continue
			}
			created++
		}
	}

	log.Printf("历史回填完成，处理 %d 只股票，新增 %d 条记录", len(stocks), created)
	return SeedResult{StocksProcessed: len(stocks), RecordsCreated: created}, nil
}
