// pkg/insights/calculator.go

// Package insights 基于历史收盘数据的市场洞察计算，纯计算无I/O
package insights

import (
	"sort"
	"time"
)

// Point 单日收盘点
type Point struct {
	Date  time.Time
	Close float64
}

// Series 单只股票的历史序列。调用方负责限定在最近10个自然日内并按日期升序排列
// 取10天而非7天，保证滚动窗口移动后仍有至少7天的尾部数据
type Series struct {
	Symbol     string
	LastUpdate time.Time
	Points     []Point
}

// Insight 单只股票的洞察结果
type Insight struct {
	Symbol       string    `json:"symbol"`
	CurrentPrice float64   `json:"current_price"`
	Change7d     float64   `json:"change7d"`
	Streak       int       `json:"streak"`
	AvgPrice     float64   `json:"avg_price"`
	IsAboveAvg   bool      `json:"is_above_avg"`
	LastUpdate   time.Time `json:"last_update"`
}

// Report 洞察汇总结果
type Report struct {
	TopGainers     []Insight `json:"top_gainers"`
	MomentumStocks []Insight `json:"momentum_stocks"`
	Timestamp      time.Time `json:"timestamp"`
	IsMock         bool      `json:"is_mock,omitempty"` // 真实数据不足时返回演示数据
}

const topN = 5

// Compute 计算单只股票的洞察。历史点不足2个或最早收盘价为0时返回假
func Compute(s Series) (Insight, bool) {
	history := s.Points
	if len(history) < 2 {
		return Insight{}, false
	}

	latest := history[len(history)-1].Close
	earliest := history[0].Close
	if earliest == 0 {
		// 百分比无意义
		return Insight{}, false
	}

	// 近7日涨跌幅
	change7d := (latest - earliest) / earliest * 100

	// 连涨天数：从最新一天向前回溯，遇到首个非严格上涨即停止
	streak := 0
	for i := len(history) - 1; i > 0; i-- {
		cur := history[i].Close
		prev := history[i-1].Close
		if cur > prev && prev != 0 {
			streak++
		} else {
			break
		}
	}

	// 窗口内均价
	sum := 0.0
	for _, p := range history {
		sum += p.Close
	}
	avg := sum / float64(len(history))

	return Insight{
		Symbol:       s.Symbol,
		CurrentPrice: latest,
		Change7d:     change7d,
		Streak:       streak,
		AvgPrice:     avg,
		IsAboveAvg:   latest > avg,
		LastUpdate:   s.LastUpdate,
	}, true
}

// Build 汇总全部股票的洞察。没有任何股票满足计算条件时返回演示数据
func Build(series []Series, now time.Time) Report {
	insights := make([]Insight, 0, len(series))
	for _, s := range series {
		if ins, ok := Compute(s); ok {
			insights = append(insights, ins)
		}
	}

	if len(insights) == 0 {
		return mockReport(now)
	}

	// 涨幅榜：按近7日涨跌幅降序
	gainers := make([]Insight, len(insights))
	copy(gainers, insights)
	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].Change7d > gainers[j].Change7d
	})
	if len(gainers) > topN {
		gainers = gainers[:topN]
	}

	// 动量榜：连涨>=2天且高于均价，按连涨天数降序，涨幅作为次级排序
	momentum := make([]Insight, 0)
	for _, ins := range insights {
		if ins.Streak >= 2 && ins.IsAboveAvg {
			momentum = append(momentum, ins)
		}
	}
	sort.SliceStable(momentum, func(i, j int) bool {
		if momentum[i].Streak != momentum[j].Streak {
			return momentum[i].Streak > momentum[j].Streak
		}
		return momentum[i].Change7d > momentum[j].Change7d
	})
	if len(momentum) > topN {
		momentum = momentum[:topN]
	}

	return Report{
		TopGainers:     gainers,
		MomentumStocks: momentum,
		Timestamp:      now,
	}
}

// mockReport 历史数据积累前的演示数据，避免前端完全空白
func mockReport(now time.Time) Report {
	return Report{
		TopGainers: []Insight{
			{Symbol: "PTT", CurrentPrice: 34.50, Change7d: 5.2, Streak: 2, IsAboveAvg: true},
			{Symbol: "CPALL", CurrentPrice: 65.25, Change7d: 4.8, Streak: 3, IsAboveAvg: true},
			{Symbol: "AOT", CurrentPrice: 62.00, Change7d: 3.5, Streak: 1, IsAboveAvg: false},
		},
		MomentumStocks: []Insight{
			{Symbol: "CPALL", CurrentPrice: 65.25, Change7d: 4.8, Streak: 3, IsAboveAvg: true},
			{Symbol: "PTT", CurrentPrice: 34.50, Change7d: 5.2, Streak: 2, IsAboveAvg: true},
		},
		Timestamp: now,
		IsMock:    true,
	}
}
