// pkg/collector/interface.go
package collector

import "time"

// Candle 单日收盘数据
type Candle struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceFetcher 实时价格数据源，代码不区分大小写，任何失败都视为价格不可用
type PriceFetcher interface {
	FetchPrice(symbol string) (float64, error)
}

// HistoryFetcher 历史收盘数据源，返回按日期升序的序列，可能为空
type HistoryFetcher interface {
	FetchHistory(symbol string) ([]Candle, error)
}
