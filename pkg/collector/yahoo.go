// pkg/collector/yahoo.go
package collector

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// yahooChartResponse Yahoo Finance Chart API (v8) 响应结构
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Yahoo 历史收盘数据源，泰股代码需要加 .BK 后缀
type Yahoo struct {
	baseURL string
	client  *http.Client
}

// NewYahoo 创建 Yahoo Finance 数据源
func NewYahoo(baseURL string, timeout time.Duration) *Yahoo {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Yahoo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchHistory 获取最近一个月的每日收盘序列，按日期升序返回
func (y *Yahoo) FetchHistory(symbol string) ([]Candle, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s.BK?range=1mo&interval=1d",
		y.baseURL, strings.ToUpper(symbol))
	log.Printf("抓取 %s 历史收盘: %s", symbol, url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求历史数据失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("历史数据接口返回异常状态: %d", resp.StatusCode)
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("解析历史数据失败: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("历史数据接口返回错误: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		log.Printf("未找到 %s 的历史数据", symbol)
		return nil, nil
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	// 接口按日期升序返回，保持原序；缺失的收盘价跳过
	var history []Candle
	for i, ts := range result.Timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		history = append(history, Candle{
			Date:  time.Unix(ts, 0),
			Close: *closes[i],
		})
	}

	return history, nil
}
