// pkg/collector/googlefinance.go
package collector

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// 价格文本中的千分位逗号和货币符号需要剔除
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// GoogleFinance 泰股实时价格数据源，抓取 Google Finance 的 BKK 行情页
type GoogleFinance struct {
	baseURL string
	client  *http.Client
}

// NewGoogleFinance 创建 Google Finance 数据源
func NewGoogleFinance(baseURL string, timeout time.Duration) *GoogleFinance {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &GoogleFinance{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchPrice 抓取指定股票的现价
func (g *GoogleFinance) FetchPrice(symbol string) (float64, error) {
	url := fmt.Sprintf("%s/finance/quote/%s:BKK", g.baseURL, strings.ToUpper(symbol))
	log.Printf("抓取 %s 现价: %s", symbol, url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("请求行情页失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("行情页返回异常状态: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("解析行情页失败: %w", err)
	}

	// Google Finance 的价格节点 class，".YMlKec.fxKbKc" 比单个 class 更稳定
	priceText := doc.Find(".YMlKec.fxKbKc").First().Text()
	cleaned := nonNumeric.ReplaceAllString(priceText, "")

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("解析价格失败，页面文本: %q", priceText)
	}

	return price, nil
}
