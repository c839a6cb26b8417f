package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"settrack/pkg/collector"
	"settrack/pkg/database"
	"settrack/pkg/insights"
	"settrack/pkg/jobs"
	"settrack/pkg/model"
	"settrack/pkg/notifier"
)

// Handlers API处理程序
type Handlers struct {
	db     *database.DB
	prices collector.PriceFetcher
	runner *jobs.Runner
	email  *notifier.EmailSender
}

// NewHandlers 创建新的API处理程序
func NewHandlers(
	db *database.DB,
	prices collector.PriceFetcher,
	runner *jobs.Runner,
	email *notifier.EmailSender,
) *Handlers {
	return &Handlers{
		db:     db,
		prices: prices,
		runner: runner,
		email:  email,
	}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// FetchPrice 获取实时价格处理程序
func (h *Handlers) FetchPrice(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "symbol参数不能为空",
		})
		return
	}

	price, err := h.prices.FetchPrice(symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取价格失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":    strings.ToUpper(symbol),
		"price":     price,
		"timestamp": time.Now(),
	})
}

// followItem 关注列表项，附带实时价格和活跃提醒
type followItem struct {
	model.Follow
	LivePrice float64      `json:"live_price"`
	Alert     *model.Alert `json:"alert"`
}

// ListFollows 获取用户关注列表处理程序
func (h *Handlers) ListFollows(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email参数不能为空",
		})
		return
	}

	user, err := h.db.User().GetByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// 未知用户返回空列表
			c.JSON(http.StatusOK, []followItem{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	follows, err := h.db.Follow().GetByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	activeAlerts, err := h.db.Alert().GetActiveByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]followItem, 0, len(follows))
	for _, f := range follows {
		// 实时价格获取失败时回落为0，不阻断整个列表
		livePrice, err := h.prices.FetchPrice(f.Stock.Symbol)
		if err != nil {
			livePrice = 0
		}

		var alert *model.Alert
		for i := range activeAlerts {
			if activeAlerts[i].StockID == f.StockID {
				alert = &activeAlerts[i]
				break
			}
		}

		items = append(items, followItem{
			Follow:    f,
			LivePrice: livePrice,
			Alert:     alert,
		})
	}

	c.JSON(http.StatusOK, items)
}

// CreateFollowRequest 关注请求
type CreateFollowRequest struct {
	Symbol    string  `json:"symbol" binding:"required"`
	UserEmail string  `json:"user_email" binding:"required,email"`
	Price     float64 `json:"price"`
}

// CreateFollow 关注股票处理程序
func (h *Handlers) CreateFollow(c *gin.Context) {
	var req CreateFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	follow, existed, err := createFollow(h.db.User(), h.db.Stock(), h.db.Follow(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 重复关注不算错误
	if existed {
		c.JSON(http.StatusOK, gin.H{"message": "已经关注过该股票"})
		return
	}

	c.JSON(http.StatusCreated, follow)
}

// DeleteFollow 取消关注处理程序
func (h *Handlers) DeleteFollow(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id参数不能为空",
		})
		return
	}

	if err := h.db.Follow().Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListAlerts 获取用户提醒列表处理程序
func (h *Handlers) ListAlerts(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email参数不能为空",
		})
		return
	}

	user, err := h.db.User().GetByEmail(email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, []model.Alert{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	alerts, err := h.db.Alert().GetByUserID(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// CreateAlertRequest 创建提醒请求
type CreateAlertRequest struct {
	Symbol      string               `json:"symbol" binding:"required"`
	TargetPrice float64              `json:"target_price" binding:"required"`
	Condition   model.AlertCondition `json:"condition" binding:"required"`
	UserEmail   string               `json:"user_email" binding:"required,email"`
}

// CreateAlert 创建提醒处理程序
func (h *Handlers) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	// 条件取值校验，任何存储变更之前完成
	if !req.Condition.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "condition只支持GT或LT",
		})
		return
	}

	alert, err := createAlert(h.db.User(), h.db.Stock(), h.db.Alert(), h.db.Follow(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// DeleteAlert 删除提醒处理程序
func (h *Handlers) DeleteAlert(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id参数不能为空",
		})
		return
	}

	if err := h.db.Alert().Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "提醒已删除"})
}

// GetInsights 市场洞察处理程序
func (h *Handlers) GetInsights(c *gin.Context) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, -10)

	stocks, err := h.db.Stock().GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.db.History().ListSince(cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 按股票分组，ListSince 已按日期升序
	byStock := make(map[string][]insights.Point)
	for _, e := range entries {
		byStock[e.StockID] = append(byStock[e.StockID], insights.Point{
			Date:  e.Date,
			Close: e.Close,
		})
	}

	series := make([]insights.Series, 0, len(stocks))
	for _, s := range stocks {
		series = append(series, insights.Series{
			Symbol:     s.Symbol,
			LastUpdate: s.LastUpdate,
			Points:     byStock[s.ID],
		})
	}

	c.JSON(http.StatusOK, insights.Build(series, now))
}

// SeedHistory 历史回填处理程序
func (h *Handlers) SeedHistory(c *gin.Context) {
	result, err := h.runner.SeedHistory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "历史回填完成",
		"stocks_processed": result.StocksProcessed,
		"records_created":  result.RecordsCreated,
	})
}

// RunJob 任务触发处理程序，type区分小时任务和每日任务
func (h *Handlers) RunJob(c *gin.Context) {
	jobType := c.DefaultQuery("type", "hourly")

	switch jobType {
	case "hourly":
		result, err := h.runner.RunHourly()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result.Skipped {
			c.JSON(http.StatusOK, gin.H{"message": "市场休市"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "小时任务完成",
			"triggered": result.Triggered,
		})
	case "daily":
		result, err := h.runner.RunDaily()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "每日任务完成",
			"updated": result.Updated,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的任务类型"})
	}
}

// TestEmailRequest 摘要邮件测试请求
type TestEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TestEmail 发送每日摘要邮件处理程序
func (h *Handlers) TestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的请求参数: " + err.Error(),
		})
		return
	}

	var rows []notifier.SummaryRow
	user, err := h.db.User().GetByEmail(req.Email)
	if err == nil {
		follows, err := h.db.Follow().GetByUserID(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		for _, f := range follows {
			livePrice, err := h.prices.FetchPrice(f.Stock.Symbol)
			display := f.Stock.LastPrice
			if err == nil && livePrice > 0 {
				display = livePrice
			}
			// 颜色只是视觉近似，没有真正的前收盘价基准
			rows = append(rows, notifier.SummaryRow{
				Symbol: f.Stock.Symbol,
				Price:  display,
				Up:     display >= f.Stock.LastPrice,
			})
		}
	} else if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	html, err := notifier.BuildDailySummary(rows, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.email.SendHTML(req.Email, "Daily Stock Summary", html); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !h.email.Configured() {
		c.JSON(http.StatusOK, gin.H{"message": "降级模式：摘要已输出到日志"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "摘要邮件已发送"})
}
