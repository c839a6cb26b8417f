package api

import (
	"time"

	"settrack/pkg/model"
)

// 懒创建编排依赖的最小存储操作，由 pkg/database 的各仓库实现

type userStore interface {
	FindOrCreateByEmail(email string) (*model.User, error)
}

type stockStore interface {
	FindOrCreateBySymbol(symbol string) (*model.Stock, error)
	UpdatePrice(symbol string, price float64, ts time.Time) error
}

type alertStore interface {
	Create(alert *model.Alert) error
}

type followStore interface {
	FindOrCreate(userID, stockID string) (*model.Follow, bool, error)
}

// createFollow 懒创建用户和股票后建立关注关系。
// existed 为真表示关注已存在，调用方按成功处理
func createFollow(users userStore, stocks stockStore, follows followStore, req CreateFollowRequest) (*model.Follow, bool, error) {
	user, err := users.FindOrCreateByEmail(req.UserEmail)
	if err != nil {
		return nil, false, err
	}

	stock, err := stocks.FindOrCreateBySymbol(req.Symbol)
	if err != nil {
		return nil, false, err
	}

	// 客户端带来的价格大于0时顺手落库，省一次抓取
	if req.Price > 0 {
		if err := stocks.UpdatePrice(stock.Symbol, req.Price, time.Now()); err != nil {
			return nil, false, err
		}
	}

	return follows.FindOrCreate(user.ID, stock.ID)
}

// createAlert 懒创建用户和股票后建立活跃提醒，并自动关注：
// 始终走 (用户, 股票) 的查询或创建，保证不产生重复关注
func createAlert(users userStore, stocks stockStore, alerts alertStore, follows followStore, req CreateAlertRequest) (*model.Alert, error) {
	user, err := users.FindOrCreateByEmail(req.UserEmail)
	if err != nil {
		return nil, err
	}

	stock, err := stocks.FindOrCreateBySymbol(req.Symbol)
	if err != nil {
		return nil, err
	}

	alert := &model.Alert{
		UserID:      user.ID,
		StockID:     stock.ID,
		TargetPrice: req.TargetPrice,
		Condition:   req.Condition,
		IsActive:    true,
	}
	if err := alerts.Create(alert); err != nil {
		return nil, err
	}

	if _, _, err := follows.FindOrCreate(user.ID, stock.ID); err != nil {
		return nil, err
	}

	return alert, nil
}
