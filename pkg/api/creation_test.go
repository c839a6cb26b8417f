package api

import (
	"fmt"
	"testing"
	"time"

	"settrack/pkg/model"
)

// 内存版存储，复现各仓库的查询或创建语义

type fakeUserStore struct {
	users map[string]*model.User // email -> user
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) FindOrCreateByEmail(email string) (*model.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	u := &model.User{ID: fmt.Sprintf("user-%d", len(f.users)+1), Email: email}
	f.users[email] = u
	return u, nil
}

type fakeStockStore struct {
	stocks map[string]*model.Stock // symbol -> stock
	prices map[string]float64
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{
		stocks: make(map[string]*model.Stock),
		prices: make(map[string]float64),
	}
}

func (f *fakeStockStore) FindOrCreateBySymbol(symbol string) (*model.Stock, error) {
	if s, ok := f.stocks[symbol]; ok {
		return s, nil
	}
	// 新建股票价格为0，等待任务同步
	s := &model.Stock{ID: fmt.Sprintf("stock-%d", len(f.stocks)+1), Symbol: symbol, LastPrice: 0}
	f.stocks[symbol] = s
	return s, nil
}

func (f *fakeStockStore) UpdatePrice(symbol string, price float64, ts time.Time) error {
	f.prices[symbol] = price
	return nil
}

type fakeAlertStore struct {
	alerts []*model.Alert
}

func (f *fakeAlertStore) Create(alert *model.Alert) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

type fakeFollowStore struct {
	follows map[string]*model.Follow // userID+stockID -> follow
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{follows: make(map[string]*model.Follow)}
}

func (f *fakeFollowStore) FindOrCreate(userID, stockID string) (*model.Follow, bool, error) {
	key := userID + "|" + stockID
	if fl, ok := f.follows[key]; ok {
		return fl, true, nil
	}
	fl := &model.Follow{ID: fmt.Sprintf("follow-%d", len(f.follows)+1), UserID: userID, StockID: stockID}
	f.follows[key] = fl
	return fl, false, nil
}

func TestCreateAlertLazyCreationAndAutoFollow(t *testing.T) {
	users := newFakeUserStore()
	stocks := newFakeStockStore()
	alerts := &fakeAlertStore{}
	follows := newFakeFollowStore()

	// PTT 此前没有任何关注和提醒
	req := CreateAlertRequest{
		Symbol:      "PTT",
		TargetPrice: 35,
		Condition:   model.ConditionGT,
		UserEmail:   "new@test.com",
	}

	alert, err := createAlert(users, stocks, alerts, follows, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 用户、股票、提醒、关注全部懒创建
	if len(users.users) != 1 {
		t.Errorf("users created = %d, want 1", len(users.users))
	}
	stock, ok := stocks.stocks["PTT"]
	if !ok {
		t.Fatal("stock PTT must be created")
	}
	if stock.LastPrice != 0 {
		t.Errorf("new stock price = %v, want 0", stock.LastPrice)
	}
	if !alert.IsActive {
		t.Error("new alert must be active")
	}
	if alert.TargetPrice != 35 || alert.Condition != model.ConditionGT {
		t.Errorf("alert = %+v, want target 35 condition GT", alert)
	}
	if len(follows.follows) != 1 {
		t.Errorf("follows created = %d, want 1", len(follows.follows))
	}

	// 同一 (用户, 股票) 再建一条提醒，关注仍然只有一条
	if _, err := createAlert(users, stocks, alerts, follows, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alerts.alerts) != 2 {
		t.Errorf("alerts created = %d, want 2", len(alerts.alerts))
	}
	if len(follows.follows) != 1 {
		t.Errorf("follows after second alert = %d, want exactly 1", len(follows.follows))
	}
	if len(users.users) != 1 || len(stocks.stocks) != 1 {
		t.Error("repeated creation must reuse the existing user and stock")
	}
}

func TestCreateFollowDuplicateIsSuccess(t *testing.T) {
	users := newFakeUserStore()
	stocks := newFakeStockStore()
	follows := newFakeFollowStore()

	req := CreateFollowRequest{Symbol: "PTT", UserEmail: "u@test.com"}

	_, existed, err := createFollow(users, stocks, follows, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existed {
		t.Error("first follow must be reported as new")
	}

	_, existed, err = createFollow(users, stocks, follows, req)
	if err != nil {
		t.Fatalf("duplicate follow is not an error: %v", err)
	}
	if !existed {
		t.Error("second follow must be reported as already existing")
	}
	if len(follows.follows) != 1 {
		t.Errorf("follows = %d, want exactly 1", len(follows.follows))
	}
}

func TestCreateFollowPersistsClientPrice(t *testing.T) {
	users := newFakeUserStore()
	stocks := newFakeStockStore()
	follows := newFakeFollowStore()

	// 客户端带价格时落库，不带时保持0
	if _, _, err := createFollow(users, stocks, follows, CreateFollowRequest{
		Symbol: "PTT", UserEmail: "u@test.com", Price: 34.5,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stocks.prices["PTT"] != 34.5 {
		t.Errorf("stored price = %v, want 34.5", stocks.prices["PTT"])
	}

	if _, _, err := createFollow(users, stocks, follows, CreateFollowRequest{
		Symbol: "CPALL", UserEmail: "u@test.com",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stocks.prices["CPALL"]; ok {
		t.Error("zero client price must not be persisted")
	}
}
