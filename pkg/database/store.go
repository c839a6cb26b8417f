// pkg/database/store.go
package database

import (
	"time"

	"settrack/pkg/model"
)

// 任务层依赖的聚合操作，见 pkg/jobs 的 Store 接口

func (d *DB) ActiveAlerts() ([]model.Alert, error) {
	return d.Alert().GetActive()
}

func (d *DB) UpdateStockPrice(symbol string, price float64, ts time.Time) error {
	return d.Stock().UpdatePrice(symbol, price, ts)
}

func (d *DB) DeactivateAlert(alertID string) error {
	return d.Alert().Deactivate(alertID)
}

func (d *DB) AllStocks() ([]model.Stock, error) {
	return d.Stock().GetAll()
}

func (d *DB) HasHistoryOn(stockID string, day time.Time) (bool, error) {
	return d.History().ExistsOn(stockID, day)
}

func (d *DB) InsertHistory(entry *model.HistoryEntry) error {
	return d.History().Insert(entry)
}
