// pkg/market/clock.go

// Package market 泰国证交所(SET)交易时段判断
package market

import "time"

// 泰国时区 UTC+7，无夏令时
var bangkok = time.FixedZone("ICT", 7*60*60)

// 交易时段，以 小时*100+分钟 表示，边界含端点
// 早盘 10:00 - 12:30，午盘 14:00 - 16:30
const (
	morningOpen    = 1000
	morningClose   = 1230
	afternoonOpen  = 1400
	afternoonClose = 1630
)

// IsOpen 判断指定时刻市场是否开盘。纯函数，无副作用
func IsOpen(now time.Time) bool {
	t := now.In(bangkok)

	// 周末休市
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}

	hm := t.Hour()*100 + t.Minute()

	isMorning := hm >= morningOpen && hm <= morningClose
	isAfternoon := hm >= afternoonOpen && hm <= afternoonClose

	return isMorning || isAfternoon
}
