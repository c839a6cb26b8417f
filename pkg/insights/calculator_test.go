package insights

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(symbol string, closes ...float64) Series {
	points := make([]Point, len(closes))
	for i, c := range closes {
		points[i] = Point{Date: day(i), Close: c}
	}
	return Series{Symbol: symbol, Points: points}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute(t *testing.T) {
	// 最旧到最新: 10, 10, 12, 11, 13
	ins, ok := Compute(series("PTT", 10, 10, 12, 11, 13))
	if !ok {
		t.Fatal("expected stock to qualify")
	}

	if !almostEqual(ins.Change7d, 30) {
		t.Errorf("change7d = %v, want 30", ins.Change7d)
	}
	// 13>11 连涨1天，11>12 不成立即停止
	if ins.Streak != 1 {
		t.Errorf("streak = %d, want 1", ins.Streak)
	}
	if !almostEqual(ins.AvgPrice, 11.2) {
		t.Errorf("avgPrice = %v, want 11.2", ins.AvgPrice)
	}
	if !ins.IsAboveAvg {
		t.Error("expected latest close above average")
	}
	if !almostEqual(ins.CurrentPrice, 13) {
		t.Errorf("currentPrice = %v, want 13", ins.CurrentPrice)
	}
}

func TestComputeExclusions(t *testing.T) {
	tests := []struct {
		name   string
		series Series
	}{
		{"no history", series("A")},
		{"single point", series("B", 10)},
		{"earliest close is zero", series("C", 0, 10, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Compute(tt.series); ok {
				t.Error("expected stock to be excluded")
			}
		})
	}
}

func TestComputeStreakStopsAtZeroPrev(t *testing.T) {
	// 前一日收盘为0时连涨链中断
	ins, ok := Compute(series("D", 5, 0, 1, 2))
	if !ok {
		t.Fatal("expected stock to qualify")
	}
	if ins.Streak != 1 {
		t.Errorf("streak = %d, want 1 (chain must stop at zero close)", ins.Streak)
	}
}

func TestBuildTopGainersOrder(t *testing.T) {
	report := Build([]Series{
		series("SLOW", 10, 10.5), // +5%
		series("FAST", 10, 12),   // +20%
		series("MID", 10, 11),    // +10%
	}, day(20))

	if report.IsMock {
		t.Fatal("expected real report")
	}
	got := []string{}
	for _, g := range report.TopGainers {
		got = append(got, g.Symbol)
	}
	want := []string{"FAST", "MID", "SLOW"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topGainers order = %v, want %v", got, want)
		}
	}
}

func TestBuildMomentumFilterAndTieBreak(t *testing.T) {
	report := Build([]Series{
		series("LONGRUN", 10, 11, 12, 13),  // streak 3, above avg
		series("TIE_A", 10, 11, 12),        // streak 2, +20%
		series("TIE_B", 10, 10.5, 11),      // streak 2, +10%
		series("ONEDAY", 10, 9, 12),        // streak 1, 不入围
		series("FALLING", 12, 11, 10),      // streak 0, 不入围
	}, day(20))

	got := []string{}
	for _, m := range report.MomentumStocks {
		got = append(got, m.Symbol)
	}
	want := []string{"LONGRUN", "TIE_A", "TIE_B"}
	if len(got) != len(want) {
		t.Fatalf("momentum = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("momentum order = %v, want %v", got, want)
		}
	}
}

func TestBuildTopFiveTruncation(t *testing.T) {
	var all []Series
	for i := 0; i < 7; i++ {
		all = append(all, series(string(rune('A'+i)), 10, 11+float64(i)))
	}

	report := Build(all, day(20))
	if len(report.TopGainers) != 5 {
		t.Errorf("topGainers length = %d, want 5", len(report.TopGainers))
	}
}

func TestBuildMockFallback(t *testing.T) {
	// 没有任何股票达到2个历史点时返回演示数据
	report := Build([]Series{series("NEW", 10)}, day(20))

	if !report.IsMock {
		t.Fatal("expected mock report")
	}
	if len(report.TopGainers) == 0 || len(report.MomentumStocks) == 0 {
		t.Error("mock report must not be empty")
	}
}
