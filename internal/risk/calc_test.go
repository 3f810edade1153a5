package risk

import (
	"testing"

	"tradejournal/internal/config"
)

func TestSize_Basic(t *testing.T) {
	c := Calculator{Config: config.RiskConfig{DefaultRiskPct: 1, MaxRiskPct: 10}}
	res, err := c.Size(SizeRequest{
		Balance:    10000,
		RiskPct:    2,
		EntryPrice: 1.1000,
		StopLoss:   1.0900,
		TakeProfit: 1.1200,
	})
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if res.RiskAmount != 200 {
		t.Fatalf("risk amount=%v want=200", res.RiskAmount)
	}
	// 200 / 0.01 = 20000 units.
	if res.Units < 19999 || res.Units > 20001 {
		t.Fatalf("units=%v want ~20000", res.Units)
	}
	if res.RewardRisk < 1.99 || res.RewardRisk > 2.01 {
		t.Fatalf("reward/risk=%v want ~2", res.RewardRisk)
	}
}

func TestSize_DefaultRiskPct(t *testing.T) {
	c := Calculator{Config: config.RiskConfig{DefaultRiskPct: 1, MaxRiskPct: 10}}
	res, err := c.Size(SizeRequest{Balance: 5000, EntryPrice: 100, StopLoss: 95})
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if res.RiskAmount != 50 {
		t.Fatalf("risk amount=%v want=50 (1%% default)", res.RiskAmount)
	}
}

func TestSize_Rejections(t *testing.T) {
	c := Calculator{Config: config.RiskConfig{DefaultRiskPct: 1, MaxRiskPct: 10}}
	cases := []struct {
		name string
		req  SizeRequest
		err  error
	}{
		{"zero balance", SizeRequest{Balance: 0, RiskPct: 1, EntryPrice: 10, StopLoss: 9}, ErrBalanceNotPositive},
		{"risk above cap", SizeRequest{Balance: 100, RiskPct: 50, EntryPrice: 10, StopLoss: 9}, ErrRiskOutOfRange},
		{"negative risk", SizeRequest{Balance: 100, RiskPct: -1, EntryPrice: 10, StopLoss: 9}, ErrRiskOutOfRange},
		{"stop at entry", SizeRequest{Balance: 100, RiskPct: 1, EntryPrice: 10, StopLoss: 10}, ErrStopAtEntry},
	}
	for _, tc := range cases {
		if _, err := c.Size(tc.req); err != tc.err {
			t.Fatalf("%s: err=%v want=%v", tc.name, err, tc.err)
		}
	}
}
