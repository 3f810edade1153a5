// Package risk holds the position-size calculator: pure arithmetic over a
// proposed trade, nothing persisted.
package risk

import (
	"errors"
	"math"

	"tradejournal/internal/config"
)

type SizeRequest struct {
	Balance    float64 `json:"balance"`
	RiskPct    float64 `json:"risk_pct"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit,omitempty"`
}

type SizeResult struct {
	RiskAmount   float64 `json:"risk_amount"`
	Units        float64 `json:"units"`
	StopDistance float64 `json:"stop_distance"`
	RewardRisk   float64 `json:"reward_risk,omitempty"`
}

type Calculator struct {
	Config config.RiskConfig
}

var (
	ErrBalanceNotPositive = errors.New("balance must be positive")
	ErrRiskOutOfRange     = errors.New("risk percent out of range")
	ErrStopAtEntry        = errors.New("stop loss equals entry price")
)

// Size computes how many units keep the loss at the stop equal to the
// requested fraction of the balance. A zero risk percent falls back to the
// configured default.
func (c Calculator) Size(req SizeRequest) (SizeResult, error) {
	if req.Balance <= 0 {
		return SizeResult{}, ErrBalanceNotPositive
	}
	riskPct := req.RiskPct
	if riskPct == 0 {
		riskPct = c.Config.DefaultRiskPct
	}
	maxPct := c.Config.MaxRiskPct
	if maxPct <= 0 {
		maxPct = 100
	}
	if riskPct <= 0 || riskPct > maxPct {
		return SizeResult{}, ErrRiskOutOfRange
	}

	distance := math.Abs(req.EntryPrice - req.StopLoss)
	if distance == 0 {
		return SizeResult{}, ErrStopAtEntry
	}

	riskAmount := req.Balance * riskPct / 100
	out := SizeResult{
		RiskAmount:   riskAmount,
		Units:        riskAmount / distance,
		StopDistance: distance,
	}
	if req.TakeProfit != 0 {
		out.RewardRisk = math.Abs(req.TakeProfit-req.EntryPrice) / distance
	}
	return out, nil
}
