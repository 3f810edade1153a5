// Package importer parses broker statement exports into trades.
//
// The accepted format is the fixed 16-column MT4 statement line:
//
//	ticket, open time, open price, close time, close price, profit, lots,
//	commission, swap, symbol, type, stop loss, take profit, pips, reason,
//	volume
//
// It is a positional splitter, not a general CSV reader: no quoting, no
// escaping. Rows are independent; a malformed row is skipped and counted,
// never aborting the batch. Only an unreadable input fails the whole call.
package importer

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/internal/models"
)

// requiredColumns is the minimum column count for a parseable row; columns
// past it (stop loss onward) are optional extras.
const requiredColumns = 10

type Options struct {
	AccountID string
	MaxRows   int
}

type Result struct {
	Trades   []models.Trade `json:"-"`
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
}

// Parse reads statement lines and converts each parseable row into a
// CLOSED trade. The broker-reported profit is stored verbatim as the
// trade's pnl; commission and swap are folded into fees.
func Parse(r io.Reader, opts Options) (Result, error) {
	var out Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if opts.MaxRows > 0 && out.Imported >= opts.MaxRows {
			out.Skipped++
			continue
		}
		trade, ok := parseRow(line, opts.AccountID)
		if !ok {
			out.Skipped++
			continue
		}
		out.Trades = append(out.Trades, trade)
		out.Imported++
	}
	if err := scanner.Err(); err != nil {
		return Result{}, err
	}
	return out, nil
}

func parseRow(line, accountID string) (models.Trade, bool) {
	cols := strings.Split(line, ",")
	if len(cols) < requiredColumns {
		return models.Trade{}, false
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	ticket := cols[0]
	if ticket == "" {
		return models.Trade{}, false
	}

	openTime, ok := parseStatementTime(cols[1])
	if !ok {
		return models.Trade{}, false
	}
	closeTime, ok := parseStatementTime(cols[3])
	if !ok {
		return models.Trade{}, false
	}

	openPrice, err := decimal.NewFromString(cols[2])
	if err != nil {
		return models.Trade{}, false
	}
	closePrice, err := decimal.NewFromString(cols[4])
	if err != nil {
		return models.Trade{}, false
	}
	profit, err := decimal.NewFromString(cols[5])
	if err != nil {
		return models.Trade{}, false
	}
	lots, err := decimal.NewFromString(cols[6])
	if err != nil {
		return models.Trade{}, false
	}

	symbol := cols[9]
	if symbol == "" {
		return models.Trade{}, false
	}

	fees := decimal.Zero
	if commission, err := decimal.NewFromString(cols[7]); err == nil {
		fees = fees.Add(commission)
	}
	if swap, err := decimal.NewFromString(cols[8]); err == nil {
		fees = fees.Add(swap)
	}

	direction := models.DirectionShort
	if len(cols) > 10 && strings.Contains(strings.ToLower(cols[10]), "buy") {
		direction = models.DirectionLong
	}

	trade := models.Trade{
		ID:         ticket,
		AccountID:  accountID,
		Symbol:     symbol,
		Direction:  direction,
		Status:     models.TradeStatusClosed,
		EntryDate:  openTime,
		ExitDate:   &closeTime,
		EntryPrice: openPrice,
		ExitPrice:  &closePrice,
		Size:       lots,
		PnL:        profit,
		Fees:       &fees,
	}

	if len(cols) > 11 {
		if sl, err := decimal.NewFromString(cols[11]); err == nil && !sl.IsZero() {
			trade.StopLoss = &sl
		}
	}
	if len(cols) > 12 {
		if tp, err := decimal.NewFromString(cols[12]); err == nil && !tp.IsZero() {
			trade.TakeProfit = &tp
		}
	}
	if len(cols) > 14 && cols[14] != "" {
		trade.Notes = cols[14]
	}

	return trade, true
}

// parseStatementTime converts the statement's "YYYY.MM.DD HH:MM:SS" stamp
// by literal substitution (dots to dashes, first space to T), the same
// character-level rewrite the journal has always used, then validates the
// result against the calendar.
func parseStatementTime(raw string) (time.Time, bool) {
	s := strings.Replace(strings.ReplaceAll(raw, ".", "-"), " ", "T", 1)
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
