package models

// Snapshot is the full logical state of a journal: the unit of remote
// sync and of JSON export/import. The remote row holds exactly this shape,
// keyed by the sync identifier, last writer wins.
type Snapshot struct {
	Trades      []Trade      `json:"trades"`
	Accounts    []Account    `json:"accounts"`
	Withdrawals []Withdrawal `json:"withdrawals"`
}
