// Package common defines shared sentinel errors used across syncbox
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transfer errors (remote store put/get/list failures).
	ErrTransfer = errors.New("transfer error")

	// Ledger errors.
	ErrLedgerCorrupt = errors.New("ledger file corrupt")

	// Configuration errors.
	ErrConfigInvalid = errors.New("invalid configuration")
)
