package model

import "time"

// Payee is a deduplicated counterparty name. Payees are created lazily the
// first time a name is used on a transaction and removed again once no
// transaction references them.
type Payee struct {
	CreatedAt time.Time
	Name      string
	ID        int64
}
