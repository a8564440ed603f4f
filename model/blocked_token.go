// file: model/blocked_token.go

package model

import "time"

// BlockedToken is a revocation ledger entry. A token whose jti appears in
// the ledger is rejected regardless of its expiry. Entries are only ever
// inserted; natural token expiry makes them irrelevant over time.
type BlockedToken struct {
	ID        int       `json:"id"`
	JTI       string    `json:"jti"`
	CreatedAt time.Time `json:"created_at"`
}
