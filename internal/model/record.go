package model

import "time"

// PasswordRecord is a generated password persisted verbatim by a store.
type PasswordRecord struct {
	ID        int64     `json:"id"`
	BatchID   string    `json:"batchId"`
	Plaintext string    `json:"plaintext"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordListResponse represents the stored records listing.
type RecordListResponse struct {
	Records []PasswordRecord `json:"records"`
}
