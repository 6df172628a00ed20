package collab

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ArchiveReceipt is proof that a published variant was archived.
type ArchiveReceipt struct {
	Ref        string    `json:"ref"`
	Checksum   string    `json:"checksum"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Archiver stores a copy of published content for compliance review.
type Archiver interface {
	Archive(variantKey, text string) ArchiveReceipt
}

// ChecksumArchiver simulates archival by recording a sha256 checksum and
// minting a reference; nothing is persisted.
type ChecksumArchiver struct{}

// Archive computes the content checksum and returns a receipt.
func (ChecksumArchiver) Archive(variantKey, text string) ArchiveReceipt {
	sum := sha256.Sum256([]byte(text))
	return ArchiveReceipt{
		Ref:        fmt.Sprintf("archive://%s", variantKey),
		Checksum:   hex.EncodeToString(sum[:]),
		ArchivedAt: time.Now().UTC(),
	}
}
