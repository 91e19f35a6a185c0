package audit

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// TimestampPrecision is the resolution audit timestamps are stored at. Every
// backend keeps at least microseconds, so entries are truncated to it before
// sealing and a digest survives a round trip through storage.
const TimestampPrecision = time.Microsecond

// Sealer stamps entries with a keyed BLAKE2b-256 digest so tampering with a
// stored entry is detectable.
type Sealer struct {
	key []byte
}

// NewSealer returns a Sealer for key. BLAKE2b accepts keys up to 64 bytes.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("seal key is required")
	}
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("seal key must be at most %d bytes", blake2b.Size)
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// sealedFields is the canonical form hashed by the sealer.
type sealedFields struct {
	ID            string            `json:"id"`
	PrincipalID   string            `json:"principal_id"`
	Action        Action            `json:"action"`
	ResourceKind  ResourceKind      `json:"resource_kind"`
	ResourceID    string            `json:"resource_id,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
	OriginAddress string            `json:"origin_address"`
	OriginAgent   string            `json:"origin_agent"`
	Timestamp     string            `json:"timestamp"`
}

func (s *Sealer) digest(e Entry) (string, error) {
	canonical, err := json.Marshal(sealedFields{
		ID:            e.ID.String(),
		PrincipalID:   e.PrincipalID.String(),
		Action:        e.Action,
		ResourceKind:  e.ResourceKind,
		ResourceID:    e.ResourceID,
		Details:       e.Details,
		OriginAddress: e.OriginAddress,
		OriginAgent:   e.OriginAgent,
		Timestamp:     e.Timestamp.UTC().Truncate(TimestampPrecision).Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", fmt.Errorf("marshal audit entry: %w", err)
	}
	h, err := blake2b.New256(s.key)
	if err != nil {
		return "", fmt.Errorf("init blake2b: %w", err)
	}
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Seal returns a copy of e with its Digest set.
func (s *Sealer) Seal(e Entry) (Entry, error) {
	d, err := s.digest(e)
	if err != nil {
		return Entry{}, err
	}
	e.Digest = d
	return e, nil
}

// Verify reports whether e carries a digest matching its content.
func (s *Sealer) Verify(e Entry) bool {
	if e.Digest == "" {
		return false
	}
	d, err := s.digest(e)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(d), []byte(e.Digest)) == 1
}
