package auth

import "time"

// IsRevoked reports whether a credential issued at issuedAt is invalidated by
// the identity's revocation timestamp. Tokens issued at or before the
// timestamp are rejected even when still inside their own TTL; this is what
// makes logout, password change, and role changes take effect immediately.
func IsRevoked(issuedAt time.Time, invalidatedAt *time.Time) bool {
	if invalidatedAt == nil {
		return false
	}
	return !issuedAt.After(*invalidatedAt)
}
