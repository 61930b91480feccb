package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortHashLen is the number of hex characters kept by ShortHash: enough
// for log correlation, useless for reversal.
const shortHashLen = 12

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns a short, irreversible hash prefix of the input. Used to
// correlate client IPs in logs without storing raw PII.
func ShortHash(input string) string {
	return SHA256Hex(input)[:shortHashLen]
}

// SaltedHash hashes input with a salt. Used for abuse tracking keyed on IP
// without keeping the address itself.
func SaltedHash(input, salt string) string {
	return SHA256Hex(salt + input)
}
