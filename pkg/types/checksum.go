package types

import (
	"encoding/json"
	"fmt"
)

// ChecksumSize is the length of an entity checksum in letters.
const ChecksumSize = 5

const (
	p3         = 26 * 26 * 26 // 3 base-26 digits
	p6         = p3 * p3      // 6 base-26 digits
	multiplier = 1_000_003
)

// Checksum is the 5-letter guard appended to rendered entity IDs, as in
// "0.0.123-vfmkw". It binds the ID string to a specific ledger so an ID
// pasted across networks fails validation instead of resolving to the
// wrong entity.
type Checksum [ChecksumSize]byte

// GenerateChecksum computes the checksum of entity shard.realm.num on the
// given ledger. It hashes the decimal ID string digit by digit ('.' counts
// as digit 10), mixes in a hash of the ledger ID padded with six zero
// bytes, and emits the result as five base-26 letters.
func GenerateChecksum(ledger LedgerID, shard, realm, num uint64) Checksum {
	addr := fmt.Sprintf("%d.%d.%d", shard, realm, num)

	var s, sumEven, sumOdd int64
	for i := 0; i < len(addr); i++ {
		d := int64(10)
		if addr[i] != '.' {
			d = int64(addr[i] - '0')
		}
		s = (31*s + d) % p3
		if i%2 == 0 {
			sumEven = (sumEven + d) % 11
		} else {
			sumOdd = (sumOdd + d) % 11
		}
	}

	var sh int64
	for _, b := range append(ledger.Bytes(), make([]byte, 6)...) {
		sh = (31*sh + int64(b)) % p6
	}

	c := (((int64(len(addr)%5)*11+sumEven)*11+sumOdd)*p3 + s + sh) % p6
	c = c * multiplier % p6

	var cs Checksum
	for i := ChecksumSize - 1; i >= 0; i-- {
		cs[i] = byte('a' + c%26)
		c /= 26
	}
	return cs
}

// Verify reports whether the checksum matches the given entity on the
// given ledger.
func (c Checksum) Verify(ledger LedgerID, shard, realm, num uint64) bool {
	return c == GenerateChecksum(ledger, shard, realm, num)
}

// ParseChecksum parses a checksum string of exactly five lowercase ASCII
// letters.
func ParseChecksum(s string) (Checksum, error) {
	if len(s) != ChecksumSize {
		return Checksum{}, fmt.Errorf("checksum must be %d letters, got %d", ChecksumSize, len(s))
	}
	var c Checksum
	for i := 0; i < ChecksumSize; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return Checksum{}, fmt.Errorf("checksum must be lowercase letters, got %q", s)
		}
		c[i] = s[i]
	}
	return c, nil
}

// String returns the checksum letters.
func (c Checksum) String() string {
	return string(c[:])
}

// MarshalJSON encodes the checksum as its 5-letter string.
func (c Checksum) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a 5-letter string into a checksum.
func (c *Checksum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChecksum(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
