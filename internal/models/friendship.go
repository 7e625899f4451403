package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FriendshipStrengths maps an unordered user pair to an affinity score in [0, 1].
// Keys are canonical "A_B" with A <= B; lookups also try the reverse order so
// tables built by hand in either order work. Absent pairs have strength 0.
type FriendshipStrengths map[string]decimal.Decimal

var maxStrength = decimal.NewFromInt(1)

// FriendshipKey returns the canonical key for the pair.
func FriendshipKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// Strength returns the strength between a and b, zero if unknown.
func (f FriendshipStrengths) Strength(a, b string) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	if s, ok := f[FriendshipKey(a, b)]; ok {
		return s
	}
	if s, ok := f[a+"_"+b]; ok {
		return s
	}
	if s, ok := f[b+"_"+a]; ok {
		return s
	}
	return decimal.Zero
}

// Set stores the strength for the pair under the canonical key.
func (f FriendshipStrengths) Set(a, b string, strength decimal.Decimal) {
	f[FriendshipKey(a, b)] = strength
}

// Validate checks every key and strength.
func (f FriendshipStrengths) Validate() error {
	for _, key := range f.Keys() {
		if strings.Count(key, "_") < 1 || strings.HasPrefix(key, "_") || strings.HasSuffix(key, "_") {
			return &InvalidFriendshipError{Key: key, Reason: "want USER_USER"}
		}
		s := f[key]
		if s.IsNegative() || s.GreaterThan(maxStrength) {
			return &InvalidFriendshipError{Key: key, Reason: "strength " + s.String() + " outside [0, 1]"}
		}
	}
	return nil
}

// Keys returns the keys sorted.
func (f FriendshipStrengths) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
