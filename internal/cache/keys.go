package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix namespaces every key this service writes.
const Prefix = "settle:"

// PlanKey is the key of one algorithm's plan for a group. params are the
// request inputs that change the plan (currencies, friendship digest).
func PlanKey(groupID, algorithm string, params ...string) string {
	return Prefix + "plan:" + groupID + ":" + algorithm + ":" + digest(params)
}

// CompareKey is the key of an algorithm comparison for a group.
func CompareKey(groupID string, params ...string) string {
	return Prefix + "compare:" + groupID + ":" + digest(params)
}

// GroupPrefixes returns the prefixes holding everything cached for a group.
func GroupPrefixes(groupID string) []string {
	return []string{
		Prefix + "plan:" + groupID + ":",
		Prefix + "compare:" + groupID + ":",
	}
}

func digest(params []string) string {
	sum := sha256.Sum256([]byte(strings.Join(params, "\x1f")))
	return hex.EncodeToString(sum[:8])
}
