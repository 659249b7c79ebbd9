package redis

import "fmt"

const (
	// KeyPrefixSlot is the prefix for slot record keys
	KeyPrefixSlot = "pilldeck:slot:"
	// KeyDispenseLog is the key of the capped dispense history list
	KeyDispenseLog = "pilldeck:logs"
	// KeyPrefixFired is the prefix for per-day fired-dose marker sets
	KeyPrefixFired = "pilldeck:fired:"
)

// SlotKey returns the Redis key for a slot record.
func SlotKey(slotNumber int) string {
	return fmt.Sprintf("%s%d", KeyPrefixSlot, slotNumber)
}

// FiredKey returns the Redis key of the fired-dose set for a calendar day
// (day formatted as "2006-01-02").
func FiredKey(day string) string {
	return KeyPrefixFired + day
}
