package models

// DailySpinCap is the fixed number of reward spins a user gets per calendar date
const DailySpinCap = 3

// DailySpins tracks spin usage for one user on one date (YYYY-MM-DD).
// A date with no row means no spins have been used; rows never carry over.
type DailySpins struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Date           string `json:"date"`
	SpinsUsed      int    `json:"spinsUsed"`
	SpinsRemaining int    `json:"spinsRemaining"`
}

// RemainingSpins computes spins remaining for a given used count, never negative
func RemainingSpins(used int) int {
	if used >= DailySpinCap {
		return 0
	}
	return DailySpinCap - used
}
