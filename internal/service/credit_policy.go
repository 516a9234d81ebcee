package service

import "math"

// CreditBonusMultiplier is applied to every purchased credit quantity.
const CreditBonusMultiplier = 2

// BonusCredits returns the credits granted for a purchase of n credits.
// Fractional quantities are floored before the multiplier is applied.
func BonusCredits(n float64) int64 {
	return int64(math.Floor(n)) * CreditBonusMultiplier
}

// PurchasedCredits inverts BonusCredits for display purposes.
func PurchasedCredits(bonus int64) int64 {
	return bonus / CreditBonusMultiplier
}
