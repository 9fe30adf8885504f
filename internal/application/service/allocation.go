package service

import (
	"math"

	"github.com/google/uuid"
	"github.com/sowani/salon-api/internal/domain/enum"
)

// AllocationLine is one cart line to split tender across.
type AllocationLine struct {
	ID     uuid.UUID
	Amount int64
}

// Split is one line's share of the tendered cash and card amounts.
type Split struct {
	Cash int64 `json:"cash"`
	Card int64 `json:"card"`
}

// Allocate divides a single tendered cash/card amount across cart lines.
//
// For cash or card tender each line simply pays its own amount with that
// instrument. For mixed tender each line's cash share is its proportional
// part of the cash input, rounded independently; the card share is the
// line's amount minus its cash share. Because every line rounds on its own,
// the summed cash shares can drift from cashInput by up to len(lines)-1.
// That drift is accepted, not corrected.
func Allocate(lines []AllocationLine, cashInput, cardInput int64, method enum.PaymentMethod) map[uuid.UUID]Split {
	splits := make(map[uuid.UUID]Split, len(lines))

	switch method {
	case enum.MethodCard:
		for _, line := range lines {
			splits[line.ID] = Split{Card: line.Amount}
		}
	case enum.MethodMixed:
		var sum int64
		for _, line := range lines {
			sum += line.Amount
		}
		for _, line := range lines {
			if sum == 0 {
				splits[line.ID] = Split{}
				continue
			}
			cash := int64(math.Round(float64(line.Amount) / float64(sum) * float64(cashInput)))
			splits[line.ID] = Split{
				Cash: cash,
				Card: line.Amount - cash,
			}
		}
	default:
		for _, line := range lines {
			splits[line.ID] = Split{Cash: line.Amount}
		}
	}
	return splits
}
