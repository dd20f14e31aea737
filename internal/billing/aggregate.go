package billing

import (
	"encoding/json"
	"strconv"

	"github.com/nexonoperations/tutorbill/internal/domain/session"
	"github.com/nexonoperations/tutorbill/internal/types"
	"github.com/shopspring/decimal"
)

// RateCard holds the two flat hourly rates. It is injected per computation so
// rates can change per tenant or per period without a redeploy.
type RateCard struct {
	Individual decimal.Decimal
	Group      decimal.Decimal
}

// Rate returns the hourly rate for a billing mode.
func (r RateCard) Rate(mode types.SessionMode) decimal.Decimal {
	if mode == types.SessionModeIndividual {
		return r.Individual
	}
	return r.Group
}

// Line is one billable session with its resolved hours, rate and amount.
type Line struct {
	Session *session.Session
	Hours   decimal.Decimal
	Rate    decimal.Decimal
	Amount  decimal.Decimal
}

// InvoiceComputation is the derived billing result for one student. It is
// created fresh per invoice request and never mutated after construction.
type InvoiceComputation struct {
	Lines      []Line
	TotalHours decimal.Decimal
	TotalCost  decimal.Decimal
}

// ValidSessions returns the billable session records in their original order.
func (c *InvoiceComputation) ValidSessions() []*session.Session {
	sessions := make([]*session.Session, len(c.Lines))
	for i, line := range c.Lines {
		sessions[i] = line.Session
	}
	return sessions
}

// Aggregate computes the billable subset and totals for a list of session
// records. Records whose hours field is missing, zero, negative or
// non-numeric are excluded entirely rather than counted as zero, and the
// relative order of the input is preserved. Aggregate never fails: an empty
// or fully-invalid input yields zero totals and no lines.
func Aggregate(sessions []*session.Session, rates RateCard) *InvoiceComputation {
	comp := &InvoiceComputation{
		TotalHours: decimal.Zero,
		TotalCost:  decimal.Zero,
	}

	for _, s := range sessions {
		hours, ok := parseHours(s.Hours)
		if !ok {
			continue
		}

		rate := rates.Rate(s.BillingMode())
		amount := hours.Mul(rate)

		comp.Lines = append(comp.Lines, Line{
			Session: s,
			Hours:   hours,
			Rate:    rate,
			Amount:  amount,
		})
		comp.TotalHours = comp.TotalHours.Add(hours)
		comp.TotalCost = comp.TotalCost.Add(amount)
	}

	return comp
}

// parseHours interprets the loosely typed hours field from the document
// store. Only a present, positive numeric value makes a session billable.
func parseHours(v any) (decimal.Decimal, bool) {
	var f float64

	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return decimal.Zero, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return decimal.Zero, false
		}
		f = parsed
	default:
		return decimal.Zero, false
	}

	if f <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
