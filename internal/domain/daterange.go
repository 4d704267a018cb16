package domain

import "time"

const DateLayout = "2006-01-02"

// OverlapPolicy decides whether ranges that only touch at a boundary day
// collide.
type OverlapPolicy int

const (
	// OverlapInclusive treats [a1,a2] and [b1,b2] as colliding when
	// a1 <= b2 && a2 >= b1, so a same-day turnover is a collision.
	OverlapInclusive OverlapPolicy = iota
	// OverlapExclusive allows a check-out and a check-in on the same day.
	OverlapExclusive
)

type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange normalizes both ends to UTC midnight.
func NewDateRange(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: TruncateDay(checkIn), CheckOut: TruncateDay(checkOut)}
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return DateRange{}, Validationf("check_in must be YYYY-MM-DD")
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return DateRange{}, Validationf("check_out must be YYYY-MM-DD")
	}
	return NewDateRange(in, out), nil
}

func (r DateRange) Validate() error {
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r DateRange) Collides(other DateRange, policy OverlapPolicy) bool {
	if policy == OverlapExclusive {
		return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
	}
	return !r.CheckIn.After(other.CheckOut) && !r.CheckOut.Before(other.CheckIn)
}

func (r DateRange) Equal(other DateRange) bool {
	return r.CheckIn.Equal(other.CheckIn) && r.CheckOut.Equal(other.CheckOut)
}

func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
