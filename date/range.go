package date

// Range represents an inclusive range of dates, such as a statement period.
type Range struct{ From, To Date }

// NewRange returns the inclusive range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true when the date is included in the range (boundaries included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsZero reports whether both boundaries are the zero date.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// IsValid reports whether the range has both boundaries set in order.
func (r Range) IsValid() bool { return !r.From.IsZero() && !r.To.IsZero() && !r.From.After(r.To) }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
