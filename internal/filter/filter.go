// Package filter turns an optional report filter into a parameterized
// predicate for the report store. It never executes queries itself.
package filter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// KilometersToDegrees converts a radius in kilometers to degrees of arc on
// SRID 4326 geometry. It is a fixed linear factor, not a geodesic distance,
// and it shrinks east-west coverage at high latitudes.
//
// TODO: one kilometer is about 0.009 degrees, so this factor covers roughly a
// tenth of the requested radius. Move to ST_DWithin on geography in meters
// once the map client's default radius is adjusted.
const KilometersToDegrees = 0.0009090

// Spec is a partially populated filter. Nil or empty fields are not applied.
type Spec struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}

type Kind int

const (
	KindCategory Kind = iota + 1
	KindStartDate
	KindEndDate
	KindWithinRadius
)

func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindStartDate:
		return "startDate"
	case KindEndDate:
		return "endDate"
	case KindWithinRadius:
		return "withinRadius"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Condition is one SQL boolean expression. Expr uses ? for each bound value,
// in the order of Args.
type Condition struct {
	Kind Kind
	Expr string
	Args []any
}

// Predicate is the AND of its conditions. The zero value matches everything.
type Predicate struct {
	Conditions []Condition
}

// Empty reports whether the predicate restricts nothing.
func (p Predicate) Empty() bool {
	return len(p.Conditions) == 0
}

// Has reports whether a condition of the given kind is present.
func (p Predicate) Has(k Kind) bool {
	for _, c := range p.Conditions {
		if c.Kind == k {
			return true
		}
	}
	return false
}

// Where renders "WHERE a AND b" with $n placeholders numbered from offset+1,
// together with the values to bind. An empty predicate renders "".
func (p Predicate) Where(offset int) (string, []any) {
	if p.Empty() {
		return "", nil
	}

	var (
		sb   strings.Builder
		args []any
		n    = offset
	)
	sb.WriteString("WHERE ")
	for i, c := range p.Conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for j := 0; j < len(c.Expr); j++ {
			if c.Expr[j] != '?' {
				sb.WriteByte(c.Expr[j])
				continue
			}
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		}
		args = append(args, c.Args...)
	}
	return sb.String(), args
}

type builder struct {
	conds []Condition
}

func (b *builder) add(kind Kind, expr string, args ...any) {
	b.conds = append(b.conds, Condition{Kind: kind, Expr: expr, Args: args})
}

// Compile builds the predicate for s. Conditions are emitted in a fixed order:
// category, startDate, endDate, then the radius search. The radius search
// needs latitude, longitude and a positive radius; with any of them missing it
// is left out.
func Compile(s Spec) Predicate {
	var b builder

	if c := strings.TrimSpace(s.Category); c != "" {
		b.add(KindCategory, "category = ?", c)
	}
	if s.StartDate != nil {
		b.add(KindStartDate, "created_at >= ?", *s.StartDate)
	}
	if s.EndDate != nil {
		b.add(KindEndDate, "created_at <= ?", *s.EndDate)
	}
	if lon, lat, deg, ok := radius(s); ok {
		b.add(KindWithinRadius,
			"ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326), ?)",
			lon, lat, deg)
	}

	return Predicate{Conditions: b.conds}
}

func radius(s Spec) (lon, lat, deg float64, ok bool) {
	if s.Latitude == nil || s.Longitude == nil || s.RadiusKm == nil {
		return 0, 0, 0, false
	}
	lon, lat, km := *s.Longitude, *s.Latitude, *s.RadiusKm
	if !finite(lon) || !finite(lat) || !finite(km) || km <= 0 {
		return 0, 0, 0, false
	}
	return lon, lat, km * KilometersToDegrees, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
