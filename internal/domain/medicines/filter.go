package medicines

import (
	"strconv"
	"strings"
)

// Bucket parte el día en franjas horarias para el filtro del cronograma.
type Bucket string

const (
	BucketAny       Bucket = ""
	BucketMorning   Bucket = "morning"   // [6, 12)
	BucketAfternoon Bucket = "afternoon" // [12, 17)
	BucketEvening   Bucket = "evening"   // [17, 21)
	BucketNight     Bucket = "night"     // [21, 24) U [0, 6)
)

// ParseBucket acepta "any"/vacío/desconocido como BucketAny.
func ParseBucket(s string) Bucket {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketMorning:
		return BucketMorning
	case BucketAfternoon:
		return BucketAfternoon
	case BucketEvening:
		return BucketEvening
	case BucketNight:
		return BucketNight
	default:
		return BucketAny
	}
}

// Contains indica si la hora del día h cae en la franja.
func (b Bucket) Contains(h int) bool {
	switch b {
	case BucketMorning:
		return h >= 6 && h < 12
	case BucketAfternoon:
		return h >= 12 && h < 17
	case BucketEvening:
		return h >= 17 && h < 21
	case BucketNight:
		return h >= 21 || h < 6
	default:
		return true
	}
}

// InBucket indica si el "HH:MM" t cae en la franja.
func InBucket(t string, b Bucket) bool {
	if b == BucketAny {
		return true
	}
	h, err := strconv.Atoi(strings.SplitN(t, ":", 2)[0])
	if err != nil {
		return false
	}
	return b.Contains(h)
}

// Filter devuelve los medicamentos cuyo nombre contiene query
// (case-insensitive) Y con al menos una hora en la franja.
// No muta la colección de entrada; el caller re-expande sobre el resultado.
func Filter(items []Medicine, query string, b Bucket) []Medicine {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Medicine, 0, len(items))
	for _, m := range items {
		if query != "" && !strings.Contains(strings.ToLower(m.Name), query) {
			continue
		}
		if b != BucketAny && !anyTimeInBucket(m.Times, b) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func anyTimeInBucket(times []string, b Bucket) bool {
	for _, t := range times {
		if InBucket(t, b) {
			return true
		}
	}
	return false
}
