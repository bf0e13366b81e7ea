package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Frequency defines how often a dossier is generated
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the supported frequencies
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Dossier is a recurring digest configuration: sources, schedule, style and recipient
type Dossier struct {
	ID           int64
	Name         string
	Recipient    string
	Feeds        []string
	MaxItems     int
	Frequency    Frequency
	DeliveryTime string // time of day, e.g. "08:00"
	Timezone     string // IANA zone name
	Style        string
	Language     string
	Instructions string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks dossier invariants
func (d *Dossier) Validate() error {
	var errs []error
	if !d.Frequency.Valid() {
		errs = append(errs, fmt.Errorf("invalid frequency %q", d.Frequency))
	}
	if d.MaxItems < 1 {
		errs = append(errs, fmt.Errorf("max items must be at least 1, got %d", d.MaxItems))
	}
	if len(d.Feeds) == 0 {
		errs = append(errs, errors.New("at least one feed is required"))
	}
	if _, err := mail.ParseAddress(d.Recipient); err != nil {
		errs = append(errs, fmt.Errorf("invalid recipient %q: %w", d.Recipient, err))
	}
	if _, _, err := ParseDeliveryTime(d.DeliveryTime); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// deliveryTimeLayouts lists accepted time-of-day encodings in priority order.
// full timestamps contribute only their clock part.
var deliveryTimeLayouts = []string{
	"15:04",
	"15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDeliveryTime extracts hour and minute from a delivery time string
func ParseDeliveryTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range deliveryTimeLayouts {
		t, perr := time.Parse(layout, s)
		if perr != nil {
			continue
		}
		return t.Hour(), t.Minute(), nil
	}
	return 0, 0, fmt.Errorf("unrecognized delivery time %q", s)
}

// NormalizeDeliveryTime converts any accepted encoding to the canonical "HH:MM" form
func NormalizeDeliveryTime(s string) (string, error) {
	h, m, err := ParseDeliveryTime(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// PeriodKey returns the scheduling period t falls into for the given frequency.
// t is expected to be in the dossier's zone already.
func PeriodKey(f Frequency, t time.Time) string {
	switch f {
	case FrequencyWeekly:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case FrequencyMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
