package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime accepts an RFC3339 timestamp, a timestamp without offset, or a bare
// date. Values without an offset are taken as UTC.
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid datetime %q: expected RFC3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD", raw)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// Ptr returns the wrapped time, or nil for a nil receiver.
func (d *DateTime) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
