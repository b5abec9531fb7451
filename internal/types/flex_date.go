package types

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006"}

// FlexDate is a calendar date that can be unmarshaled from RFC 3339 or plain date strings.
// An empty string unmarshals to the zero FlexDate, which clears the column.
type FlexDate datatypes.Date

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexDate) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexDate: expected string: %w", err)
	}
	if s == "" {
		*f = FlexDate{}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*f = FlexDate(t)
			return nil
		}
	}

	return fmt.Errorf("FlexDate: unrecognized date %q", s)
}

// Date converts FlexDate to the column type, nil for the zero FlexDate
func (f FlexDate) Date() *datatypes.Date {
	if time.Time(f).IsZero() {
		return nil
	}
	d := datatypes.Date(f)
	return &d
}
