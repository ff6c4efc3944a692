package bitbucket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout the layout every timestamp is rendered with.
const DisplayLayout = "2006-01-02 15:04:05"

// Fractional seconds are accepted by time.Parse without being named in the layout.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp a source timestamp keeping the offset it was written with.
type Timestamp struct {
	time.Time
}

// ParseTimestamp accepts the representations found in tracker exports.
func ParseTimestamp(s string) (Timestamp, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Timestamp{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Timestamp{t}, nil
		}
	}

	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// String renders the timestamp in DisplayLayout.
func (t Timestamp) String() string {
	return t.Format(DisplayLayout)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*t = v

	return nil
}
