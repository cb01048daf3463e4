package invoicing

import (
	"time"
)

const (
	// remoteDateLayout is the ISO-8601-with-offset dialect the accounting
	// service speaks, e.g. "2027-02-22T00:00:00.000+01:00".
	remoteDateLayout = "2006-01-02T15:04:05.000-07:00"

	// localDateLayout is the canonical timestamp format used for persisted
	// audit fields, e.g. "2027-02-22 00:00:00".
	localDateLayout = "2006-01-02 15:04:05"
)

// DateConverter translates between the remote service's date dialect and
// the local canonical representation. All format knowledge lives here so a
// format drift on either side is a one-place change.
type DateConverter interface {
	// ToRemoteFormat renders a timestamp in the remote wire dialect
	ToRemoteFormat(t time.Time) string

	// FromRemoteFormat parses a remote timestamp into local time
	FromRemoteFormat(s string) (time.Time, error)
}

// ISODateConverter is the default DateConverter implementation
type ISODateConverter struct{}

// NewISODateConverter creates a new ISODateConverter
func NewISODateConverter() *ISODateConverter {
	return &ISODateConverter{}
}

// ToRemoteFormat renders a timestamp in the remote wire dialect
func (c *ISODateConverter) ToRemoteFormat(t time.Time) string {
	return t.Format(remoteDateLayout)
}

// FromRemoteFormat parses a remote timestamp. The remote occasionally sends
// offsets without the millisecond block, so a plain RFC 3339 parse is the
// fallback.
func (c *ISODateConverter) FromRemoteFormat(s string) (time.Time, error) {
	if t, err := time.Parse(remoteDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatLocal renders a timestamp in the local canonical format
func FormatLocal(t time.Time) string {
	return t.Format(localDateLayout)
}
