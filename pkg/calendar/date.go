// Package calendar turns the date strings clients send into one canonical
// calendar date. It has no I/O; "today" is always supplied by the caller.
package calendar

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

const Layout = "2006-01-02"

// Date is a calendar date without time or zone. It stores and serializes as YYYY-MM-DD.
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

func (d Date) String() string {
	return d.Date.String()
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

// Value stores the date as text so that Postgres DATE and SQLite columns accept it alike.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Date = civil.DateOf(v)
		return nil
	case string:
		return d.parseStored(v)
	case []byte:
		return d.parseStored(string(v))
	case nil:
		d.Date = civil.Date{}
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func (d *Date) parseStored(s string) error {
	if len(s) > len(Layout) {
		s = s[:len(Layout)]
	}
	parsed, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("calendar: scan date %q: %w", s, err)
	}
	d.Date = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := civil.ParseDate(string(data))
	if err != nil {
		return err
	}
	d.Date = parsed
	return nil
}
