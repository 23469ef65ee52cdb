package timeutil

import "time"

// IST is the Indian Standard Time location (UTC+5:30). Invoices are issued
// and sequenced by IST calendar date.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseDate parses a YYYY-MM-DD date string in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// DateKey formats a time as the 8-digit key used in invoice numbers.
func DateKey(t time.Time) string {
	return t.In(IST).Format("20060102")
}

const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02/01/2006"
)
