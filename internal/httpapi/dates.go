package httpapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// jsonDate accepts both RFC 3339 timestamps and bare YYYY-MM-DD dates, which
// is what API clients actually send for fields like startDate and
// dateOfBirth.
type jsonDate struct {
	time.Time
}

func (d *jsonDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}
