// Package timex provides a JSON-friendly wrapper around time.Duration so
// config files can write intervals either as "3s"-style strings or as raw
// nanosecond numbers.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration unmarshals from a JSON string ("30s", "1m30s") or a JSON number
// (nanoseconds). It marshals back to the string form.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
}
