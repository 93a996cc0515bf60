package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Attributes is the JSONB custom-field bag carried by every entity.
//
// Decoding keeps numbers as json.Number, so values read back from the
// database can be turned into decimals without a float64 round trip.
type Attributes map[string]any

// Scan implements sql.Scanner.
func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("attributes: cannot scan %T", src)
	}
	if len(raw) == 0 {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	*a = m
	return nil
}

// Value implements driver.Valuer.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Has reports whether key is present, even when its value is nil.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// GetString returns the value at key, or "" when absent or not a string.
func (a Attributes) GetString(key string) string {
	s, _ := a[key].(string)
	return s
}

// GetBool returns the value at key, or false when absent or not a bool.
func (a Attributes) GetBool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// GetInt returns the value at key as int64. Accepts json.Number and the
// numeric types a caller may have stored directly.
func (a Attributes) GetInt(key string) int64 {
	switch v := a[key].(type) {
	case json.Number:
		n, _ := v.Int64()
		return n
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// GetDecimal returns the value at key with full precision preserved.
// Use this for monetary values rather than GetInt or raw float access.
func (a Attributes) GetDecimal(key string) decimal.Decimal {
	switch v := a[key].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}

// Clone returns a shallow copy; nested values are shared.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
