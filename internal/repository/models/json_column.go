package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONColumn stores V as a JSON text column.
type JSONColumn[T any] struct {
	V T
}

// Value implements the driver.Valuer interface
func (c JSONColumn[T]) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(c.V)
	if err != nil {
		return nil, err
	}
	if string(jsonData) == "null" {
		return nil, nil
	}
	// string instead of []byte so the value lands in TEXT columns as text
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (c *JSONColumn[T]) Scan(value interface{}) error {
	var zero T
	if value == nil {
		c.V = zero
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("JSONColumn Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		c.V = zero
		return nil
	}

	var decoded T
	if err := json.Unmarshal(bytesToParse, &decoded); err != nil {
		return fmt.Errorf("JSONColumn Scan: %w", err)
	}
	c.V = decoded
	return nil
}
