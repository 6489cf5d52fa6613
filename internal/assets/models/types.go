package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 以 JSONB 存储的字符串数组
type StringArray []string

// Scan implements sql.Scanner interface
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Contractor 领取记录
type Contractor struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

// Contractors 以 JSONB 存储的领取记录列表
type Contractors []Contractor

// Scan implements sql.Scanner interface
func (c *Contractors) Scan(value interface{}) error {
	if value == nil {
		*c = Contractors{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, c)
}

// Value implements driver.Valuer interface
func (c Contractors) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb value type %T", value)
	}
}
