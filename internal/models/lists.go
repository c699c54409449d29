package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// DayList is an ordered set of three-letter weekday tokens ("Mon".."Sun"),
// persisted as comma-joined text. Membership is exact-token comparison, never
// substring matching.
type DayList []string

// SlotList is an ordered set of time-slot labels (e.g. "09:00"), persisted as
// comma-joined text. Labels are opaque strings, compared exactly and never
// parsed as times. Order is the doctor's configured order.
type SlotList []string

func (l DayList) Contains(day string) bool   { return containsToken(l, day) }
func (l SlotList) Contains(slot string) bool { return containsToken(l, slot) }

func (l DayList) String() string  { return joinTokens(l) }
func (l SlotList) String() string { return joinTokens(l) }

func (l DayList) Value() (driver.Value, error)  { return joinTokens(l), nil }
func (l SlotList) Value() (driver.Value, error) { return joinTokens(l), nil }

func (l *DayList) Scan(src interface{}) error {
	tokens, err := scanTokens(src)
	if err != nil {
		return err
	}
	*l = DayList(tokens)
	return nil
}

func (l *SlotList) Scan(src interface{}) error {
	tokens, err := scanTokens(src)
	if err != nil {
		return err
	}
	*l = SlotList(tokens)
	return nil
}

func (DayList) GormDataType() string  { return "varchar(200)" }
func (SlotList) GormDataType() string { return "varchar(500)" }

// ParseDayList splits a comma-joined day string, trimming whitespace and
// dropping empty tokens.
func ParseDayList(s string) DayList { return DayList(splitTokens(s)) }

// ParseSlotList splits a comma-joined slot string, trimming whitespace and
// dropping empty tokens.
func ParseSlotList(s string) SlotList { return SlotList(splitTokens(s)) }

func splitTokens(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, ",")
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func scanTokens(src interface{}) ([]string, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case string:
		return splitTokens(v), nil
	case []byte:
		return splitTokens(string(v)), nil
	default:
		return nil, fmt.Errorf("unsupported token list type %T", src)
	}
}
