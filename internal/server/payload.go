package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/MyelinBots/knightrun-go/internal/db/repositories/user_info"
)

var errNotScalar = errors.New("expected a string or a number")

// flexString accepts "170-175" as well as 170. null leaves it empty.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errNotScalar
	}
	*f = flexString(n.String())
	return nil
}

type registerRequest struct {
	Username     string     `json:"username"`
	Password     string     `json:"password"`
	Birthday     string     `json:"birthday"`
	Height       flexString `json:"height"`
	Weight       flexString `json:"weight"`
	Intensity    string     `json:"intensity"`
	RegisterDate string     `json:"registerDate"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// statRequest keeps the raw values so a bad amount is reported as a validation
// error rather than an unreadable payload.
type statRequest struct {
	UserID json.RawMessage `json:"userId"`
	Amount json.RawMessage `json:"amount"`
}

// parseUserID accepts "000001" or 1. Numbers are zero padded.
func parseUserID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", apperr.Validation("invalid userId")
		}
		return strings.TrimSpace(s), nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || n < 0 {
		return "", apperr.Validation("invalid userId")
	}
	return user_info.FormatUserID(n), nil
}

// parseAmount accepts an integral JSON number or a string holding one, within the
// range of the INTEGER stat columns.
func parseAmount(raw json.RawMessage) (int64, error) {
	n, err := parseInteger(raw)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, apperr.Validation("amount is out of range")
	}
	return n, nil
}

func parseInteger(raw json.RawMessage) (int64, error) {
	invalid := apperr.Validation("amount must be an integer")

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, invalid
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, invalid
		}
		text = strings.TrimSpace(text)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	// 5.0 and 1e3 are integral even though they are not written as such
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, invalid
	}
	return int64(f), nil
}
