package validate

import (
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinLen(field, value string, n int) *ErrField {
	if len(strings.TrimSpace(value)) < n {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(n) + " characters"}
	}
	return nil
}

// PositivePence rejects non-positive donation amounts before any
// gateway call is made.
func PositivePence(field string, pence int64) *ErrField {
	if pence <= 0 {
		return &ErrField{Field: field, Msg: "must be a positive amount in pence"}
	}
	return nil
}
