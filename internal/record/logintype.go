package record

import (
	"fmt"

	"github.com/d21d3q/goutmp/pkg/errclass"
)

// LoginType classifies the event a record describes (ut_type).
type LoginType int16

const (
	Unknown LoginType = iota
	RunLevel
	BootTime
	NewTime
	OldTime
	InitProcess
	LoginProcess
	UserProcess
	DeadProcess
	Accounting
)

var loginTypeNames = [...]string{
	Unknown:      "UNKNOWN",
	RunLevel:     "RUN_LVL",
	BootTime:     "BOOT_TIME",
	NewTime:      "NEW_TIME",
	OldTime:      "OLD_TIME",
	InitProcess:  "INIT_PROCESS",
	LoginProcess: "LOGIN_PROCESS",
	UserProcess:  "USER_PROCESS",
	DeadProcess:  "DEAD_PROCESS",
	Accounting:   "ACCOUNTING",
}

// Valid reports whether t is one of the ten known login types.
func (t LoginType) Valid() bool {
	return t >= Unknown && t <= Accounting
}

func (t LoginType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("LoginType(%d)", int16(t))
	}
	return loginTypeNames[t]
}

// ParseLoginType validates a raw ut_type code.
func ParseLoginType(code int16) (LoginType, error) {
	t := LoginType(code)
	if !t.Valid() {
		return 0, errclass.ErrInvalidLoginType.WithMessagef("login type %d outside [%d,%d]", code, Unknown, Accounting)
	}
	return t, nil
}

// Label returns the canonical name for a login type code.
func Label(code int) (string, error) {
	if code < int(Unknown) || code > int(Accounting) {
		return "", errclass.ErrInvalidLoginType.WithMessagef("login type %d outside [%d,%d]", code, Unknown, Accounting)
	}
	return loginTypeNames[code], nil
}
