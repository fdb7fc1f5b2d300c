package message

import (
	"bytes"
	"errors"
	"fmt"
)

// <edit-config> parameters. Each is a closed enumeration of the
// literal element values RFC6241 allows; ParseEditDefault and friends
// convert element text, returning an error for any other value.

// EditDefault is the <default-operation> value.
type EditDefault int

const (
	Merge EditDefault = iota
	Replace
	None
)

// TestOption is the <test-option> value.
type TestOption int

const (
	TestThenSet TestOption = iota
	Set
	TestOnly
)

// ErrorOption is the <error-option> value.
type ErrorOption int

const (
	StopOnError ErrorOption = iota
	ContinueOnError
	RollbackOnError
)

var (
	editDefaultNames = [...]string{Merge: "merge", Replace: "replace", None: "none"}
	testOptionNames  = [...]string{TestThenSet: "test-then-set", Set: "set", TestOnly: "test-only"}
	errorOptionNames = [...]string{
		StopOnError:     "stop-on-error",
		ContinueOnError: "continue-on-error",
		RollbackOnError: "rollback-on-error",
	}
)

var errUnknownValue = errors.New("unknown value")

func lookup(names []string, s string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, errUnknownValue
}

func enumName(names []string, i int, typ string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", typ, i)
}

func ParseEditDefault(s string) (EditDefault, error) {
	i, err := lookup(editDefaultNames[:], s)
	return EditDefault(i), err
}

func ParseTestOption(s string) (TestOption, error) {
	i, err := lookup(testOptionNames[:], s)
	return TestOption(i), err
}

func ParseErrorOption(s string) (ErrorOption, error) {
	i, err := lookup(errorOptionNames[:], s)
	return ErrorOption(i), err
}

func (o EditDefault) String() string { return enumName(editDefaultNames[:], int(o), "EditDefault") }
func (o TestOption) String() string  { return enumName(testOptionNames[:], int(o), "TestOption") }
func (o ErrorOption) String() string { return enumName(errorOptionNames[:], int(o), "ErrorOption") }

func (o EditDefault) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
func (o TestOption) MarshalText() ([]byte, error)  { return []byte(o.String()), nil }
func (o ErrorOption) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *EditDefault) UnmarshalText(b []byte) error {
	v, err := ParseEditDefault(string(bytes.TrimSpace(b)))
	if err == nil {
		*o = v
	}
	return err
}

func (o *TestOption) UnmarshalText(b []byte) error {
	v, err := ParseTestOption(string(bytes.TrimSpace(b)))
	if err == nil {
		*o = v
	}
	return err
}

func (o *ErrorOption) UnmarshalText(b []byte) error {
	v, err := ParseErrorOption(string(bytes.TrimSpace(b)))
	if err == nil {
		*o = v
	}
	return err
}
