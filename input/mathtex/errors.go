package mathtex

import (
	"fmt"

	"github.com/npillmayer/mex/core"
)

// ErrorKind classifies parse errors.
type ErrorKind int8

// Parse error kinds.
const (
	LexError ErrorKind = iota
	UnknownCommand
	MissingArgument
	UnexpectedToken
	UnmatchedGroup
	UnmatchedDelimiter
	NoSuchEnvironment
	WrongColumnCount
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lexical error"
	case UnknownCommand:
		return "unknown command"
	case MissingArgument:
		return "missing argument"
	case UnexpectedToken:
		return "unexpected token"
	case UnmatchedGroup:
		return "unmatched group"
	case UnmatchedDelimiter:
		return "unmatched delimiter"
	case NoSuchEnvironment:
		return "no such environment"
	case WrongColumnCount:
		return "wrong column count"
	}
	return "parse error"
}

// Error is a parse error with the byte offset and the offending
// token.
type Error struct {
	Kind  ErrorKind
	Pos   int
	Token string
	msg   string
}

func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s at byte %d near %q: %s", e.Kind, e.Pos, e.Token, e.msg)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Kind, e.Pos, e.msg)
}

// AsCoreError wraps a parse error into a core error with a syntax
// error code.
func AsCoreError(err error) error {
	if err == nil {
		return nil
	}
	return core.WrapError(err, core.ESYNTAX, "formula syntax: %v", err)
}

func errKind(kind ErrorKind, pos int, token string, format string, v ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		Pos:   pos,
		Token: token,
		msg:   fmt.Sprintf(format, v...),
	}
}
