package skemagql

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeUnsupportedKind        = "unsupported_kind"
	CodeUnsupportedUnionMember = "unsupported_union_member"
	CodeNamingConflict         = "naming_conflict"
	CodeEmptyArray             = "empty_array"
	CodeInvalidType            = "invalid_type"
)

// Sentinel errors matched by errors.Is against an *Issue.
var (
	ErrUnsupportedDescriptorKind = errors.New("skemagql: unsupported descriptor kind")
	ErrUnsupportedUnionMember    = errors.New("skemagql: unsupported union member")
	ErrNamingConflict            = errors.New("skemagql: naming conflict")
)

// Issue describes why a translation was aborted.
type Issue struct {
	Path    string // JSON Pointer of the offending descriptor (for example: /article/blocks/1).
	Code    string // One of the codes listed above.
	Kind    Kind   // Kind of the offending descriptor, zero when unknown.
	Message string
	Cause   error // Optional: underlying error.
}

func (i *Issue) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "skemagql: %s at %s", i.Code, pointerOrRoot(i.Path))
	if i.Message != "" {
		b.WriteString(": ")
		b.WriteString(i.Message)
	}
	if i.Cause != nil {
		fmt.Fprintf(b, ": %v", i.Cause)
	}
	return b.String()
}

func (i *Issue) Unwrap() error { return i.Cause }

// Is maps issue codes onto the exported sentinels.
func (i *Issue) Is(target error) bool {
	switch target {
	case ErrUnsupportedDescriptorKind:
		return i.Code == CodeUnsupportedKind
	case ErrUnsupportedUnionMember:
		return i.Code == CodeUnsupportedUnionMember
	case ErrNamingConflict:
		return i.Code == CodeNamingConflict
	}
	return false
}

// AsIssue extracts an *Issue from an error using errors.As internally.
func AsIssue(err error) (*Issue, bool) {
	if err == nil {
		return nil, false
	}
	var iss *Issue
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
