package machine

import "fmt"

// DescriptionErrorKind enumerates the ways a description can be rejected.
type DescriptionErrorKind uint8

const (
	DescErrParse DescriptionErrorKind = iota + 1
	DescErrUnknownKey
	DescErrMissing
	DescErrRange
	DescErrEncoding
	DescErrCharset
)

// DescriptionError reports an invalid machine description.
type DescriptionError struct {
	Kind  DescriptionErrorKind
	Path  string // file the description came from, if any
	Key   string // offending key, e.g. "sizes.int"
	Value int64
	Err   error
}

func (e *DescriptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	prefix := "machine description"
	if e.Path != "" {
		prefix = e.Path
	}
	switch e.Kind {
	case DescErrParse:
		return fmt.Sprintf("%s: failed to parse TOML: %v", prefix, e.Err)
	case DescErrUnknownKey:
		return fmt.Sprintf("%s: unknown key %q", prefix, e.Key)
	case DescErrMissing:
		return fmt.Sprintf("%s: missing %s", prefix, e.Key)
	case DescErrRange:
		return fmt.Sprintf("%s: %s = %d is out of range", prefix, e.Key, e.Value)
	case DescErrEncoding:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Key, e.Err)
	case DescErrCharset:
		return fmt.Sprintf("%s: charset: %v", prefix, e.Err)
	default:
		return fmt.Sprintf("%s: invalid description (kind=%d)", prefix, e.Kind)
	}
}

func (e *DescriptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
