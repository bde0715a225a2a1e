package packet

import (
	"errors"
	"fmt"
)

// Decode failures.
var (
	ErrVarIntTooLong     = errors.New("VarInt is too long")
	ErrVarLongTooLong    = errors.New("VarLong is too long")
	ErrNegativeLength    = errors.New("negative length")
	ErrStringTooLong     = errors.New("string exceeds maximum length")
	ErrInvalidUTF8       = errors.New("string is not valid UTF-8")
	ErrInvalidBoolean    = errors.New("invalid byte for Boolean field")
	ErrArrayTooLong      = errors.New("array length exceeds remaining bytes")
	ErrOrdinalTooLarge   = errors.New("ordinal too large")
	ErrOrdinalTooSmall   = errors.New("ordinal too small")
	ErrInvalidChat       = errors.New("chat component is not valid JSON")
	ErrInvalidIntent     = errors.New("invalid handshake intent")
	ErrUnknownPacket     = errors.New("no such packet in this state")
	ErrPacketNotConsumed = errors.New("packet body not fully consumed")
)

// Caller-contract violations.
var (
	ErrNilElement         = errors.New("element reader produced nil")
	ErrFixedLength        = errors.New("array length does not match fixed count")
	ErrOrdinalOutOfRange  = errors.New("ordinal out of range for encoding width")
	ErrPositionOutOfRange = errors.New("position component exceeds packed width")
	ErrIllegalTransition  = errors.New("illegal state transition")
	ErrPacketNotInState   = errors.New("packet not legal in current state")
	ErrNegativeThreshold  = errors.New("negative compression threshold")
	ErrNilFormat          = errors.New("nil packet format")
)

// ErrClosed is carried by a TransportError after the channel is closed.
var ErrClosed = errors.New("use of closed channel")

// TransportError reports a failure of the underlying byte source or sink.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports bytes that are structurally invalid for the shape being read.
//
// Ignorable is set by the raising site when the offending packet can be skipped
// without losing frame alignment. Whether to continue the session is up to the caller.
type DecodeError struct {
	Op        string
	Err       error
	Ignorable bool
}

func (e *DecodeError) Error() string {
	if e.Ignorable {
		return fmt.Sprintf("decode %s (ignorable): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ArgumentError reports an invalid argument supplied by the caller.
// It is raised before any byte reaches the sink.
type ArgumentError struct {
	Op  string
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument to %s: %v", e.Op, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func decodeErr(op string, err error) error {
	return &DecodeError{Op: op, Err: err}
}

func argumentErr(op string, err error) error {
	return &ArgumentError{Op: op, Err: err}
}

// IsIgnorable reports whether err is a DecodeError marked ignorable.
func IsIgnorable(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Ignorable
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsArgument reports whether err is an ArgumentError.
func IsArgument(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
