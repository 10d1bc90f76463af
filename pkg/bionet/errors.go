package bionet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common sentinel errors
var (
	ErrNodeNotFound       = errors.New("node not found")
	ErrEdgeNotFound       = errors.New("edge not found")
	ErrDuplicateName      = errors.New("duplicate node name")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidSign        = errors.New("invalid sign")
	ErrInvalidLinkType    = errors.New("invalid link type")
	ErrInvalidReaction    = errors.New("invalid reaction")
	ErrIDUnavailable      = errors.New("no free id")
	ErrNotInteraction     = errors.New("node is not an interaction")
	ErrStaleReference     = errors.New("stale node reference")
	ErrParameterNotFound  = errors.New("parameter not found")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrIO                 = errors.New("i/o failure")
	ErrMalformed          = errors.New("malformed network document")
)

// NetError provides structured error information for network operations.
type NetError struct {
	Op       string // Operation that failed (e.g. "create_edge", "load")
	Entity   string // Entity type ("node", "edge", "parameter", "file")
	Ref      string // Offending identifier: an id, a quoted name or a path
	Endpoint string // "source" or "destination" for edge endpoint failures
	Context  string
	Cause    error
}

// Error implements the error interface.
func (e *NetError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Entity != "" {
		b.WriteByte(' ')
		if e.Endpoint != "" {
			b.WriteString(e.Endpoint)
			b.WriteByte(' ')
		}
		b.WriteString(e.Entity)
	}
	if e.Ref != "" {
		b.WriteByte(' ')
		b.WriteString(e.Ref)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain support.
func (e *NetError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building NetErrors.
type ErrorBuilder struct {
	err NetError
}

// NewError creates a new error builder for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: NetError{Op: op}}
}

// Node sets the entity to "node" with the given id.
func (b *ErrorBuilder) Node(id uint64) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Ref = strconv.FormatUint(id, 10)
	return b
}

// NodeName sets the entity to "node" identified by name.
func (b *ErrorBuilder) NodeName(name string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Ref = strconv.Quote(name)
	return b
}

// Edge sets the entity to "edge" with the given id.
func (b *ErrorBuilder) Edge(id uint64) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.Ref = strconv.FormatUint(id, 10)
	return b
}

// Parameter sets the entity to "parameter" identified by name.
func (b *ErrorBuilder) Parameter(name string) *ErrorBuilder {
	b.err.Entity = "parameter"
	b.err.Ref = strconv.Quote(name)
	return b
}

// File sets the entity to "file" with the given path.
func (b *ErrorBuilder) File(path string) *ErrorBuilder {
	b.err.Entity = "file"
	b.err.Ref = path
	return b
}

// Endpoint marks which end of an edge could not be resolved.
func (b *ErrorBuilder) Endpoint(end string) *ErrorBuilder {
	b.err.Endpoint = end
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed NetError.
func (b *ErrorBuilder) Build() *NetError {
	e := b.err
	return &e
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return b.Build()
}

// Endpoint names used in edge construction errors
const (
	EndpointSource      = "source"
	EndpointDestination = "destination"
)

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op string, id uint64) error {
	return NewError(op).Node(id).Cause(ErrNodeNotFound).Err()
}

// EdgeNotFoundError creates an edge not found error.
func EdgeNotFoundError(op string, id uint64) error {
	return NewError(op).Edge(id).Cause(ErrEdgeNotFound).Err()
}

// malformed wraps a document validation failure.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// IsNotFound returns true if the error is a node, edge or parameter not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound) || errors.Is(err, ErrParameterNotFound)
}

// IsIO returns true if the error is an I/O failure during save or load.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsMalformed returns true if persisted content could not be decoded or validated.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// UnresolvedEndpoint reports which endpoint of a failed edge creation was
// missing, or "" if err is not an endpoint failure.
func UnresolvedEndpoint(err error) string {
	var ne *NetError
	if errors.As(err, &ne) && errors.Is(ne.Cause, ErrNodeNotFound) {
		return ne.Endpoint
	}
	return ""
}
