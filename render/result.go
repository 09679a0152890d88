package render

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned when no backend is registered under a kind or name.
var ErrUnknownBackend = errors.New("render: unknown backend")

// ResultKind is the outcome class of a device operation. It implements error
// so that errors.Is(res.Err(), InvalidHandle) matches on kind.
type ResultKind uint8

const (
	Ok ResultKind = iota
	InvalidHandle
	ResourceMissing
	BufferTypeMismatch
	ShaderTypeMismatch
	BindingGroupMismatch
	BindingMismatch
	InvalidIndex
	TextureSizeMismatch
	PassBeginMismatch
	ScissorStackEmpty
	PoolExhausted
	BackendFailure
)

var resultKindNames = [...]string{
	"ok",
	"invalid handle",
	"resource missing",
	"buffer type mismatch",
	"shader type mismatch",
	"binding group mismatch",
	"binding mismatch",
	"invalid index",
	"texture size mismatch",
	"pass begin mismatch",
	"scissor stack empty",
	"pool exhausted",
	"backend failure",
}

func (k ResultKind) String() string {
	if int(k) < len(resultKindNames) {
		return resultKindNames[k]
	}
	return fmt.Sprintf("ResultKind(%d)", k)
}

func (k ResultKind) Error() string { return "render: " + k.String() }

type ResourceMissingInfo struct {
	Resource ResourceType
}

type BufferTypeMismatchInfo struct {
	Expect, Actual BufferType
}

type ShaderTypeMismatchInfo struct {
	Expect, Actual ShaderType
}

type TextureSizeMismatchInfo struct {
	Expect, Actual uint64
}

type PassBeginMismatchInfo struct {
	Expect, Actual int
	// MissingIndex is the attachment whose clear value has the wrong kind,
	// or -1 when the counts differ.
	MissingIndex int
}

type PoolExhaustedInfo struct {
	Resource ResourceType
}

// Result is the value every device operation returns. Only the payload field
// matching Kind is meaningful.
type Result struct {
	Kind ResultKind

	ResourceMissing     ResourceMissingInfo
	BufferTypeMismatch  BufferTypeMismatchInfo
	ShaderTypeMismatch  ShaderTypeMismatchInfo
	TextureSizeMismatch TextureSizeMismatchInfo
	PassBeginMismatch   PassBeginMismatchInfo
	PoolExhausted       PoolExhaustedInfo

	// Cause is set for BackendFailure.
	Cause error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Kind == Ok }

// Err returns nil for Ok and the result itself otherwise.
func (r Result) Err() error {
	if r.Kind == Ok {
		return nil
	}
	return r
}

func (r Result) Error() string {
	switch r.Kind {
	case ResourceMissing:
		return fmt.Sprintf("render: missing %s", r.ResourceMissing.Resource)
	case BufferTypeMismatch:
		return fmt.Sprintf("render: buffer type mismatch: expect %s, actual %s",
			r.BufferTypeMismatch.Expect, r.BufferTypeMismatch.Actual)
	case ShaderTypeMismatch:
		return fmt.Sprintf("render: shader type mismatch: expect %s, actual %s",
			r.ShaderTypeMismatch.Expect, r.ShaderTypeMismatch.Actual)
	case TextureSizeMismatch:
		return fmt.Sprintf("render: texture size mismatch: expect %d bytes, actual %d",
			r.TextureSizeMismatch.Expect, r.TextureSizeMismatch.Actual)
	case PassBeginMismatch:
		p := r.PassBeginMismatch
		if p.MissingIndex >= 0 {
			return fmt.Sprintf("render: pass begin: attachment %d has no matching clear value", p.MissingIndex)
		}
		return fmt.Sprintf("render: pass begin: expect %d clear values, actual %d", p.Expect, p.Actual)
	case PoolExhausted:
		return fmt.Sprintf("render: %s pool exhausted", r.PoolExhausted.Resource)
	case BackendFailure:
		if r.Cause != nil {
			return "render: backend failure: " + r.Cause.Error()
		}
	}
	return r.Kind.Error()
}

// Is matches a ResultKind target against Kind.
func (r Result) Is(target error) bool {
	k, ok := target.(ResultKind)
	return ok && k == r.Kind
}

// Unwrap returns the backend error behind a BackendFailure.
func (r Result) Unwrap() error { return r.Cause }

func okResult() Result { return Result{} }

func invalidHandle() Result { return Result{Kind: InvalidHandle} }

func invalidIndex() Result { return Result{Kind: InvalidIndex} }

func resourceMissing(t ResourceType) Result {
	return Result{Kind: ResourceMissing, ResourceMissing: ResourceMissingInfo{Resource: t}}
}

func bufferTypeMismatch(expect, actual BufferType) Result {
	return Result{Kind: BufferTypeMismatch, BufferTypeMismatch: BufferTypeMismatchInfo{Expect: expect, Actual: actual}}
}

func shaderTypeMismatch(expect, actual ShaderType) Result {
	return Result{Kind: ShaderTypeMismatch, ShaderTypeMismatch: ShaderTypeMismatchInfo{Expect: expect, Actual: actual}}
}

func textureSizeMismatch(expect, actual uint64) Result {
	return Result{Kind: TextureSizeMismatch, TextureSizeMismatch: TextureSizeMismatchInfo{Expect: expect, Actual: actual}}
}

func passBeginMismatch(expect, actual, missing int) Result {
	return Result{Kind: PassBeginMismatch, PassBeginMismatch: PassBeginMismatchInfo{Expect: expect, Actual: actual, MissingIndex: missing}}
}

// Fail builds the result for a backend error. Errors that already carry a
// Result are returned as is; pool exhaustion becomes PoolExhausted for t.
func Fail(t ResourceType, err error) Result {
	if err == nil {
		return okResult()
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	var k ResultKind
	if errors.As(err, &k) {
		return Result{Kind: k}
	}
	if errors.Is(err, errPoolExhausted) {
		return Result{Kind: PoolExhausted, PoolExhausted: PoolExhaustedInfo{Resource: t}}
	}
	return Result{Kind: BackendFailure, Cause: err}
}
