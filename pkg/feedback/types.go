// Package feedback defines the results the validation core reports back to
// the user interface.
package feedback

import "fmt"

// Severity indicates how a result should be presented
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// TargetKind says what a result points at
type TargetKind int

const (
	TargetDiagram TargetKind = iota
	TargetEquation
	TargetUnit
	TargetTable
)

func (k TargetKind) String() string {
	switch k {
	case TargetDiagram:
		return "diagram"
	case TargetEquation:
		return "equation"
	case TargetUnit:
		return "unit"
	case TargetTable:
		return "table"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// Target is the offending object. Ref is the equation reference, unit label
// or table label.
type Target struct {
	Kind TargetKind `json:"kind"`
	Ref  string     `json:"ref"`
}

func (t Target) String() string {
	if t.Ref == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + " " + t.Ref
}

func Equation(ref string) Target { return Target{Kind: TargetEquation, Ref: ref} }
func Unit(label string) Target   { return Target{Kind: TargetUnit, Ref: label} }
func Table(label string) Target  { return Target{Kind: TargetTable, Ref: label} }
func Diagram() Target            { return Target{Kind: TargetDiagram} }

// Result is one validation outcome. The zero Result is the empty result
// meaning "nothing to report".
type Result struct {
	Target   Target     `json:"target"`
	Key      MessageKey `json:"key"`
	Args     []string   `json:"args,omitempty"`
	Message  string     `json:"message"`
	Severity Severity   `json:"severity"`
}

// Empty is the result of a check that found nothing wrong
var Empty = Result{}

// IsEmpty reports whether r carries no message
func (r Result) IsEmpty() bool { return r.Key == None }

// New builds a result with the rendered message and the key's severity
func New(target Target, key MessageKey, args ...string) Result {
	return Result{
		Target:   target,
		Key:      key,
		Args:     args,
		Message:  key.Render(args...),
		Severity: key.Severity(),
	}
}

func (r Result) String() string {
	if r.IsEmpty() {
		return "ok"
	}
	return fmt.Sprintf("%s [%s] %s: %s", r.Severity, r.Key, r.Target, r.Message)
}
