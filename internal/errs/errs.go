// Package errs defines the typed error kinds the minification core can raise.
package errs

import "fmt"

// InvariantViolation means a reserved name was already claimed by a
// different member — typically an apply-mapping conflict. Fatal.
type InvariantViolation struct {
	Member string
	Name   string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s cannot take reserved name %q: %s", e.Member, e.Name, e.Reason)
}

// ResolutionFailure means a non-rebound reference could not be resolved
// uniquely, and its candidate targets disagree on the rename. Non-fatal:
// the writer should preserve the original name.
type ResolutionFailure struct {
	Ref     string
	Targets []string
}

func (e *ResolutionFailure) Error() string {
	return fmt.Sprintf("resolution failure: %s resolves to %d disagreeing targets %v", e.Ref, len(e.Targets), e.Targets)
}

// IllegalConfiguration means keep rules and apply-mapping contradict each
// other — e.g. apply-mapping requires renaming a class kept under its
// original name. Fatal.
type IllegalConfiguration struct {
	Subject string
	Reason  string
}

func (e *IllegalConfiguration) Error() string {
	return fmt.Sprintf("illegal configuration for %s: %s", e.Subject, e.Reason)
}

// MissingType is tolerated: it only documents that a type was absent from
// the model and was treated as a library class rooted at java.lang.Object.
// It is not returned as an error by any core function; it exists so callers
// can record the condition in diagnostics/summaries if they wish.
type MissingType struct {
	Descriptor string
}

func (e *MissingType) Error() string {
	return fmt.Sprintf("missing type %s treated as library root", e.Descriptor)
}
