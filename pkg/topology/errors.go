// Copyright 2024 Atomstate Technologies Private Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topology

import (
	"fmt"

	"go.uber.org/zap"
)

// ErrorKind classifies the distinct failure modes of the planner.
// It is defined as a byte type, allowing for efficient storage and comparisons.
type ErrorKind byte

const (
	ErrConfigInvalid ErrorKind = iota
	ErrGroupLabelMalformed
	ErrInsufficientGroupDiversity
	ErrPlacementInfeasible
	ErrOverReplication
)

var validErrorKinds = []ErrorKind{
	ErrConfigInvalid,
	ErrGroupLabelMalformed,
	ErrInsufficientGroupDiversity,
	ErrPlacementInfeasible,
	ErrOverReplication,
}

// String returns a human-readable name for the ErrorKind.
//
// Example usage:
//
//	var k ErrorKind = ErrConfigInvalid
//	fmt.Println(k.String()) // Output: ConfigInvalid
func (k ErrorKind) String() string {
	switch k {
	case ErrConfigInvalid:
		return "ConfigInvalid"
	case ErrGroupLabelMalformed:
		return "GroupLabelMalformed"
	case ErrInsufficientGroupDiversity:
		return "InsufficientGroupDiversity"
	case ErrPlacementInfeasible:
		return "PlacementInfeasible"
	case ErrOverReplication:
		return "OverReplication"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k is one of the recognized ErrorKind values.
func (k ErrorKind) IsValid() bool {
	for _, v := range validErrorKinds {
		if v == k {
			return true
		}
	}
	return false
}

// PlannerError is the structured error type returned by every planner
// operation. It carries a Kind so callers can branch on failure category
// without parsing the message, and an optional Cause for wrapping.
type PlannerError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewPlannerError constructs a PlannerError with no wrapped cause.
func NewPlannerError(kind ErrorKind, message string) *PlannerError {
	return &PlannerError{Kind: kind, Message: message}
}

// WrapPlannerError constructs a PlannerError wrapping cause.
func WrapPlannerError(kind ErrorKind, message string, cause error) *PlannerError {
	return &PlannerError{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *PlannerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *PlannerError) Unwrap() error {
	return e.Cause
}

// Log writes the error to the supplied logger at error level.
//
// Example usage:
//
//	if err != nil {
//	    var pe *PlannerError
//	    if errors.As(err, &pe) {
//	        pe.Log(logger)
//	    }
//	}
func (e *PlannerError) Log(logger *zap.Logger) {
	if logger == nil {
		return
	}
	logger.Error("planner error",
		zap.String("kind", e.Kind.String()),
		zap.String("message", e.Message),
		zap.Error(e.Cause),
	)
}
