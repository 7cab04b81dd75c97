package pipeline

import "fmt"

// UnitError reports the failure of one pipeline unit (one RFP) at a named stage.
type UnitError struct {
	Unit  string
	Stage string
	Cause error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %s failed at %s: %v", e.Unit, e.Stage, e.Cause)
}

func (e *UnitError) Unwrap() error {
	return e.Cause
}
