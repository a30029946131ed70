package edd

import "fmt"

// MissingSheetError reports a required worksheet absent from an input
// workbook. It aborts the whole run before any output is written.
type MissingSheetError struct {
	File  string
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing sheet %q in %s", e.Sheet, e.File)
}

// MissingColumnError reports a required column absent from a worksheet after
// the rename pass.
type MissingColumnError struct {
	Sheet  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q in sheet %q", e.Column, e.Sheet)
}
