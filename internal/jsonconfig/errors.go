package jsonconfig

import (
	"fmt"

	"github.com/vk/taskgrid/internal/config"
)

// ParseError reports a file that is not valid JSON.
type ParseError struct {
	File string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON", e.File)
}

// FieldTypeError reports a field holding the wrong kind of value.
type FieldTypeError struct {
	Field    string
	Want     string
	Location config.Location
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: field %q must be %s", e.Location, e.Field, e.Want)
}

// PackageTaskError reports a package-qualified task entry outside the
// root configuration.
type PackageTaskError struct {
	Task string
	File string
}

func (e *PackageTaskError) Error() string {
	return fmt.Sprintf("%s: package-qualified task %q may only be declared in the root configuration", e.File, e.Task)
}
