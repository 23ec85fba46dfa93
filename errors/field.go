package errors

import (
	"fmt"
)

// Field attaches the name of the invalid record or message field to err.
// It returns nil for a nil err, so validations can be chained with
// AppendField. Field names use Go naming, for example MetadataHash, or a
// flag name when the value came from the command line.
func Field(name string, err error, desc string) error {
	if isNilErr(err) {
		return nil
	}
	return &fieldError{parent: err, field: name, desc: desc}
}

// AppendField adds the error of a single field to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

// FieldErrors returns the errors reported for the named field, looking
// through wrapped errors and collections created by Append.
func FieldErrors(err error, name string) []error {
	var res []error
	for !isNilErr(err) {
		switch e := err.(type) {
		case *fieldError:
			if e.field == name {
				return append(res, e)
			}
		case unpacker:
			for _, inner := range e.Unpack() {
				res = append(res, FieldErrors(inner, name)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			return res
		}
		err = c.Cause()
	}
	return res
}
