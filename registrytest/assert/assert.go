// Package assert holds the assertions shared by the registry tests. Errors
// are matched by their registered kind and reported with their code, never
// compared by message.
package assert

import (
	"reflect"

	"github.com/decentralwatch/registry/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// Nil fails the test unless value is nil. Errors are printed with their code
// and stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if isNil(value) {
		return
	}
	if err, ok := value.(error); ok {
		t.Fatalf("unexpected error (code %d): %+v", errors.ABCICode(err), err)
		return
	}
	t.Fatalf("want nil, got %T %v", value, value)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test unless both values are deeply equal and of the same
// type. Records, identities and addresses print in their readable form.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	if reflect.TypeOf(want) != reflect.TypeOf(got) {
		t.Fatalf("want %T, got %T %v", want, got, got)
		return
	}
	t.Fatalf("values differ\nwant %v\n got %v", want, got)
}

// Panics fails the test if fn returns normally.
func Panics(t Tester, fn func()) {
	t.Helper()
	if !panics(fn) {
		t.Fatalf("want a panic")
	}
}

func panics(fn func()) (panicked bool) {
	defer func() {
		panicked = recover() != nil
	}()
	fn()
	return false
}

// IsErr fails the test unless got is of the registered kind want. A nil want
// expects no error at all.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if want.Is(got) {
		return
	}
	if want == nil {
		t.Fatalf("want no error, got (code %d) %+v", errors.ABCICode(got), got)
		return
	}
	t.Fatalf("want %q (code %d), got (code %d) %+v", want, want.ABCICode(), errors.ABCICode(got), got)
}

// FieldError checks the errors reported for one field of a message or a
// record. A nil want expects the field to be valid.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %s error, got %v", field, errs)
		}
		return
	}
	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	if len(errs) == 0 {
		t.Fatalf("want %s error %q, got none in %v", field, want, err)
		return
	}
	t.Fatalf("want %s error %q, got %v", field, want, errs)
}
