package assert

import (
	"fmt"
	"testing"

	"github.com/decentralwatch/registry/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	var nilErr error
	var nilPtr *int
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":           {value: nil},
		"nil error":     {value: nilErr},
		"nil pointer":   {value: nilPtr},
		"error":         {value: fmt.Errorf("boom"), wantFail: true},
		"non pointer":   {value: 4, wantFail: true},
		"empty non nil": {value: []int{}, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{}
			Nil(r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	r := &recorder{}
	Equal(r, []byte("a"), []byte("a"))
	if r.failed {
		t.Fatal("equal slices")
	}
	Equal(r, uint8(1), 1)
	if !r.failed {
		t.Fatal("different types must not be equal")
	}
}

func TestPanics(t *testing.T) {
	Panics(t, func() { panic("boom") })

	r := &recorder{}
	Panics(r, func() {})
	if !r.failed {
		t.Fatal("no panic must fail")
	}
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     *errors.Error
		got      error
		wantFail bool
	}{
		"wrapped kind":   {want: errors.ErrNotFound, got: errors.Wrap(errors.ErrNotFound, "validator")},
		"no error":       {},
		"other kind":     {want: errors.ErrNotFound, got: errors.ErrUnauthorized, wantFail: true},
		"missing error":  {want: errors.ErrNotFound, wantFail: true},
		"unexpected err": {got: errors.ErrInput, wantFail: true},
		"foreign error":  {want: errors.ErrInput, got: fmt.Errorf("input"), wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := &recorder{}
			IsErr(r, tc.want, tc.got)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := errors.Append(
		errors.Field("owner", errors.ErrEmpty, "required"),
		errors.Field("status", errors.ErrInput, "too big"),
	)
	FieldError(t, err, "owner", errors.ErrEmpty)
	FieldError(t, err, "status", errors.ErrInput)
	FieldError(t, err, "location", nil)

	r := &recorder{}
	FieldError(r, err, "owner", errors.ErrInput)
	if !r.failed {
		t.Fatal("owner error is of another kind")
	}
	r = &recorder{}
	FieldError(r, err, "status", nil)
	if !r.failed {
		t.Fatal("status has an error")
	}
}
