package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided or all are nil, nil is returned. A single non
// nil error is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			res.errs = append(res.errs, m.errs...)
			continue
		}
		res.errs = append(res.errs, e)
	}

	switch len(res.errs) {
	case 0:
		return nil
	case 1:
		return res.errs[0]
	}
	return &res
}

type multiErr struct {
	errs []error
}

func (e *multiErr) Error() string {
	msgs := make([]string, len(e.errs))
	for i, er := range e.errs {
		msgs[i] = er.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(e.errs), strings.Join(msgs, "; "))
}

// Unpack implements the unpacker interface.
func (e *multiErr) Unpack() []error {
	return e.errs
}

// ABCICode returns the code of the first error, which is consistent with a
// fail-fast approach.
func (e *multiErr) ABCICode() uint32 {
	return abciCode(e.errs[0])
}
