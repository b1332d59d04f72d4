package assert

import (
	"fmt"
	"io"
	"testing"

	"github.com/iov-one/paysplit/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"both nil":                 {want: nil, got: nil},
		"same instance":            {want: io.EOF, got: io.EOF},
		"registered error":         {want: errors.ErrNotFound, got: errors.ErrNotFound},
		"wrapped registered error": {want: errors.ErrState, got: errors.Wrap(errors.ErrState, "not recipient")},
		"other registered error":   {want: errors.ErrState, got: errors.ErrTransfer, wantFail: true},
		"unexpected success":       {want: errors.ErrAmount, got: nil, wantFail: true},
		"unexpected failure":       {want: nil, got: errors.ErrAmount, wantFail: true},
		"different plain errors":   {want: io.EOF, got: io.ErrUnexpectedEOF, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			IsErr(&r, tc.want, tc.got)
			if r.failed != tc.wantFail {
				t.Fatalf("want failure %v, got %v: %s", tc.wantFail, r.failed, r.msg)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var r recorder
	Nil(&r, (*errors.Error)(nil))
	if r.failed {
		t.Fatalf("typed nil must pass: %s", r.msg)
	}
	Nil(&r, errors.ErrEmpty)
	if !r.failed {
		t.Fatal("non nil value must fail")
	}
}

func TestEqualAndPanics(t *testing.T) {
	var r recorder
	Equal(&r, []byte("split"), []byte("split"))
	Panics(&r, func() { panic("boom") })
	if r.failed {
		t.Fatalf("unexpected failure: %s", r.msg)
	}
	Equal(&r, int64(1), 1)
	if !r.failed {
		t.Fatal("values of different types must not be equal")
	}

	r = recorder{}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("missing panic must fail")
	}
}

// recorder collects failures instead of stopping the test.
type recorder struct {
	failed bool
	msg    string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatal(args ...interface{}) {
	r.failed = true
	r.msg = fmt.Sprint(args...)
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.failed = true
	r.msg = fmt.Sprintf(format, args...)
}
