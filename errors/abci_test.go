package errors

import (
	"io"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"missing splitter":          {err: ErrNotFound, wantCode: ErrNotFound.code, wantLog: "not found"},
		"duplicate recipient chain": {err: Wrap(Wrap(ErrState, "already recipient"), "cannot add"), wantCode: ErrState.code, wantLog: "cannot add: already recipient: invalid state"},
		"failed payout keeps cause": {err: Wrapf(ErrTransfer, "recipient %d", 3), wantCode: ErrTransfer.code, wantLog: "recipient 3: a transfer failed"},
		"no error":                  {err: nil, wantCode: 0, wantLog: ""},
		"typed nil":                 {err: (*Error)(nil), wantCode: 0, wantLog: ""},
		"uncoded error is hidden":   {err: io.ErrUnexpectedEOF, wantCode: 1, wantLog: "internal error"},
		"uncoded error in debug":    {err: io.ErrUnexpectedEOF, debug: true, wantCode: 1, wantLog: "unexpected EOF"},
		"wrapped uncoded is hidden": {err: Wrap(io.EOF, "cannot read store"), wantCode: 1, wantLog: "internal error"},
		"panic message is hidden":   {err: Wrap(ErrPanic, "index out of range"), wantCode: ErrPanic.code, wantLog: "panic"},
		"foreign coded error":       {err: customErr{}, wantCode: 999, wantLog: "custom"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(Wrap(ErrPanic, "secret"), false); err != ErrPanic {
		t.Fatalf("want plain panic error, got %q", err)
	}
	if err := Redact(io.EOF, false); err.Error() != internalABCILog {
		t.Fatalf("want internal error, got %q", err)
	}
	if err := Redact(io.EOF, true); err != io.EOF {
		t.Fatalf("debug mode must not redact, got %q", err)
	}
	state := Wrap(ErrState, "not recipient")
	if err := Redact(state, false); err != state {
		t.Fatalf("coded errors must pass through, got %q", err)
	}
}

type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
