package paysplittest

import (
	"testing"

	"github.com/iov-one/paysplit/errors"
)

func TestDecorator(t *testing.T) {
	cases := map[string]struct {
		dec          Decorator
		wantCheck    *errors.Error
		wantDeliver  *errors.Error
		wantHandlers int
	}{
		"passes through": {
			wantHandlers: 2,
		},
		"check rejected": {
			dec:          Decorator{CheckErr: errors.ErrUnauthorized},
			wantCheck:    errors.ErrUnauthorized,
			wantHandlers: 1,
		},
		"both rejected": {
			dec:         Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrTransfer},
			wantCheck:   errors.ErrUnauthorized,
			wantDeliver: errors.ErrTransfer,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var h Handler
			_, err := tc.dec.Check(nil, nil, nil, &h)
			if !tc.wantCheck.Is(err) {
				t.Fatalf("check: want %v, got %+v", tc.wantCheck, err)
			}
			_, err = tc.dec.Deliver(nil, nil, nil, &h)
			if !tc.wantDeliver.Is(err) {
				t.Fatalf("deliver: want %v, got %+v", tc.wantDeliver, err)
			}

			if got := h.CallCount(); got != tc.wantHandlers {
				t.Errorf("want %d handler calls, got %d", tc.wantHandlers, got)
			}
			// Rejected calls are counted too.
			if tc.dec.CheckCallCount() != 1 || tc.dec.DeliverCallCount() != 1 || tc.dec.CallCount() != 2 {
				t.Errorf("unexpected decorator counts: %d check, %d deliver",
					tc.dec.CheckCallCount(), tc.dec.DeliverCallCount())
			}
		})
	}
}
