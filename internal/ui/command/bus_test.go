package command

import (
	"errors"
	"testing"
)

func TestExecuteRecordsResult(t *testing.T) {
	bus := New()
	ran := false
	if err := bus.Execute(Request{ID: "next", Label: "Next file", Handler: func() error {
		ran = true
		return nil
	}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Fatalf("expected handler to run")
	}
	if last := bus.Last(); last.ID != "next" || last.Err != nil {
		t.Fatalf("unexpected last result %#v", last)
	}

	boom := errors.New("boom")
	if err := bus.Execute(Request{ID: "assign", Handler: func() error { return boom }}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if last := bus.Last(); last.ID != "assign" || !errors.Is(last.Err, boom) {
		t.Fatalf("unexpected last result %#v", last)
	}
}

func TestExecuteWithoutHandlerIsNoop(t *testing.T) {
	bus := New()
	if err := bus.Execute(Request{ID: "noop"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if last := bus.Last(); last.ID != "" {
		t.Fatalf("expected skipped request not recorded, got %#v", last)
	}
}
