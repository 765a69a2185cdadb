package outbox

import (
	"errors"
	"testing"
)

func TestOutbox_PutGetDelete(t *testing.T) {
	ob, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ob.Close()

	if err := ob.PutNew(7, []byte("payload-7")); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec, err := ob.Get(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateNew || rec.Retries != 0 || string(rec.Payload) != "payload-7" {
		t.Fatalf("record = %+v", rec)
	}

	if err := ob.Delete(7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ob.Get(7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestOutbox_StateTransitionsKeepPayload(t *testing.T) {
	ob, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ob.Close()

	_ = ob.PutNew(1, []byte("event-1"))

	if err := ob.UpdateState(1, StateSent, 0); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	rec, _ := ob.Get(1)
	if rec.State != StateSent || rec.LastAttempt == 0 {
		t.Fatalf("after sent: %+v", rec)
	}
	if string(rec.Payload) != "event-1" {
		t.Fatalf("payload lost across transition: %q", rec.Payload)
	}

	if err := ob.UpdateState(1, StateAcked, 0); err != nil {
		t.Fatalf("mark acked: %v", err)
	}
	rec, _ = ob.Get(1)
	if rec.State != StateAcked {
		t.Fatalf("after acked: %+v", rec)
	}
}

func TestOutbox_UpdateUnknownSeq(t *testing.T) {
	ob, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ob.Close()

	if err := ob.UpdateState(99, StateSent, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOutbox_ScanByState(t *testing.T) {
	ob, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ob.Close()

	for seq := uint64(1); seq <= 5; seq++ {
		_ = ob.PutNew(seq, []byte{byte(seq)})
	}
	_ = ob.UpdateState(2, StateAcked, 0)
	_ = ob.UpdateState(4, StateFailed, 3)

	var news []uint64
	err = ob.ScanByState(StateNew, func(seq uint64, rec Record) error {
		news = append(news, seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(news) != 3 || news[0] != 1 || news[1] != 3 || news[2] != 5 {
		t.Fatalf("NEW seqs = %v, want [1 3 5]", news)
	}

	var failed []uint64
	_ = ob.ScanByState(StateFailed, func(seq uint64, rec Record) error {
		if rec.Retries != 3 {
			t.Errorf("retries = %d, want 3", rec.Retries)
		}
		failed = append(failed, seq)
		return nil
	})
	if len(failed) != 1 || failed[0] != 4 {
		t.Fatalf("FAILED seqs = %v, want [4]", failed)
	}
}

func TestOutbox_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	ob, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = ob.PutNew(10, []byte("durable"))
	if err := ob.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	ob2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer ob2.Close()

	rec, err := ob2.Get(10)
	if err != nil || string(rec.Payload) != "durable" {
		t.Fatalf("record lost across reopen: %+v err=%v", rec, err)
	}
}
