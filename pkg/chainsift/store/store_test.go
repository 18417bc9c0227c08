package store

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	appendErr error
	closeErr  error
	batches   int
	closed    bool
}

func (f *fakeStore) AppendBatch(ctx context.Context, recs []Record) error {
	f.batches++
	return f.appendErr
}

func (f *fakeStore) Close() error {
	f.closed = true
	return f.closeErr
}

func TestMultiFansOut(t *testing.T) {
	a, b := &fakeStore{}, &fakeStore{}
	m := Multi(a, b)

	if err := m.AppendBatch(context.Background(), []Record{{CompanyID: "1"}}); err != nil {
		t.Fatal(err)
	}
	if a.batches != 1 || b.batches != 1 {
		t.Errorf("Both stores should see the batch: %d, %d", a.batches, b.batches)
	}
}

func TestMultiFailingSinkDoesNotStopOthers(t *testing.T) {
	boom := errors.New("disk full")
	a, b := &fakeStore{appendErr: boom}, &fakeStore{}
	m := Multi(a, b)

	err := m.AppendBatch(context.Background(), []Record{{CompanyID: "1"}})
	if !errors.Is(err, boom) {
		t.Errorf("Expected the failing sink's error, got %v", err)
	}
	if b.batches != 1 {
		t.Error("The healthy sink must still receive the batch")
	}
}

func TestMultiCloseClosesAll(t *testing.T) {
	boom := errors.New("close failed")
	a, b := &fakeStore{closeErr: boom}, &fakeStore{}
	m := Multi(a, b)

	if err := m.Close(); !errors.Is(err, boom) {
		t.Errorf("Expected the first close error, got %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("Every store must be closed")
	}
}
