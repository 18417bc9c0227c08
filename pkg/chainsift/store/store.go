package store

import "context"

// Record is one extracted supply-chain sentence with its contract
// context. Field order matches the output columns.
type Record struct {
	CompanyID     string
	CompanyName   string
	ContractID    string
	EffectiveDate string
	Sentence      string
}

// Store persists records produced by the extraction pipeline. Batches
// arrive once per company; a failed batch is logged by the caller and
// must not poison later batches.
type Store interface {
	Close() error
	AppendBatch(ctx context.Context, recs []Record) error
}

// Multi fans batches out to several stores. Every store sees every
// batch; the first error encountered is returned.
func Multi(stores ...Store) Store {
	return multiStore(stores)
}

type multiStore []Store

func (m multiStore) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiStore) AppendBatch(ctx context.Context, recs []Record) error {
	var first error
	for _, s := range m {
		if err := s.AppendBatch(ctx, recs); err != nil && first == nil {
			first = err
		}
	}
	return first
}
