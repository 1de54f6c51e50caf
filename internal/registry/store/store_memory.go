// Package store persists lands, purchases, payments, and transfers.
//
// Both implementations serialize writers per land inside RunInTx and carry
// the open transaction in the context, so store calls made with that context
// join it. Calls made outside RunInTx commit on their own.
package store

import (
	"cmp"
	"context"
	"hash/fnv"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/sentinel"
)

const (
	numShards        = 128
	defaultTxTimeout = 5 * time.Second
)

// tables holds one version of every entity map. The committed state and each
// open transaction's write set use the same shape.
type tables struct {
	lands       map[id.LandID]*models.Land
	buyRequests map[id.BuyRequestID]*models.BuyRequest
	payments    map[id.PaymentID]*models.Payment
	workflows   map[id.WorkflowID]*models.TransferWorkflow
	records     map[id.TransferRecordID]*models.TransferRecord
}

func newTables() tables {
	return tables{
		lands:       make(map[id.LandID]*models.Land),
		buyRequests: make(map[id.BuyRequestID]*models.BuyRequest),
		payments:    make(map[id.PaymentID]*models.Payment),
		workflows:   make(map[id.WorkflowID]*models.TransferWorkflow),
		records:     make(map[id.TransferRecordID]*models.TransferRecord),
	}
}

// InMemoryStore keeps committed entities in maps. Committed values are never
// mutated in place: commit swaps in fresh copies, so readers holding an old
// pointer after releasing the lock see a consistent snapshot.
type InMemoryStore struct {
	mu      sync.RWMutex
	data    tables
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{data: newTables(), timeout: defaultTxTimeout}
}

type memTxKey struct{}

// memTx buffers writes until commit.
type memTx struct {
	store  *InMemoryStore
	writes tables
}

// RunInTx runs fn with writes buffered and commits them only if fn succeeds.
// Transactions for the same land run one at a time. A nested call joins the
// outer transaction.
func (s *InMemoryStore) RunInTx(ctx context.Context, landID id.LandID, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok && tx.store == s {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	shard := &s.shards[shardFor(landID)]
	shard.Lock()
	defer shard.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	tx := &memTx{store: s, writes: newTables()}
	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		return err
	}
	return s.commit(tx.writes)
}

func shardFor(landID id.LandID) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(landID.String()))
	return h.Sum32() % numShards
}

// view returns the transaction bound to ctx, or a fresh single-call one.
func (s *InMemoryStore) view(ctx context.Context) (*memTx, bool) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok && tx.store == s {
		return tx, true
	}
	return &memTx{store: s, writes: newTables()}, false
}

// write applies op in the caller's transaction or commits it immediately.
func (s *InMemoryStore) write(ctx context.Context, op func(tx *memTx) error) error {
	tx, inTx := s.view(ctx)
	if err := op(tx); err != nil {
		return err
	}
	if inTx {
		return nil
	}
	return s.commit(tx.writes)
}

// commit re-checks uniqueness against the latest committed state, since
// transactions on other lands may have committed meanwhile.
func (s *InMemoryStore) commit(w tables) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lands := mergeLocked(s.data.lands, w.lands)
	for _, l := range w.lands {
		if landConflict(lands, l) {
			return sentinel.ErrConflict
		}
	}
	brs := mergeLocked(s.data.buyRequests, w.buyRequests)
	for _, b := range w.buyRequests {
		if buyRequestConflict(brs, b) {
			return sentinel.ErrConflict
		}
	}
	payments := mergeLocked(s.data.payments, w.payments)
	for _, p := range w.payments {
		if paymentConflict(payments, p) {
			return sentinel.ErrConflict
		}
	}
	workflows := mergeLocked(s.data.workflows, w.workflows)
	for _, wf := range w.workflows {
		if workflowConflict(workflows, wf) {
			return sentinel.ErrConflict
		}
	}
	records := mergeLocked(s.data.records, w.records)
	for _, r := range w.records {
		if recordConflict(records, r) {
			return sentinel.ErrConflict
		}
	}

	maps.Copy(s.data.lands, w.lands)
	maps.Copy(s.data.buyRequests, w.buyRequests)
	maps.Copy(s.data.payments, w.payments)
	maps.Copy(s.data.workflows, w.workflows)
	maps.Copy(s.data.records, w.records)
	return nil
}

func sortBy[V any](rows []*V, key func(*V) time.Time) {
	slices.SortStableFunc(rows, func(a, b *V) int { return key(a).Compare(key(b)) })
}

// mergeLocked lists committed rows overlaid with writes. Caller holds mu.
func mergeLocked[K comparable, V any](base, writes map[K]*V) []*V {
	out := make([]*V, 0, len(base)+len(writes))
	for k, v := range base {
		if _, ok := writes[k]; !ok {
			out = append(out, v)
		}
	}
	for _, v := range writes {
		out = append(out, v)
	}
	return out
}

func merge[K comparable, V any](mu *sync.RWMutex, base, writes map[K]*V) []*V {
	mu.RLock()
	defer mu.RUnlock()
	return mergeLocked(base, writes)
}

func lookup[K comparable, V any](mu *sync.RWMutex, base, writes map[K]*V, key K) (*V, bool) {
	if v, ok := writes[key]; ok {
		return v, true
	}
	mu.RLock()
	defer mu.RUnlock()
	v, ok := base[key]
	return v, ok
}

func landConflict(rows []*models.Land, l *models.Land) bool {
	for _, r := range rows {
		if r.ID != l.ID && strings.EqualFold(r.SurveyNumber, l.SurveyNumber) {
			return true
		}
	}
	return false
}

func buyRequestConflict(rows []*models.BuyRequest, b *models.BuyRequest) bool {
	if !b.Status.IsOpen() {
		return false
	}
	for _, r := range rows {
		if r.ID != b.ID && r.LandID == b.LandID && r.BuyerID == b.BuyerID && r.Status.IsOpen() {
			return true
		}
	}
	return false
}

func paymentConflict(rows []*models.Payment, p *models.Payment) bool {
	for _, r := range rows {
		if r.ID == p.ID {
			continue
		}
		if r.TxID == p.TxID {
			return true
		}
		if r.LandID == p.LandID && r.Status.IsActive() && p.Status.IsActive() {
			return true
		}
	}
	return false
}

func workflowConflict(rows []*models.TransferWorkflow, w *models.TransferWorkflow) bool {
	for _, r := range rows {
		if r.ID != w.ID && r.PaymentID == w.PaymentID {
			return true
		}
	}
	return false
}

func recordConflict(rows []*models.TransferRecord, rec *models.TransferRecord) bool {
	for _, r := range rows {
		if r.ID != rec.ID && r.PaymentID == rec.PaymentID {
			return true
		}
	}
	return false
}

// Lands

func (s *InMemoryStore) CreateLand(ctx context.Context, land *models.Land) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.lands, tx.writes.lands, land.ID); ok {
			return sentinel.ErrConflict
		}
		if landConflict(merge(&s.mu, s.data.lands, tx.writes.lands), land) {
			return sentinel.ErrConflict
		}
		tx.writes.lands[land.ID] = land.Clone()
		return nil
	})
}

func (s *InMemoryStore) SaveLand(ctx context.Context, land *models.Land) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.lands, tx.writes.lands, land.ID); !ok {
			return sentinel.ErrNotFound
		}
		if landConflict(merge(&s.mu, s.data.lands, tx.writes.lands), land) {
			return sentinel.ErrConflict
		}
		tx.writes.lands[land.ID] = land.Clone()
		return nil
	})
}

func (s *InMemoryStore) FindLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	tx, _ := s.view(ctx)
	l, ok := lookup(&s.mu, s.data.lands, tx.writes.lands, landID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return l.Clone(), nil
}

func (s *InMemoryStore) ListLands(ctx context.Context, filter models.LandFilter) ([]*models.Land, error) {
	tx, _ := s.view(ctx)
	var out []*models.Land
	for _, l := range merge(&s.mu, s.data.lands, tx.writes.lands) {
		if filter.Matches(l) {
			out = append(out, l.Clone())
		}
	}
	sortBy(out, func(l *models.Land) time.Time { return l.CreatedAt })
	return out, nil
}

// Buy requests

func (s *InMemoryStore) CreateBuyRequest(ctx context.Context, br *models.BuyRequest) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.buyRequests, tx.writes.buyRequests, br.ID); ok {
			return sentinel.ErrConflict
		}
		if buyRequestConflict(merge(&s.mu, s.data.buyRequests, tx.writes.buyRequests), br) {
			return sentinel.ErrConflict
		}
		tx.writes.buyRequests[br.ID] = br.Clone()
		return nil
	})
}

func (s *InMemoryStore) SaveBuyRequest(ctx context.Context, br *models.BuyRequest) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.buyRequests, tx.writes.buyRequests, br.ID); !ok {
			return sentinel.ErrNotFound
		}
		if buyRequestConflict(merge(&s.mu, s.data.buyRequests, tx.writes.buyRequests), br) {
			return sentinel.ErrConflict
		}
		tx.writes.buyRequests[br.ID] = br.Clone()
		return nil
	})
}

func (s *InMemoryStore) FindBuyRequest(ctx context.Context, brID id.BuyRequestID) (*models.BuyRequest, error) {
	tx, _ := s.view(ctx)
	b, ok := lookup(&s.mu, s.data.buyRequests, tx.writes.buyRequests, brID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return b.Clone(), nil
}

func (s *InMemoryStore) ListBuyRequests(ctx context.Context, filter models.BuyRequestFilter) ([]*models.BuyRequest, error) {
	tx, _ := s.view(ctx)
	var out []*models.BuyRequest
	for _, b := range merge(&s.mu, s.data.buyRequests, tx.writes.buyRequests) {
		if filter.Matches(b) {
			out = append(out, b.Clone())
		}
	}
	sortBy(out, func(b *models.BuyRequest) time.Time { return b.RequestedAt })
	return out, nil
}

// Payments

func (s *InMemoryStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.payments, tx.writes.payments, p.ID); ok {
			return sentinel.ErrConflict
		}
		if paymentConflict(merge(&s.mu, s.data.payments, tx.writes.payments), p) {
			return sentinel.ErrConflict
		}
		tx.writes.payments[p.ID] = p.Clone()
		return nil
	})
}

func (s *InMemoryStore) SavePayment(ctx context.Context, p *models.Payment) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.payments, tx.writes.payments, p.ID); !ok {
			return sentinel.ErrNotFound
		}
		if paymentConflict(merge(&s.mu, s.data.payments, tx.writes.payments), p) {
			return sentinel.ErrConflict
		}
		tx.writes.payments[p.ID] = p.Clone()
		return nil
	})
}

func (s *InMemoryStore) FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	tx, _ := s.view(ctx)
	p, ok := lookup(&s.mu, s.data.payments, tx.writes.payments, paymentID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *InMemoryStore) FindPaymentByTxID(ctx context.Context, txID string) (*models.Payment, error) {
	tx, _ := s.view(ctx)
	for _, p := range merge(&s.mu, s.data.payments, tx.writes.payments) {
		if p.TxID == txID {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.Payment, error) {
	tx, _ := s.view(ctx)
	var out []*models.Payment
	for _, p := range merge(&s.mu, s.data.payments, tx.writes.payments) {
		if filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	sortBy(out, func(p *models.Payment) time.Time { return p.CreatedAt })
	return out, nil
}

// Transfer workflows

func (s *InMemoryStore) CreateWorkflow(ctx context.Context, w *models.TransferWorkflow) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.workflows, tx.writes.workflows, w.ID); ok {
			return sentinel.ErrConflict
		}
		if workflowConflict(merge(&s.mu, s.data.workflows, tx.writes.workflows), w) {
			return sentinel.ErrConflict
		}
		tx.writes.workflows[w.ID] = w.Clone()
		return nil
	})
}

func (s *InMemoryStore) SaveWorkflow(ctx context.Context, w *models.TransferWorkflow) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.workflows, tx.writes.workflows, w.ID); !ok {
			return sentinel.ErrNotFound
		}
		tx.writes.workflows[w.ID] = w.Clone()
		return nil
	})
}

func (s *InMemoryStore) FindWorkflow(ctx context.Context, workflowID id.WorkflowID) (*models.TransferWorkflow, error) {
	tx, _ := s.view(ctx)
	w, ok := lookup(&s.mu, s.data.workflows, tx.writes.workflows, workflowID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return w.Clone(), nil
}

func (s *InMemoryStore) FindWorkflowByPayment(ctx context.Context, paymentID id.PaymentID) (*models.TransferWorkflow, error) {
	tx, _ := s.view(ctx)
	for _, w := range merge(&s.mu, s.data.workflows, tx.writes.workflows) {
		if w.PaymentID == paymentID {
			return w.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListWorkflows(ctx context.Context, filter models.WorkflowFilter) ([]*models.TransferWorkflow, error) {
	tx, _ := s.view(ctx)
	var out []*models.TransferWorkflow
	for _, w := range merge(&s.mu, s.data.workflows, tx.writes.workflows) {
		if filter.Matches(w) {
			out = append(out, w.Clone())
		}
	}
	sortBy(out, func(w *models.TransferWorkflow) time.Time { return w.CreatedAt })
	return out, nil
}

// Transfer records

func (s *InMemoryStore) CreateTransferRecord(ctx context.Context, rec *models.TransferRecord) error {
	return s.write(ctx, func(tx *memTx) error {
		if _, ok := lookup(&s.mu, s.data.records, tx.writes.records, rec.ID); ok {
			return sentinel.ErrConflict
		}
		if recordConflict(merge(&s.mu, s.data.records, tx.writes.records), rec) {
			return sentinel.ErrConflict
		}
		tx.writes.records[rec.ID] = rec.Clone()
		return nil
	})
}

func (s *InMemoryStore) FindTransferRecord(ctx context.Context, recordID id.TransferRecordID) (*models.TransferRecord, error) {
	tx, _ := s.view(ctx)
	r, ok := lookup(&s.mu, s.data.records, tx.writes.records, recordID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return r.Clone(), nil
}

// LatestTransferRecord returns the most recent transfer of a land.
func (s *InMemoryStore) LatestTransferRecord(ctx context.Context, landID id.LandID) (*models.TransferRecord, error) {
	records, err := s.ListTransferRecords(ctx, landID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return records[len(records)-1], nil
}

// ListTransferRecords returns a land's transfer history, oldest first. Records
// completed at the same instant are ordered by id.
func (s *InMemoryStore) ListTransferRecords(ctx context.Context, landID id.LandID) ([]*models.TransferRecord, error) {
	tx, _ := s.view(ctx)
	var out []*models.TransferRecord
	for _, r := range merge(&s.mu, s.data.records, tx.writes.records) {
		if r.LandID == landID {
			out = append(out, r.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.TransferRecord) int {
		return cmp.Or(a.CompletedAt.Compare(b.CompletedAt), strings.Compare(a.ID.String(), b.ID.String()))
	})
	return out, nil
}
