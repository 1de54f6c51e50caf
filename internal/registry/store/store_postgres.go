package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"landtitle/internal/platform/postgres"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/sentinel"
	txcontext "landtitle/pkg/platform/tx"
)

// PostgresStore persists registry entities in PostgreSQL. RunInTx holds a
// transaction-scoped advisory lock keyed by land id, so writers for one land
// queue behind each other while rows are re-read inside the transaction.
type PostgresStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, timeout: defaultTxTimeout}
}

// WithTxTimeout overrides the default transaction timeout.
func (s *PostgresStore) WithTxTimeout(d time.Duration) *PostgresStore {
	if d > 0 {
		s.timeout = d
	}
	return s
}

func (s *PostgresStore) execer(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

func (s *PostgresStore) RunInTx(ctx context.Context, landID id.LandID, fn func(ctx context.Context) error) error {
	if tx, ok := txcontext.From(ctx); ok {
		if err := lockLand(ctx, tx, landID); err != nil {
			return err
		}
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

	err := txcontext.Run(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockLand(ctx, tx, landID); err != nil {
			return err
		}
		return fn(ctx)
	})
	if postgres.IsUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	return err
}

func lockLand(ctx context.Context, tx *sql.Tx, landID id.LandID) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, landID.String()); err != nil {
		return fmt.Errorf("lock land: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func writeErr(err error, what string) error {
	if postgres.IsUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	return fmt.Errorf("%s: %w", what, err)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func nullUUID(u uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: u, Valid: u != uuid.Nil}
}

func jsonArg(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func marshalPhoto(p *models.Photo) (any, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal photo: %w", err)
	}
	return string(b), nil
}

func unmarshalPhoto(b []byte) (*models.Photo, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var p models.Photo
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal photo: %w", err)
	}
	return &p, nil
}

// Lands

const landColumns = `id, location, survey_number, area, boundary, boundary_area_m2, price,
	owner_id, owner_wallet, verification_status, verification_comments, verified_by,
	status, is_listed, listing_price, listing_description, created_at, updated_at`

func landArgs(l *models.Land) []any {
	var boundaryArea sql.NullFloat64
	if len(l.Boundary) > 0 {
		boundaryArea = sql.NullFloat64{Float64: l.BoundaryAreaM2, Valid: true}
	}
	var listingPrice decimal.NullDecimal
	if l.ListingPrice != nil {
		listingPrice = decimal.NewNullDecimal(*l.ListingPrice)
	}
	return []any{
		uuid.UUID(l.ID), l.Location, l.SurveyNumber, l.Area, jsonArg(l.Boundary), boundaryArea, l.Price,
		uuid.UUID(l.OwnerID), l.OwnerWallet, string(l.VerificationStatus), l.VerificationComments,
		nullUUID(uuid.UUID(l.VerifiedBy)), string(l.Status), l.IsListed, listingPrice,
		l.ListingDescription, l.CreatedAt, l.UpdatedAt,
	}
}

func scanLand(row rowScanner) (*models.Land, error) {
	var (
		l                             models.Land
		landID, ownerID               uuid.UUID
		verifiedBy                    uuid.NullUUID
		boundary                      []byte
		boundaryArea                  sql.NullFloat64
		listingPrice                  decimal.NullDecimal
		verificationStatus, landState string
	)
	err := row.Scan(&landID, &l.Location, &l.SurveyNumber, &l.Area, &boundary, &boundaryArea, &l.Price,
		&ownerID, &l.OwnerWallet, &verificationStatus, &l.VerificationComments, &verifiedBy,
		&landState, &l.IsListed, &listingPrice, &l.ListingDescription, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan land: %w", err)
	}
	l.ID = id.LandID(landID)
	l.OwnerID = id.UserID(ownerID)
	l.VerifiedBy = id.UserID(verifiedBy.UUID)
	l.Boundary = boundary
	l.BoundaryAreaM2 = boundaryArea.Float64
	l.VerificationStatus = models.VerificationStatus(verificationStatus)
	l.Status = models.LandStatus(landState)
	if listingPrice.Valid {
		p := listingPrice.Decimal
		l.ListingPrice = &p
	}
	return &l, nil
}

func (s *PostgresStore) CreateLand(ctx context.Context, land *models.Land) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO lands (`+landColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, landArgs(land)...)
	if err != nil {
		return writeErr(err, "insert land")
	}
	return nil
}

func (s *PostgresStore) SaveLand(ctx context.Context, land *models.Land) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE lands SET
			location = $2, survey_number = $3, area = $4, boundary = $5, boundary_area_m2 = $6,
			price = $7, owner_id = $8, owner_wallet = $9, verification_status = $10,
			verification_comments = $11, verified_by = $12, status = $13, is_listed = $14,
			listing_price = $15, listing_description = $16, created_at = $17, updated_at = $18
		WHERE id = $1
	`, landArgs(land)...)
	if err != nil {
		return writeErr(err, "update land")
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+landColumns+` FROM lands WHERE id = $1`, uuid.UUID(landID))
	return scanLand(row)
}

func (s *PostgresStore) ListLands(ctx context.Context, filter models.LandFilter) ([]*models.Land, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+landColumns+` FROM lands
		WHERE ($1::uuid IS NULL OR owner_id = $1)
		  AND (NOT $2 OR (verification_status = 'approved' AND is_listed AND status = 'listed'))
		ORDER BY created_at
	`, nullUUID(uuid.UUID(filter.OwnerID)), filter.AvailableOnly)
	if err != nil {
		return nil, fmt.Errorf("query lands: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanLand)
}

func collect[T any](rows *sql.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Buy requests

const buyRequestColumns = `id, land_id, buyer_id, seller_id, status, review_comments, reviewed_by, requested_at, updated_at`

func scanBuyRequest(row rowScanner) (*models.BuyRequest, error) {
	var (
		b                          models.BuyRequest
		brID, landID, buyer, owner uuid.UUID
		reviewedBy                 uuid.NullUUID
		status                     string
	)
	err := row.Scan(&brID, &landID, &buyer, &owner, &status, &b.ReviewComments, &reviewedBy, &b.RequestedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan buy request: %w", err)
	}
	b.ID = id.BuyRequestID(brID)
	b.LandID = id.LandID(landID)
	b.BuyerID = id.UserID(buyer)
	b.SellerID = id.UserID(owner)
	b.ReviewedBy = id.UserID(reviewedBy.UUID)
	b.Status = models.BuyRequestStatus(status)
	return &b, nil
}

func (s *PostgresStore) CreateBuyRequest(ctx context.Context, br *models.BuyRequest) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO buy_requests (`+buyRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		uuid.UUID(br.ID), uuid.UUID(br.LandID), uuid.UUID(br.BuyerID), uuid.UUID(br.SellerID),
		string(br.Status), br.ReviewComments, nullUUID(uuid.UUID(br.ReviewedBy)), br.RequestedAt, br.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "insert buy request")
	}
	return nil
}

func (s *PostgresStore) SaveBuyRequest(ctx context.Context, br *models.BuyRequest) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE buy_requests SET status = $2, review_comments = $3, reviewed_by = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(br.ID), string(br.Status), br.ReviewComments, nullUUID(uuid.UUID(br.ReviewedBy)), br.UpdatedAt)
	if err != nil {
		return writeErr(err, "update buy request")
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindBuyRequest(ctx context.Context, brID id.BuyRequestID) (*models.BuyRequest, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+buyRequestColumns+` FROM buy_requests WHERE id = $1`, uuid.UUID(brID))
	return scanBuyRequest(row)
}

func (s *PostgresStore) ListBuyRequests(ctx context.Context, filter models.BuyRequestFilter) ([]*models.BuyRequest, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, st := range filter.Statuses {
		statuses[i] = string(st)
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+buyRequestColumns+` FROM buy_requests
		WHERE ($1::uuid IS NULL OR land_id = $1)
		  AND ($2::uuid IS NULL OR buyer_id = $2)
		  AND ($3::uuid IS NULL OR seller_id = $3)
		  AND (cardinality($4::text[]) = 0 OR status = ANY($4::text[]))
		ORDER BY requested_at
	`,
		nullUUID(uuid.UUID(filter.LandID)), nullUUID(uuid.UUID(filter.BuyerID)),
		nullUUID(uuid.UUID(filter.SellerID)), pq.Array(statuses),
	)
	if err != nil {
		return nil, fmt.Errorf("query buy requests: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanBuyRequest)
}

// Payments

const paymentColumns = `id, buy_request_id, land_id, buyer_id, seller_id, amount, tx_id, payment_type,
	status, release_tx_id, release_destination, released_by, history, created_at, updated_at`

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		p                                  models.Payment
		paymentID, brID, landID, buyer, sl uuid.UUID
		releasedBy                         uuid.NullUUID
		paymentType, status                string
		history                            []byte
	)
	err := row.Scan(&paymentID, &brID, &landID, &buyer, &sl, &p.Amount, &p.TxID, &paymentType,
		&status, &p.ReleaseTxID, &p.ReleaseDestination, &releasedBy, &history, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	if err := json.Unmarshal(history, &p.History); err != nil {
		return nil, fmt.Errorf("unmarshal payment history: %w", err)
	}
	p.ID = id.PaymentID(paymentID)
	p.BuyRequestID = id.BuyRequestID(brID)
	p.LandID = id.LandID(landID)
	p.BuyerID = id.UserID(buyer)
	p.SellerID = id.UserID(sl)
	p.ReleasedBy = id.UserID(releasedBy.UUID)
	p.Type = models.PaymentType(paymentType)
	p.Status = models.PaymentStatus(status)
	return &p, nil
}

func (s *PostgresStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	history, err := json.Marshal(p.History)
	if err != nil {
		return fmt.Errorf("marshal payment history: %w", err)
	}
	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		uuid.UUID(p.ID), uuid.UUID(p.BuyRequestID), uuid.UUID(p.LandID), uuid.UUID(p.BuyerID),
		uuid.UUID(p.SellerID), p.Amount, p.TxID, string(p.Type), string(p.Status), p.ReleaseTxID,
		p.ReleaseDestination, nullUUID(uuid.UUID(p.ReleasedBy)), string(history), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr(err, "insert payment")
	}
	return nil
}

// SavePayment writes the mutable lifecycle columns. Amount and tx id are
// fixed at creation and never updated.
func (s *PostgresStore) SavePayment(ctx context.Context, p *models.Payment) error {
	history, err := json.Marshal(p.History)
	if err != nil {
		return fmt.Errorf("marshal payment history: %w", err)
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE payments SET
			status = $2, release_tx_id = $3, release_destination = $4, released_by = $5,
			history = $6, updated_at = $7, tx_id = $8
		WHERE id = $1
	`,
		uuid.UUID(p.ID), string(p.Status), p.ReleaseTxID, p.ReleaseDestination,
		nullUUID(uuid.UUID(p.ReleasedBy)), string(history), p.UpdatedAt, p.TxID,
	)
	if err != nil {
		return writeErr(err, "update payment")
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, uuid.UUID(paymentID))
	return scanPayment(row)
}

func (s *PostgresStore) FindPaymentByTxID(ctx context.Context, txID string) (*models.Payment, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE tx_id = $1`, txID)
	return scanPayment(row)
}

func (s *PostgresStore) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.Payment, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, st := range filter.Statuses {
		statuses[i] = string(st)
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE ($1::uuid IS NULL OR buyer_id = $1 OR seller_id = $1)
		  AND ($2::uuid IS NULL OR land_id = $2)
		  AND ($3 = '' OR payment_type = $3)
		  AND (cardinality($4::text[]) = 0 OR status = ANY($4::text[]))
		ORDER BY created_at
	`,
		nullUUID(uuid.UUID(filter.PartyID)), nullUUID(uuid.UUID(filter.LandID)),
		string(filter.Type), pq.Array(statuses),
	)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanPayment)
}

// Transfer workflows

const workflowColumns = `id, land_id, payment_id, payment_tx_id, seller_id, buyer_id, state,
	seller_photo, buyer_photo, decision, comments, decided_by, decided_at, attempt, history,
	created_at, updated_at`

func scanWorkflow(row rowScanner) (*models.TransferWorkflow, error) {
	var (
		w                                       models.TransferWorkflow
		workflowID, landID, paymentID, sl, buyr uuid.UUID
		decidedBy                               uuid.NullUUID
		decidedAt                               sql.NullTime
		state, decision                         string
		sellerPhoto, buyerPhoto, history        []byte
	)
	err := row.Scan(&workflowID, &landID, &paymentID, &w.PaymentTxID, &sl, &buyr, &state,
		&sellerPhoto, &buyerPhoto, &decision, &w.Comments, &decidedBy, &decidedAt, &w.Attempt, &history,
		&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan workflow: %w", err)
	}
	if w.SellerPhoto, err = unmarshalPhoto(sellerPhoto); err != nil {
		return nil, err
	}
	if w.BuyerPhoto, err = unmarshalPhoto(buyerPhoto); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &w.History); err != nil {
		return nil, fmt.Errorf("unmarshal workflow history: %w", err)
	}
	w.ID = id.WorkflowID(workflowID)
	w.LandID = id.LandID(landID)
	w.PaymentID = id.PaymentID(paymentID)
	w.SellerID = id.UserID(sl)
	w.BuyerID = id.UserID(buyr)
	w.State = models.WorkflowState(state)
	w.Decision = models.Decision(decision)
	w.DecidedBy = id.UserID(decidedBy.UUID)
	if decidedAt.Valid {
		t := decidedAt.Time
		w.DecidedAt = &t
	}
	return &w, nil
}

func workflowArgs(w *models.TransferWorkflow) ([]any, error) {
	sellerPhoto, err := marshalPhoto(w.SellerPhoto)
	if err != nil {
		return nil, err
	}
	buyerPhoto, err := marshalPhoto(w.BuyerPhoto)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(w.History)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow history: %w", err)
	}
	var decidedAt sql.NullTime
	if w.DecidedAt != nil {
		decidedAt = sql.NullTime{Time: *w.DecidedAt, Valid: true}
	}
	return []any{
		uuid.UUID(w.ID), uuid.UUID(w.LandID), uuid.UUID(w.PaymentID), w.PaymentTxID,
		uuid.UUID(w.SellerID), uuid.UUID(w.BuyerID), string(w.State), sellerPhoto, buyerPhoto,
		string(w.Decision), w.Comments, nullUUID(uuid.UUID(w.DecidedBy)), decidedAt, w.Attempt,
		string(history), w.CreatedAt, w.UpdatedAt,
	}, nil
}

func (s *PostgresStore) CreateWorkflow(ctx context.Context, w *models.TransferWorkflow) error {
	args, err := workflowArgs(w)
	if err != nil {
		return err
	}
	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO transfer_workflows (`+workflowColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, args...)
	if err != nil {
		return writeErr(err, "insert workflow")
	}
	return nil
}

func (s *PostgresStore) SaveWorkflow(ctx context.Context, w *models.TransferWorkflow) error {
	args, err := workflowArgs(w)
	if err != nil {
		return err
	}
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE transfer_workflows SET
			land_id = $2, payment_id = $3, payment_tx_id = $4, seller_id = $5, buyer_id = $6,
			state = $7, seller_photo = $8, buyer_photo = $9, decision = $10, comments = $11,
			decided_by = $12, decided_at = $13, attempt = $14, history = $15,
			created_at = $16, updated_at = $17
		WHERE id = $1
	`, args...)
	if err != nil {
		return writeErr(err, "update workflow")
	}
	return requireAffected(res)
}

func (s *PostgresStore) FindWorkflow(ctx context.Context, workflowID id.WorkflowID) (*models.TransferWorkflow, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+workflowColumns+` FROM transfer_workflows WHERE id = $1`, uuid.UUID(workflowID))
	return scanWorkflow(row)
}

func (s *PostgresStore) FindWorkflowByPayment(ctx context.Context, paymentID id.PaymentID) (*models.TransferWorkflow, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+workflowColumns+` FROM transfer_workflows WHERE payment_id = $1`, uuid.UUID(paymentID))
	return scanWorkflow(row)
}

func (s *PostgresStore) ListWorkflows(ctx context.Context, filter models.WorkflowFilter) ([]*models.TransferWorkflow, error) {
	states := make([]string, len(filter.States))
	for i, st := range filter.States {
		states[i] = string(st)
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+workflowColumns+` FROM transfer_workflows
		WHERE cardinality($1::text[]) = 0 OR state = ANY($1::text[])
		ORDER BY created_at
	`, pq.Array(states))
	if err != nil {
		return nil, fmt.Errorf("query workflows: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanWorkflow)
}

// Transfer records

const recordColumns = `id, land_id, seller_id, buyer_id, payment_id, tx_id, seller_photo, buyer_photo,
	survey_number, location, area, fingerprint, completed_at`

func scanRecord(row rowScanner) (*models.TransferRecord, error) {
	var (
		r                                     models.TransferRecord
		recordID, landID, sl, buyr, paymentID uuid.UUID
		sellerPhoto, buyerPhoto               []byte
	)
	err := row.Scan(&recordID, &landID, &sl, &buyr, &paymentID, &r.TxID, &sellerPhoto, &buyerPhoto,
		&r.SurveyNumber, &r.Location, &r.Area, &r.Fingerprint, &r.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan transfer record: %w", err)
	}
	if r.SellerPhoto, err = unmarshalPhoto(sellerPhoto); err != nil {
		return nil, err
	}
	if r.BuyerPhoto, err = unmarshalPhoto(buyerPhoto); err != nil {
		return nil, err
	}
	r.ID = id.TransferRecordID(recordID)
	r.LandID = id.LandID(landID)
	r.SellerID = id.UserID(sl)
	r.BuyerID = id.UserID(buyr)
	r.PaymentID = id.PaymentID(paymentID)
	return &r, nil
}

// CreateTransferRecord inserts the record. Records are never updated.
func (s *PostgresStore) CreateTransferRecord(ctx context.Context, rec *models.TransferRecord) error {
	sellerPhoto, err := marshalPhoto(rec.SellerPhoto)
	if err != nil {
		return err
	}
	buyerPhoto, err := marshalPhoto(rec.BuyerPhoto)
	if err != nil {
		return err
	}
	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO transfer_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		uuid.UUID(rec.ID), uuid.UUID(rec.LandID), uuid.UUID(rec.SellerID), uuid.UUID(rec.BuyerID),
		uuid.UUID(rec.PaymentID), rec.TxID, sellerPhoto, buyerPhoto, rec.SurveyNumber, rec.Location,
		rec.Area, rec.Fingerprint, rec.CompletedAt,
	)
	if err != nil {
		return writeErr(err, "insert transfer record")
	}
	return nil
}

func (s *PostgresStore) FindTransferRecord(ctx context.Context, recordID id.TransferRecordID) (*models.TransferRecord, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+recordColumns+` FROM transfer_records WHERE id = $1`, uuid.UUID(recordID))
	return scanRecord(row)
}

func (s *PostgresStore) LatestTransferRecord(ctx context.Context, landID id.LandID) (*models.TransferRecord, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM transfer_records
		WHERE land_id = $1
		ORDER BY completed_at DESC, id DESC
		LIMIT 1
	`, uuid.UUID(landID))
	return scanRecord(row)
}

func (s *PostgresStore) ListTransferRecords(ctx context.Context, landID id.LandID) ([]*models.TransferRecord, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+recordColumns+` FROM transfer_records
		WHERE land_id = $1
		ORDER BY completed_at, id
	`, uuid.UUID(landID))
	if err != nil {
		return nil, fmt.Errorf("query transfer records: %w", err)
	}
	defer rows.Close()
	return collect(rows, scanRecord)
}
