package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// insertChunkSize ограничивает число строк в одном INSERT (6 параметров на строку)
const insertChunkSize = 1000

var slotColumns = []string{
	"id",
	"business_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"batch_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"booked_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository хранилище слотов, авторитетный источник их состояния
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor, txManager TransactionManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Persist сохраняет пакет кандидатов с частичным успехом.
// Строка услуги блокируется FOR UPDATE, поэтому сохранения для одной
// (business, service) выполняются строго последовательно и видят актуальные слоты
func (r *Repository) Persist(ctx context.Context, batch domain.PersistBatch) (*domain.PersistResult, error) {
	result := &domain.PersistResult{
		Accepted: make([]*domain.Slot, 0),
		Skipped:  make([]domain.SkippedCandidate, 0),
	}

	if len(batch.Candidates) == 0 {
		return result, nil
	}

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := r.lockService(txCtx, batch.BusinessID, batch.ServiceID); err != nil {
			return err
		}

		minStart, maxEnd := candidateBounds(batch.Candidates)

		existing, err := r.activeInRange(txCtx, batch.ServiceID, minStart, maxEnd)
		if err != nil {
			return err
		}

		accepted, skipped := domain.PlanBatch(existing, batch.Candidates)
		result.Skipped = append(result.Skipped, skipped...)

		for start := 0; start < len(accepted); start += insertChunkSize {
			end := start + insertChunkSize
			if end > len(accepted) {
				end = len(accepted)
			}

			inserted, err := r.insert(txCtx, batch, accepted[start:end])
			if err != nil {
				return err
			}
			result.Accepted = append(result.Accepted, inserted...)
		}

		return nil
	})
	if err != nil {
		if isRepositoryError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Persist - %v", ErrTransaction, err)
	}

	sort.Slice(result.Accepted, func(i, j int) bool {
		return result.Accepted[i].Start.Before(result.Accepted[j].Start)
	})

	return result, nil
}

// GetByID получает слот по ID без привязки к бизнесу
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"s.id": id})
}

// GetForBusiness получает слот, принадлежащий бизнесу.
// Чужой слот неотличим от отсутствующего
func (r *Repository) GetForBusiness(ctx context.Context, businessID, id int64) (*domain.Slot, error) {
	return r.getOne(ctx, "GetForBusiness", squirrel.Eq{"s.id": id, "s.business_id": businessID})
}

// ListByBusiness возвращает инвентарь владельца в любом состоянии, упорядоченный по началу
func (r *Repository) ListByBusiness(ctx context.Context, businessID int64, filter domain.SlotFilter) ([]*domain.Slot, error) {
	builder := selectSlots().Where(squirrel.Eq{"s.business_id": businessID})

	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{"s.service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"s.status": string(*filter.Status)})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"s.start_time": filter.From.UTC()})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"s.start_time": filter.To.UTC()})
	}

	return r.list(ctx, "ListByBusiness", builder.OrderBy("s.start_time ASC", "s.id ASC"))
}

// ListAvailable возвращает только свободные слоты услуги бизнеса в окне [From, To).
// Услуга проверяется через принадлежность бизнесу, а не только по ID
func (r *Repository) ListAvailable(ctx context.Context, businessID, serviceID int64, window domain.TimeRange) ([]*domain.Slot, error) {
	builder := selectSlots().
		Where(squirrel.Eq{
			"s.business_id":  businessID,
			"s.service_id":   serviceID,
			"s.status":       string(domain.SlotAvailable),
			"sv.business_id": businessID,
			"sv.deleted_at":  nil,
		}).
		Where(squirrel.GtOrEq{"s.start_time": window.From.UTC()})

	if !window.To.IsZero() {
		builder = builder.Where(squirrel.Lt{"s.start_time": window.To.UTC()})
	}

	return r.list(ctx, "ListAvailable", builder.OrderBy("s.start_time ASC", "s.id ASC"))
}

// Transition атомарно меняет состояние слота (compare-and-swap одним UPDATE).
// ErrStatusMismatch, если текущее состояние не равно t.From; ErrSlotNotFound, если слота нет
func (r *Repository) Transition(ctx context.Context, t domain.Transition) (*domain.Slot, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	at := t.At.UTC()

	builder := psqlbuilder.Update("slots").
		Set("status", string(t.To)).
		Set("updated_at", at)

	switch t.To {
	case domain.SlotBooked:
		builder = builder.
			Set("customer_name", t.Customer.Name).
			Set("customer_email", t.Customer.Email).
			Set("customer_phone", t.Customer.Phone).
			Set("booked_at", at)
	case domain.SlotCancelled:
		builder = builder.Set("cancelled_at", at)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": t.SlotID, "status": string(t.From)}).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...), false)
	if err == sql.ErrNoRows {
		return nil, r.explainMiss(ctx, t.SlotID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Transition - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// HasActiveFutureSlots проверяет, есть ли у услуги свободные или забронированные слоты,
// которые еще не закончились
func (r *Repository) HasActiveFutureSlots(ctx context.Context, businessID, serviceID int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{
			"business_id": businessID,
			"service_id":  serviceID,
			"status":      []string{string(domain.SlotAvailable), string(domain.SlotBooked)},
		}).
		Where(squirrel.Gt{"end_time": now.UTC()}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveFutureSlots - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveFutureSlots - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// lockService блокирует строку услуги до конца транзакции
func (r *Repository) lockService(ctx context.Context, businessID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID, "deleted_at": nil}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: lockService - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrServiceNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: lockService - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// activeInRange активные слоты услуги, которые могут пересечься с окном [from, to)
func (r *Repository) activeInRange(ctx context.Context, serviceID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.NotEq{"status": string(domain.SlotCancelled)}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Gt{"end_time": from.UTC()}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: activeInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: activeInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collect(rows, false, "activeInRange")
}

func (r *Repository) insert(ctx context.Context, batch domain.PersistBatch, candidates []domain.SlotCandidate) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns("business_id", "service_id", "start_time", "end_time", "status", "batch_id")

	for _, c := range candidates {
		builder = builder.Values(
			batch.BusinessID,
			batch.ServiceID,
			c.Start.UTC(),
			c.End.UTC(),
			string(domain.SlotAvailable),
			batch.BatchID,
		)
	}

	query, args, err := builder.Suffix("RETURNING " + strings.Join(slotColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: insert - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collect(rows, false, "insert")
}

// explainMiss различает отсутствующий слот и проигранный CAS
func (r *Repository) explainMiss(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build select query: %v", ErrBuildQuery, err)
	}

	var status string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Transition - execute select: %v", ErrExecQuery, err)
	}

	return fmt.Errorf("%w: slot id=%d is %s", ErrStatusMismatch, id, status)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSlots().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...), true)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}

	return slot, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return collect(rows, true, op)
}

// selectSlots SELECT слотов с денормализованным названием услуги
func selectSlots() squirrel.SelectBuilder {
	columns := make([]string, 0, len(slotColumns)+1)
	for _, c := range slotColumns {
		columns = append(columns, "s."+c)
	}
	columns = append(columns, "sv.name")

	return psqlbuilder.Select(columns...).
		From("slots s").
		Join("services sv ON sv.id = s.service_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func collect(rows *sql.Rows, withName bool, op string) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}
	return slots, nil
}

func scanSlot(row rowScanner, withName bool) (*domain.Slot, error) {
	var (
		slot          domain.Slot
		status        string
		customerName  sql.NullString
		customerEmail sql.NullString
		customerPhone sql.NullString
		bookedAt      sql.NullTime
		cancelledAt   sql.NullTime
	)

	dest := []interface{}{
		&slot.ID,
		&slot.BusinessID,
		&slot.ServiceID,
		&slot.Start,
		&slot.End,
		&status,
		&slot.BatchID,
		&customerName,
		&customerEmail,
		&customerPhone,
		&bookedAt,
		&cancelledAt,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	}
	if withName {
		dest = append(dest, &slot.ServiceName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	slot.Status = domain.SlotStatus(status)
	slot.Start = slot.Start.UTC()
	slot.End = slot.End.UTC()
	slot.CreatedAt = slot.CreatedAt.UTC()
	slot.UpdatedAt = slot.UpdatedAt.UTC()

	if customerName.Valid {
		slot.Customer = &domain.Customer{
			Name:  customerName.String,
			Email: customerEmail.String,
		}
		if customerPhone.Valid {
			phone := customerPhone.String
			slot.Customer.Phone = &phone
		}
	}
	if bookedAt.Valid {
		t := bookedAt.Time.UTC()
		slot.BookedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		slot.CancelledAt = &t
	}

	return &slot, nil
}

func candidateBounds(candidates []domain.SlotCandidate) (time.Time, time.Time) {
	minStart, maxEnd := candidates[0].Start, candidates[0].End
	for _, c := range candidates[1:] {
		if c.Start.Before(minStart) {
			minStart = c.Start
		}
		if c.End.After(maxEnd) {
			maxEnd = c.End
		}
	}
	return minStart, maxEnd
}

func isRepositoryError(err error) bool {
	for _, target := range []error{ErrServiceNotFound, ErrBuildQuery, ErrExecQuery, ErrScanRow} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
