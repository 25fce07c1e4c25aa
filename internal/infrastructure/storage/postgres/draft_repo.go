package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"offerte/internal/core/apperror"
	"offerte/internal/domain/offer"
)

var tracer = otel.Tracer("offerte/storage")

// CompressionAlgo specifies the compression algorithm used for a snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// snapshotCompressThreshold is the size above which snapshots are
// zstd-compressed before storage.
const snapshotCompressThreshold = 10 * 1024

// DraftRow is the stored form of an offer draft. The aggregate itself
// is persisted as a JSON snapshot, compressed when large, so schema
// churn in the wizard never needs a migration.
type DraftRow struct {
	ID                 uuid.UUID       `db:"id"`
	Name               string          `db:"name"`
	Snapshot           json.RawMessage `db:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo"`
	Version            int             `db:"version"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

// Draft is a stored offer draft with its decoded aggregate.
type Draft struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Offer     *offer.Offer `json:"offer"`
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// DraftSummary is the listing projection: no snapshot payload.
type DraftSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

const draftTable = "offer_drafts"

var draftColumns = []string{
	"id", "name", "snapshot", "snapshot_compressed", "compression_algo",
	"version", "created_at", "updated_at",
}

// DraftRepo persists offer drafts.
type DraftRepo struct {
	pool    *Pool
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewDraftRepo creates a draft repository with its zstd codec.
func NewDraftRepo(pool *Pool) (*DraftRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &DraftRepo{pool: pool, encoder: encoder, decoder: decoder}, nil
}

// builder returns a squirrel builder with PostgreSQL placeholder format.
func (r *DraftRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create stores a new draft and returns it with its generated id.
func (r *DraftRepo) Create(ctx context.Context, name string, o *offer.Offer) (*Draft, error) {
	ctx, span := tracer.Start(ctx, "draft.create")
	defer span.End()

	now := time.Now().UTC()
	row := DraftRow{
		ID:        uuid.New(),
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.encodeSnapshot(&row, o); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("draft.id", row.ID.String()))

	q := r.builder().
		Insert(draftTable).
		Columns(draftColumns...).
		Values(row.ID, row.Name, row.Snapshot, row.SnapshotCompressed,
			row.CompressionAlgo, row.Version, row.CreatedAt, row.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return nil, apperror.NewDatabase("create draft", err)
	}

	return &Draft{
		ID:        row.ID,
		Name:      row.Name,
		Offer:     o,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Get loads a draft with its decoded aggregate.
func (r *DraftRepo) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	ctx, span := tracer.Start(ctx, "draft.get",
		trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	q := r.builder().
		Select(draftColumns...).
		From(draftTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row DraftRow
	if err := pgxscan.Get(ctx, r.pool.Pool, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("draft", id)
		}
		return nil, apperror.NewDatabase("get draft", err)
	}

	return r.decodeRow(&row)
}

// Update replaces a draft's snapshot with optimistic locking: the
// caller passes the version it read, and a stale version is reported
// as invalid input so the client can reload and retry.
func (r *DraftRepo) Update(ctx context.Context, id uuid.UUID, version int, name string, o *offer.Offer) (*Draft, error) {
	ctx, span := tracer.Start(ctx, "draft.update",
		trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	row := DraftRow{UpdatedAt: time.Now().UTC()}
	if err := r.encodeSnapshot(&row, o); err != nil {
		return nil, err
	}

	q := r.builder().
		Update(draftTable).
		Set("name", name).
		Set("snapshot", row.Snapshot).
		Set("snapshot_compressed", row.SnapshotCompressed).
		Set("compression_algo", row.CompressionAlgo).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", row.UpdatedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewDatabase("update draft", err)
	}
	if result.RowsAffected() == 0 {
		// Either the draft is gone or someone else saved in between.
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperror.NewInvalidInput("draft was modified concurrently").
			WithDetail("id", id).
			WithDetail("expectedVersion", version)
	}

	return &Draft{
		ID:        id,
		Name:      name,
		Offer:     o,
		Version:   version + 1,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// List returns draft summaries, newest first.
func (r *DraftRepo) List(ctx context.Context, limit, offset int) ([]DraftSummary, error) {
	ctx, span := tracer.Start(ctx, "draft.list")
	defer span.End()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := r.builder().
		Select("id", "name", "version", "created_at", "updated_at").
		From(draftTable).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []DraftSummary
	if err := pgxscan.Select(ctx, r.pool.Pool, &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase("list drafts", err)
	}
	return rows, nil
}

// Delete removes a draft.
func (r *DraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "draft.delete",
		trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	q := r.builder().
		Delete(draftTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase("delete draft", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("draft", id)
	}
	return nil
}

// encodeSnapshot marshals the aggregate and compresses large payloads.
func (r *DraftRepo) encodeSnapshot(row *DraftRow, o *offer.Offer) error {
	snapshot, err := json.Marshal(o)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("marshal draft snapshot: %w", err))
	}

	row.CompressionAlgo = CompressionNone
	row.Snapshot = snapshot
	if len(snapshot) > snapshotCompressThreshold {
		row.SnapshotCompressed = r.encoder.EncodeAll(snapshot, nil)
		row.Snapshot = nil
		row.CompressionAlgo = CompressionZstd
	}
	return nil
}

// decodeRow restores the aggregate from a stored row.
func (r *DraftRepo) decodeRow(row *DraftRow) (*Draft, error) {
	snapshot := row.Snapshot
	if row.CompressionAlgo == CompressionZstd && len(row.SnapshotCompressed) > 0 {
		decompressed, err := r.decoder.DecodeAll(row.SnapshotCompressed, nil)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("decompress draft snapshot: %w", err))
		}
		snapshot = decompressed
	}

	var o offer.Offer
	if err := json.Unmarshal(snapshot, &o); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("unmarshal draft snapshot: %w", err))
	}

	return &Draft{
		ID:        row.ID,
		Name:      row.Name,
		Offer:     &o,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
