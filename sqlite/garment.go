package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/wardrobe"
	"github.com/google/uuid"
)

var _ wardrobe.GarmentService = (*GarmentService)(nil)

// GarmentService implements wardrobe.GarmentService using SQLite.
// Records are stored as their canonical JSON.
type GarmentService struct {
	db *DB
}

// NewGarmentService creates a new GarmentService.
func NewGarmentService(db *DB) *GarmentService {
	return &GarmentService{db: db}
}

// CreateGarment saves a new garment.
func (s *GarmentService) CreateGarment(ctx context.Context, g *wardrobe.Garment, payload []byte) error {
	if err := g.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(g.Record)
	if err != nil {
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "encode record")
	}

	g.ID = uuid.New().String()
	g.CreatedAt = time.Now().UTC()
	g.SourceHash = hashPayload(payload)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO garments (id, variant, source, source_hash, is_clothing, record, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, g.ID, string(g.Variant), g.Source, g.SourceHash, g.Record.IsClothing, string(data),
		g.CreatedAt.Format(timeFormat))

	return err
}

// FindGarmentByID retrieves a garment by ID.
func (s *GarmentService) FindGarmentByID(ctx context.Context, id string) (*wardrobe.Garment, error) {
	garments, err := s.FindGarments(ctx, wardrobe.GarmentFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(garments) == 0 {
		return nil, wardrobe.Errorf(wardrobe.ENOTFOUND, "garment not found")
	}
	return garments[0], nil
}

// FindGarments retrieves garments matching the filter, newest first.
func (s *GarmentService) FindGarments(ctx context.Context, filter wardrobe.GarmentFilter) ([]*wardrobe.Garment, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, variant, source, source_hash, record, created_at FROM garments WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Variant != nil {
		query.WriteString(" AND variant = ?")
		args = append(args, string(*filter.Variant))
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.IsClothing != nil {
		query.WriteString(" AND is_clothing = ?")
		args = append(args, *filter.IsClothing)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var garments []*wardrobe.Garment
	for rows.Next() {
		g, err := scanGarment(rows)
		if err != nil {
			return nil, err
		}
		garments = append(garments, g)
	}

	return garments, rows.Err()
}

// DeleteGarment permanently removes a garment.
func (s *GarmentService) DeleteGarment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM garments WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wardrobe.Errorf(wardrobe.ENOTFOUND, "garment not found")
	}
	return nil
}

func scanGarment(rows *sql.Rows) (*wardrobe.Garment, error) {
	var g wardrobe.Garment
	var variant, record, createdAt string

	if err := rows.Scan(&g.ID, &variant, &g.Source, &g.SourceHash, &record, &createdAt); err != nil {
		return nil, err
	}

	g.Variant = wardrobe.Variant(variant)
	rec, err := wardrobe.DecodeRecordJSON([]byte(record), g.Variant)
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EINTERNAL, err, "decode stored record %s", g.ID)
	}
	g.Record = rec

	if g.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &g, nil
}
