package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrFrameNotFound is returned when no row exists for the requested
// (composition, frame) pair.
var ErrFrameNotFound = errors.New("frame not found")

// ReadFrame fetches one cached frame. Returns ErrFrameNotFound (wrapped)
// when the frame has not been rendered.
func (s *Store) ReadFrame(ctx context.Context, compositionID string, frame int) (FrameRecord, error) {
	var rec FrameRecord
	var tree string
	err := s.db.QueryRowContext(ctx, `
		SELECT composition_id, frame, digest, tree, engine_version, job_token
		FROM frames
		WHERE composition_id = ? AND frame = ?
	`, compositionID, frame).Scan(
		&rec.CompositionID, &rec.Frame, &rec.Digest, &tree, &rec.EngineVersion, &rec.JobToken,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return FrameRecord{}, fmt.Errorf("%s frame %d: %w", compositionID, frame, ErrFrameNotFound)
	}
	if err != nil {
		return FrameRecord{}, fmt.Errorf("read frame: %w", err)
	}
	rec.Tree = []byte(tree)
	return rec, nil
}

// ListFrames returns every cached frame for a composition ordered by frame
// number. The order is a property of the data, not of write order.
func (s *Store) ListFrames(ctx context.Context, compositionID string) ([]FrameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT composition_id, frame, digest, tree, engine_version, job_token
		FROM frames
		WHERE composition_id = ?
		ORDER BY frame ASC
	`, compositionID)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var recs []FrameRecord
	for rows.Next() {
		var rec FrameRecord
		var tree string
		if err := rows.Scan(&rec.CompositionID, &rec.Frame, &rec.Digest, &tree, &rec.EngineVersion, &rec.JobToken); err != nil {
			return nil, fmt.Errorf("list frames: scan: %w", err)
		}
		rec.Tree = []byte(tree)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	return recs, nil
}

// Compositions returns the distinct composition IDs present in the cache,
// sorted lexically.
func (s *Store) Compositions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT composition_id FROM frames ORDER BY composition_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list compositions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list compositions: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list compositions: %w", err)
	}
	return ids, nil
}

// CountFrames returns the number of cached frames for a composition.
func (s *Store) CountFrames(ctx context.Context, compositionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM frames WHERE composition_id = ?`, compositionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return n, nil
}
