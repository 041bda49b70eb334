package store

import (
	"context"
	"fmt"
)

// WriteFrame inserts a rendered frame. Returns inserted=false when a row for
// (composition_id, frame) already exists; the existing row wins and the new
// one is discarded, which is safe because rendering is deterministic.
//
// A conflicting row whose digest differs from the incoming one indicates a
// non-deterministic component or a corrupted database; WriteFrame reports
// that as an error instead of silently keeping either side.
func (s *Store) WriteFrame(ctx context.Context, rec FrameRecord) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO frames
		(composition_id, frame, digest, tree, engine_version, job_token)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(composition_id, frame) DO NOTHING
	`,
		rec.CompositionID,
		rec.Frame,
		rec.Digest,
		string(rec.Tree),
		rec.EngineVersion,
		rec.JobToken,
	)
	if err != nil {
		return false, fmt.Errorf("write frame: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write frame: rows affected: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	var stored string
	err = s.db.QueryRowContext(ctx, `
		SELECT digest FROM frames WHERE composition_id = ? AND frame = ?
	`, rec.CompositionID, rec.Frame).Scan(&stored)
	if err != nil {
		return false, fmt.Errorf("write frame: select existing: %w", err)
	}
	if stored != rec.Digest {
		return false, fmt.Errorf("write frame: %s frame %d: stored digest %s does not match computed %s",
			rec.CompositionID, rec.Frame, stored, rec.Digest)
	}
	return false, nil
}

// DeleteComposition removes every cached frame for a composition. Returns
// the number of rows removed.
func (s *Store) DeleteComposition(ctx context.Context, compositionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM frames WHERE composition_id = ?`, compositionID)
	if err != nil {
		return 0, fmt.Errorf("delete composition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete composition: rows affected: %w", err)
	}
	return n, nil
}
