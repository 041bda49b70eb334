package store

import (
	"context"
	"fmt"
)

// Divergence reports one cached frame whose stored digest no longer matches
// a fresh render.
type Divergence struct {
	CompositionID string
	Frame         int
	Stored        string
	Computed      string
}

// Verify recomputes the digest of every cached frame and returns the rows
// that diverge. recompute renders the frame from scratch; it must not
// consult the cache. A clean database yields an empty slice.
//
// Rows are visited in (composition, frame) order so repeated audits of the
// same database produce identical reports.
func (s *Store) Verify(ctx context.Context, recompute func(compositionID string, frame int) (string, error)) ([]Divergence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT composition_id, frame, digest
		FROM frames
		ORDER BY composition_id ASC, frame ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	defer rows.Close()

	type row struct {
		comp   string
		frame  int
		digest string
	}
	var stored []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.comp, &r.frame, &r.digest); err != nil {
			return nil, fmt.Errorf("verify: scan: %w", err)
		}
		stored = append(stored, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	var diverged []Divergence
	for _, r := range stored {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		computed, err := recompute(r.comp, r.frame)
		if err != nil {
			return nil, fmt.Errorf("verify: recompute %s frame %d: %w", r.comp, r.frame, err)
		}
		if computed != r.digest {
			diverged = append(diverged, Divergence{
				CompositionID: r.comp,
				Frame:         r.frame,
				Stored:        r.digest,
				Computed:      computed,
			})
		}
	}
	return diverged, nil
}
