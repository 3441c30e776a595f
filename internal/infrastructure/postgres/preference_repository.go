package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

// PreferenceRepo onboarding y tutoriales vistos.
type PreferenceRepo struct {
	q Querier
}

// NewPreferenceRepository construye el adaptador.
func NewPreferenceRepository(q Querier) *PreferenceRepo {
	return &PreferenceRepo{q: q}
}

func (r *PreferenceRepo) IsOnboardingCompleted(ctx context.Context, userID string) (bool, error) {
	var done bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_onboarding WHERE user_id = $1)`, userID).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("check onboarding: %w", err)
	}
	return done, nil
}

func (r *PreferenceRepo) CompleteOnboarding(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_onboarding (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	return nil
}

func (r *PreferenceRepo) HasViewedTutorial(ctx context.Context, userID, tutorialID string) (bool, error) {
	var seen bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tutorial_views WHERE user_id = $1 AND tutorial_id = $2)`,
		userID, tutorialID).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("check tutorial: %w", err)
	}
	return seen, nil
}

func (r *PreferenceRepo) MarkTutorialViewed(ctx context.Context, userID, tutorialID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tutorial_views (user_id, tutorial_id) VALUES ($1, $2)
		ON CONFLICT (user_id, tutorial_id) DO NOTHING`, userID, tutorialID)
	if err != nil {
		return fmt.Errorf("mark tutorial: %w", err)
	}
	return nil
}

// ListViewedTutorials tutoriales vistos, ordenados por ID.
func (r *PreferenceRepo) ListViewedTutorials(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT tutorial_id FROM tutorial_views WHERE user_id = $1 ORDER BY tutorial_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tutorial: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
