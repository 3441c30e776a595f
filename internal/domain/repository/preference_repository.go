package repository

import "context"

// PreferenceRepository onboarding y tutoriales vistos por usuario. Sin expiración.
type PreferenceRepository interface {
	IsOnboardingCompleted(ctx context.Context, userID string) (bool, error)
	CompleteOnboarding(ctx context.Context, userID string) error
	HasViewedTutorial(ctx context.Context, userID, tutorialID string) (bool, error)
	MarkTutorialViewed(ctx context.Context, userID, tutorialID string) error
	ListViewedTutorials(ctx context.Context, userID string) ([]string, error)
}
