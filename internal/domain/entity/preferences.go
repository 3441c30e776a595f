package entity

import "time"

// Onboarding estado del recorrido inicial de un usuario.
type Onboarding struct {
	UserID      string
	CompletedAt *time.Time
}

// TutorialView marca que un usuario vio un tutorial.
type TutorialView struct {
	UserID     string
	TutorialID string
	ViewedAt   time.Time
}
