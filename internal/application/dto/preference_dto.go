package dto

// ProfileResponse perfil completo de la sesión: usuario, código del hotel y preferencias.
type ProfileResponse struct {
	User                UserResponse `json:"user"`
	HotelCode           string       `json:"hotel_code,omitempty"`
	OnboardingCompleted bool         `json:"onboarding_completed"`
	ViewedTutorials     []string     `json:"viewed_tutorials"`
}

// TutorialResponse estado de un tutorial.
type TutorialResponse struct {
	TutorialID string `json:"tutorial_id"`
	Viewed     bool   `json:"viewed"`
}
