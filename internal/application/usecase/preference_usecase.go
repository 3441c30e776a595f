package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

// PreferenceUseCase onboarding y tutoriales vistos. Los huéspedes no tienen preferencias.
type PreferenceUseCase struct {
	prefs repository.PreferenceRepository
	codes *hotelcache.Cache
}

// NewPreferenceUseCase construye el caso de uso.
func NewPreferenceUseCase(prefs repository.PreferenceRepository, codeCache *hotelcache.Cache) *PreferenceUseCase {
	return &PreferenceUseCase{prefs: prefs, codes: codeCache}
}

// Profile arma el perfil de la sesión consultando en paralelo código de hotel,
// onboarding y tutoriales. El primer error cancela el resto.
func (uc *PreferenceUseCase) Profile(ctx context.Context, u *entity.User) (*dto.ProfileResponse, error) {
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	out := &dto.ProfileResponse{User: dto.UserToResponse(u), ViewedTutorials: []string{}}

	g, gctx := errgroup.WithContext(ctx)
	if u.HasHotel() {
		g.Go(func() error {
			code, err := uc.codes.Code(gctx, u.HotelIDValue())
			out.HotelCode = code
			return err
		})
	}
	if !access.IsGuest(u) {
		g.Go(func() error {
			done, err := uc.prefs.IsOnboardingCompleted(gctx, u.ID)
			out.OnboardingCompleted = done
			return err
		})
		g.Go(func() error {
			ids, err := uc.prefs.ListViewedTutorials(gctx, u.ID)
			if ids != nil {
				out.ViewedTutorials = ids
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteOnboarding marca el recorrido inicial como completado (idempotente).
func (uc *PreferenceUseCase) CompleteOnboarding(ctx context.Context, u *entity.User) error {
	if u == nil || access.IsGuest(u) {
		return domain.ErrForbidden
	}
	return uc.prefs.CompleteOnboarding(ctx, u.ID)
}

// Tutorial informa si el usuario vio el tutorial.
func (uc *PreferenceUseCase) Tutorial(ctx context.Context, u *entity.User, tutorialID string) (*dto.TutorialResponse, error) {
	tutorialID, err := cleanTutorialID(tutorialID)
	if err != nil {
		return nil, err
	}
	if u == nil || access.IsGuest(u) {
		return &dto.TutorialResponse{TutorialID: tutorialID}, nil
	}
	seen, err := uc.prefs.HasViewedTutorial(ctx, u.ID, tutorialID)
	if err != nil {
		return nil, err
	}
	return &dto.TutorialResponse{TutorialID: tutorialID, Viewed: seen}, nil
}

// MarkTutorialViewed registra el tutorial como visto (idempotente).
func (uc *PreferenceUseCase) MarkTutorialViewed(ctx context.Context, u *entity.User, tutorialID string) (*dto.TutorialResponse, error) {
	tutorialID, err := cleanTutorialID(tutorialID)
	if err != nil {
		return nil, err
	}
	if u == nil || access.IsGuest(u) {
		return nil, domain.ErrForbidden
	}
	if err := uc.prefs.MarkTutorialViewed(ctx, u.ID, tutorialID); err != nil {
		return nil, err
	}
	return &dto.TutorialResponse{TutorialID: tutorialID, Viewed: true}, nil
}

func cleanTutorialID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 64 {
		return "", domain.ErrInvalidInput
	}
	return id, nil
}
