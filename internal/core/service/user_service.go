package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

// UserService lists accounts. With a presence tracker attached (chat
// variant) the listing is decorated with live online state; tracker
// failures degrade to the durable record rather than failing the list.
type UserService struct {
	repo     ports.UserRepository
	presence ports.PresenceTracker // nil for the classroom variant
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, presence ports.PresenceTracker, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, presence: presence, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		view := u.Public()
		if s.presence != nil {
			online, lastSeen, err := s.presence.Status(ctx, u.ID)
			if err != nil {
				s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("presence lookup failed")
			} else {
				view.IsOnline = online
				if !lastSeen.IsZero() {
					ls := lastSeen
					view.LastSeen = &ls
				}
			}
		}
		out = append(out, view)
	}
	return out, nil
}
