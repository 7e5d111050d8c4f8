package memory

import (
	"context"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

func cloneInteraction(i *models.Interaction) *models.Interaction {
	c := *i
	c.Liked = ptrCopy(i.Liked)
	c.Rating = ptrCopy(i.Rating)
	c.Comment = ptrCopy(i.Comment)
	return &c
}

func interactionID(i *models.Interaction) int64 { return i.ID }

// findInteraction returns the live row for the pair. Callers hold s.mu.
func (s *Store) findInteraction(userID, movieID int64) *models.Interaction {
	for _, i := range s.interactions {
		if i.UserID == userID && i.MovieID == movieID {
			return i
		}
	}
	return nil
}

// getOrCreateInteraction returns the live row for the pair, creating it if
// missing. Callers hold s.mu for writing.
func (s *Store) getOrCreateInteraction(userID, movieID int64) *models.Interaction {
	if i := s.findInteraction(userID, movieID); i != nil {
		return i
	}
	now := time.Now()
	i := &models.Interaction{ID: s.id(), UserID: userID, MovieID: movieID, CreatedAt: now, UpdatedAt: now}
	s.interactions[i.ID] = i
	return i
}

// GetInteraction returns the interaction for the pair.
func (s *Store) GetInteraction(_ context.Context, userID, movieID int64) (*models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.findInteraction(userID, movieID)
	if i == nil {
		return nil, repository.ErrNotFound
	}
	return cloneInteraction(i), nil
}

// UpsertInteraction creates the row if missing and applies the set patch fields.
func (s *Store) UpsertInteraction(_ context.Context, userID, movieID int64, patch models.InteractionPatch) (*models.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.getOrCreateInteraction(userID, movieID)
	if patch.Liked != nil {
		i.Liked = ptrCopy(patch.Liked)
	}
	if patch.Rating != nil {
		i.Rating = ptrCopy(patch.Rating)
	}
	if patch.Comment != nil {
		i.Comment = ptrCopy(patch.Comment)
	}
	if !patch.Empty() {
		i.UpdatedAt = time.Now()
	}
	return cloneInteraction(i), nil
}

// IncrementInteractionPlay records one play for the pair.
func (s *Store) IncrementInteractionPlay(_ context.Context, userID, movieID int64) (*models.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.getOrCreateInteraction(userID, movieID)
	i.PlayCount++
	i.UpdatedAt = time.Now()
	return cloneInteraction(i), nil
}

// ListInteractionsByUser returns a user's interactions in creation order.
func (s *Store) ListInteractionsByUser(_ context.Context, userID int64) ([]models.Interaction, error) {
	return s.filterInteractions(func(i *models.Interaction) bool { return i.UserID == userID }, false), nil
}

// ListInteractionsByMovie returns a movie's interactions, newest first.
func (s *Store) ListInteractionsByMovie(_ context.Context, movieID int64) ([]models.Interaction, error) {
	return s.filterInteractions(func(i *models.Interaction) bool { return i.MovieID == movieID }, true), nil
}

// ListInteractions returns every interaction.
func (s *Store) ListInteractions(_ context.Context) ([]models.Interaction, error) {
	return s.filterInteractions(func(*models.Interaction) bool { return true }, false), nil
}

func (s *Store) filterInteractions(keep func(*models.Interaction) bool, newestFirst bool) []models.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Interaction, 0)
	for _, i := range sortedByID(s.interactions, interactionID, cloneInteraction) {
		if keep(&i) {
			out = append(out, i)
		}
	}
	if newestFirst {
		slices.Reverse(out)
	}
	return out
}
