package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moodgarden/moodgarden/internal/blob"
	"github.com/moodgarden/moodgarden/internal/imagegen"
	"github.com/moodgarden/moodgarden/internal/model"
	"github.com/moodgarden/moodgarden/internal/prompt"
	"github.com/moodgarden/moodgarden/internal/store"
	"github.com/moodgarden/moodgarden/internal/worker"
)

const imageContentType = "image/png"

// EntryService orchestrates entry CRUD and asynchronous flower generation.
type EntryService struct {
	store  store.EntryStore
	blobs  blob.Store
	gen    imagegen.Generator
	tasks  worker.Runner
	log    zerolog.Logger
	urlTTL time.Duration
}

func NewEntryService(s store.EntryStore, b blob.Store, g imagegen.Generator, tasks worker.Runner, log zerolog.Logger, urlTTL time.Duration) *EntryService {
	return &EntryService{store: s, blobs: b, gen: g, tasks: tasks, log: log, urlTTL: urlTTL}
}

// CreateEntryRequest carries the user-supplied fields of a new entry.
type CreateEntryRequest struct {
	Title   string
	Content string
	Mood    string
}

// UpdateEntryRequest carries the editable fields of an entry.
type UpdateEntryRequest struct {
	Title   string
	Content string
	Mood    string
}

// CreateEntry validates the request, persists a processing record and schedules
// flower generation. It returns before generation completes; clients poll the
// status field.
func (s *EntryService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*model.Entry, error) {
	if req.Title == "" || req.Content == "" || req.Mood == "" {
		return nil, fmt.Errorf("%w: title, content, and mood are required", model.ErrValidation)
	}

	entry, err := s.store.Create(ctx, &model.Entry{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Status:  model.StatusProcessing,
	})
	if err != nil {
		return nil, err
	}

	s.scheduleGeneration(entry.ID, entry.Mood)
	return entry, nil
}

// ListEntries returns all entries in store order. The slice is never nil on
// success, so an empty garden serializes as [].
func (s *EntryService) ListEntries(ctx context.Context) ([]*model.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.Entry{}
	}
	return entries, nil
}

// GetEntry returns one entry or model.ErrNotFound.
func (s *EntryService) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	return s.store.Get(ctx, id)
}

// UpdateEntry persists edits. A changed mood flips the entry back to processing
// synchronously and schedules regeneration; a same-mood edit touches only the
// text fields.
func (s *EntryService) UpdateEntry(ctx context.Context, id string, req UpdateEntryRequest) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	upd := model.EntryUpdate{Title: &req.Title, Content: &req.Content}
	moodChanged := req.Mood != "" && req.Mood != existing.Mood
	if moodChanged {
		processing := model.StatusProcessing
		upd.Mood = &req.Mood
		upd.Status = &processing
	}

	if _, err := s.store.Update(ctx, id, upd); err != nil {
		return err
	}

	if moodChanged {
		s.log.Info().Str("entryId", id).Str("from", existing.Mood).Str("to", req.Mood).
			Msg("mood changed, regenerating flower")
		s.scheduleGeneration(id, req.Mood)
	}
	return nil
}

// DeleteEntry removes the record and the stored image. A missing blob is
// expected for entries that never completed generation and is swallowed.
func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, imageKey(id)); err != nil {
		s.log.Warn().Err(err).Str("entryId", id).Msg("no flower image to delete")
	}
	return nil
}

// scheduleGeneration submits a detached generation task. Two tasks for the same
// entry may race; the last writer wins for both record and blob.
func (s *EntryService) scheduleGeneration(id, mood string) {
	s.tasks.Submit("generate-flower", func(ctx context.Context) {
		s.generateFlower(ctx, id, mood)
	})
}

// generateFlower produces the flower image for an entry and records the outcome.
// Failures are terminal for the attempt: the entry is marked failed and any
// prior URL is left in place.
func (s *EntryService) generateFlower(ctx context.Context, id, mood string) {
	url, err := s.generateAndStore(ctx, id, mood)
	if err != nil {
		s.log.Error().Stack().Err(err).Str("entryId", id).Str("mood", mood).Msg("flower generation failed")
		failed := model.StatusFailed
		if _, uerr := s.store.Update(ctx, id, model.EntryUpdate{Status: &failed}); uerr != nil {
			s.log.Error().Err(uerr).Str("entryId", id).Msg("failed to record generation failure")
		}
		return
	}

	completed := model.StatusCompleted
	if _, err := s.store.Update(ctx, id, model.EntryUpdate{Status: &completed, FlowerImageURL: &url}); err != nil {
		s.log.Error().Err(err).Str("entryId", id).Msg("failed to record generation result")
		return
	}
	s.log.Info().Str("entryId", id).Str("mood", mood).Msg("flower generated")
}

func (s *EntryService) generateAndStore(ctx context.Context, id, mood string) (string, error) {
	data, err := s.gen.Generate(ctx, prompt.ForMood(mood))
	if err != nil {
		return "", fmt.Errorf("generate image: %w", err)
	}

	key := imageKey(id)
	if err := s.blobs.Put(ctx, key, data, imageContentType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	url, err := s.blobs.SignedURL(ctx, key, s.urlTTL)
	if err != nil {
		return "", fmt.Errorf("sign image url: %w", err)
	}
	return url, nil
}

// imageKey derives the storage key from the entry id only, so regenerations
// overwrite the same object.
func imageKey(id string) string {
	return "flowers/" + id + ".png"
}
