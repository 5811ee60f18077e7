package blob

import (
	"context"
	"sort"
	"time"

	"pet-care/internal/domain/reminders"
)

func remindersKey(petID string) string { return "reminders_" + petID }

type reminderRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type RemindersRepo struct {
	db *DB
}

func NewRemindersRepo(db *DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	return update(ctx, r.db, remindersKey(rem.PetID), func(items []reminderRecord) ([]reminderRecord, error) {
		return append(items, reminderRecord{ID: rem.ID, Text: rem.Text, Date: rem.DueAt, CreatedAt: rem.CreatedAt}), nil
	})
}

func (r *RemindersRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	items, err := read[reminderRecord](ctx, r.db, remindersKey(petID))
	if err != nil {
		return nil, err
	}
	out := make([]reminders.Reminder, 0, len(items))
	for _, it := range items {
		out = append(out, reminders.Reminder{ID: it.ID, PetID: petID, Text: it.Text, DueAt: it.Date, CreatedAt: it.CreatedAt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out, nil
}

func (r *RemindersRepo) Delete(ctx context.Context, petID, id string) error {
	return update(ctx, r.db, remindersKey(petID), func(items []reminderRecord) ([]reminderRecord, error) {
		for i, it := range items {
			if it.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, reminders.ErrNotFound
	})
}

func (r *RemindersRepo) DeleteByPet(ctx context.Context, petID string) error {
	return remove(ctx, r.db, remindersKey(petID))
}
