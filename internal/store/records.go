package store

import (
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

func toRecords(tasks []model.Task) []storage.Record {
	out := make([]storage.Record, 0, len(tasks))
	for _, t := range tasks {
		rec := storage.Record{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  string(t.Priority),
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		}
		if t.HasDue() {
			due := t.Due
			rec.Due = &due
		}
		out = append(out, rec)
	}
	return out
}

// fromRecords keeps the first occurrence of each id. Records without an id
// are dropped; other damage is normalized so the record survives the next
// save. Blank text and unparseable due dates are kept as stored.
func (s *Store) fromRecords(records []storage.Record) []model.Task {
	out := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	loadedAt := s.now()
	for _, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			s.logger.Warn("dropping record without id", "text", rec.Text)
			continue
		}
		if seen[id] {
			s.logger.Warn("dropping duplicate record", "id", id)
			continue
		}
		seen[id] = true

		t := model.Task{
			ID:        id,
			Text:      rec.Text,
			Priority:  model.Priority(rec.Priority),
			Completed: rec.Completed,
			CreatedAt: rec.CreatedAt,
		}
		if rec.Due != nil {
			t.Due = *rec.Due
		}
		if !t.Priority.IsValid() {
			s.logger.Warn("record priority reset to medium", "id", id, "priority", rec.Priority)
			t.Priority = model.PriorityMedium
		}
		if t.CreatedAt.IsZero() {
			s.logger.Warn("record created_at set to load time", "id", id)
			t.CreatedAt = loadedAt
		}
		out = append(out, t)
	}
	return out
}
