package board

import (
	"sort"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/pkg/models"
)

// The hosted document store returns a whole collection as a key→record map
// (or nothing at all when the collection is empty). The normalizers below
// convert that shape into an ordered slice with each record carrying its
// store key as ID. A nil or empty map yields an empty slice, never an error.
// Records are ordered by key so repeated calls over the same snapshot
// produce the same sequence.

func sortedKeys[T any](raw map[string]T) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeEmployees converts a raw employees collection into an ordered slice.
func NormalizeEmployees(raw map[string]models.Employee) []models.Employee {
	out := make([]models.Employee, 0, len(raw))
	for _, k := range sortedKeys(raw) {
		rec := raw[k]
		rec.ID = k
		out = append(out, rec)
	}
	return out
}

// NormalizeTasks converts a raw tasks collection into an ordered slice.
func NormalizeTasks(raw map[string]models.Task) []models.Task {
	out := make([]models.Task, 0, len(raw))
	for _, k := range sortedKeys(raw) {
		rec := raw[k]
		rec.ID = k
		out = append(out, rec)
	}
	return out
}

// NormalizePoints converts a raw points collection into an ordered slice.
func NormalizePoints(raw map[string]models.PointEntry) []models.PointEntry {
	out := make([]models.PointEntry, 0, len(raw))
	for _, k := range sortedKeys(raw) {
		rec := raw[k]
		rec.ID = k
		out = append(out, rec)
	}
	return out
}
