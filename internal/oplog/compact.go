package oplog

import (
	"slices"

	"github.com/iudanet/todosync/internal/models"
)

// Compact оставляет по одной операции на пару (сущность, поле): ту, у которой
// наибольший Timestamp. Входной срез не меняется, результат упорядочен по
// Timestamp, затем по SequenceID.
func Compact(ops []*models.Operation) []*models.Operation {
	latest := make(map[string]*models.Operation, len(ops))
	for _, op := range ops {
		key := op.GroupKey()
		if cur, ok := latest[key]; !ok || op.IsNewerThan(cur) {
			latest[key] = op
		}
	}

	out := make([]*models.Operation, 0, len(latest))
	for _, op := range latest {
		out = append(out, op)
	}
	slices.SortFunc(out, compareOps)
	return out
}

func compareOps(a, b *models.Operation) int {
	switch {
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	case a.SequenceID < b.SequenceID:
		return -1
	case a.SequenceID > b.SequenceID:
		return 1
	default:
		return 0
	}
}
