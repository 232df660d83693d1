package oplog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
)

func TestCompact(t *testing.T) {
	ops := []*models.Operation{
		{ID: "1", LocalID: "a", FieldName: "title", NewValue: "x", Timestamp: 100, SequenceID: "1"},
		{ID: "2", LocalID: "a", FieldName: "title", NewValue: "y", Timestamp: 200, SequenceID: "2"},
		{ID: "3", LocalID: "a", FieldName: "priority", NewValue: "HIGH", Timestamp: 150, SequenceID: "3"},
		{ID: "4", LocalID: "b", FieldName: "title", NewValue: "z", Timestamp: 50, SequenceID: "4"},
	}

	got := Compact(ops)
	require.Len(t, got, 3)

	// Результат упорядочен по времени
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "2", got[2].ID)
	assert.Equal(t, "y", got[2].NewValue)

	// Входной срез не изменен
	assert.Len(t, ops, 4)
	assert.Equal(t, "1", ops[0].ID)
}

func TestCompact_Empty(t *testing.T) {
	assert.Empty(t, Compact(nil))
}

func TestCompact_TieBrokenBySequence(t *testing.T) {
	ops := []*models.Operation{
		{ID: "b", LocalID: "a", FieldName: "title", Timestamp: 100, SequenceID: "b"},
		{ID: "a", LocalID: "a", FieldName: "title", Timestamp: 100, SequenceID: "a"},
	}

	got := Compact(ops)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

// Результат: ровно одна операция на пару (сущность, поле), и это
// операция с максимальным timestamp в группе, независимо от порядка входа.
func TestCompact_Property(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	entities := []string{"a", "b", "c"}
	fields := []string{"title", "priority", "completed"}

	for iter := 0; iter < 50; iter++ {
		n := rnd.Intn(30)
		ops := make([]*models.Operation, 0, n)
		maxTS := map[string]int64{}
		for i := 0; i < n; i++ {
			op := &models.Operation{
				ID:         string(rune('A' + i)),
				LocalID:    entities[rnd.Intn(len(entities))],
				FieldName:  fields[rnd.Intn(len(fields))],
				Timestamp:  int64(i + 1), // уникальные метки, как выдает clock
				SequenceID: string(rune('A' + i)),
			}
			ops = append(ops, op)
			maxTS[op.GroupKey()] = max(maxTS[op.GroupKey()], op.Timestamp)
		}
		rnd.Shuffle(len(ops), func(i, j int) { ops[i], ops[j] = ops[j], ops[i] })

		got := Compact(ops)
		assert.Len(t, got, len(maxTS))

		seen := map[string]bool{}
		for _, op := range got {
			assert.False(t, seen[op.GroupKey()], "duplicate group")
			seen[op.GroupKey()] = true
			assert.Equal(t, maxTS[op.GroupKey()], op.Timestamp)
		}
	}
}
