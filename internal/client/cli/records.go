package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RunRecordAdd создает общий список или комментарий из пар key=value
func (c *Cli) RunRecordAdd(ctx context.Context, collection string, pairs []string) error {
	fields, err := parsePairs(pairs)
	if err != nil {
		return err
	}

	rec, err := c.dataService.CreateRecord(ctx, collection, fields)
	if err != nil {
		return fmt.Errorf("failed to create %s record: %w", collection, err)
	}

	c.io.Printf("✓ Created %s record %s\n", collection, rec.DisplayID())
	return nil
}

// RunRecordUpdate сливает пары key=value в запись
func (c *Cli) RunRecordUpdate(ctx context.Context, collection, id string, pairs []string) error {
	fields, err := parsePairs(pairs)
	if err != nil {
		return err
	}

	rec, err := c.dataService.UpdateRecord(ctx, collection, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update %s record: %w", collection, err)
	}

	c.io.Printf("✓ Updated %s record %s\n", collection, rec.DisplayID())
	return nil
}

func (c *Cli) RunRecordDelete(ctx context.Context, collection, id string) error {
	if err := c.dataService.DeleteRecord(ctx, collection, id); err != nil {
		return fmt.Errorf("failed to delete %s record: %w", collection, err)
	}
	c.io.Printf("✓ Deleted %s record %s\n", collection, id)
	return nil
}

func (c *Cli) RunRecordList(ctx context.Context, collection string) error {
	records, err := c.dataService.ListRecords(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", collection, err)
	}

	c.io.Printf("=== %s ===\n", collection)
	c.io.Println()
	if len(records) == 0 {
		c.io.Println("No records found.")
		return nil
	}

	for i, rec := range records {
		c.io.Printf("%d. %s%s\n", i+1, rec.DisplayID(), syncMark(rec))
		for _, key := range slices.Sorted(maps.Keys(rec.Data)) {
			c.io.Printf("   %s: %v\n", key, rec.Data[key])
		}
	}
	return nil
}

func parsePairs(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", p)
		}
		fields[key] = value
	}
	return fields, nil
}
