package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pilldeck/pilldeck/internal/domain"
)

// MaxLogRecords caps the dispense history kept in the store.
const MaxLogRecords = 200

// AppendLog prepends a dispense record to the history list and trims the
// list to MaxLogRecords.
func (s *Store) AppendLog(ctx context.Context, record domain.DispenseLogRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal log record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, KeyDispenseLog, data)
	pipe.LTrim(ctx, KeyDispenseLog, 0, MaxLogRecords-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append log record: %w", err)
	}
	return nil
}

// LoadLogs returns the dispense history, newest first.
func (s *Store) LoadLogs(ctx context.Context) ([]domain.DispenseLogRecord, error) {
	raw, err := s.client.LRange(ctx, KeyDispenseLog, 0, MaxLogRecords-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load log records: %w", err)
	}

	records := make([]domain.DispenseLogRecord, 0, len(raw))
	for _, item := range raw {
		var record domain.DispenseLogRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			// Skip records that couldn't be decoded
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
