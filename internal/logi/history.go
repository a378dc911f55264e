package logi

import (
	"fmt"

	"sislog/internal/database/sqlc"
)

// GetHistory returns the most recent recorded operations, newest first.
func (s *LogiService) GetHistory(limit int) ([]*sqlc.Operation, error) {
	if limit <= 0 {
		return nil, invalidInput("limit must be positive")
	}
	ops, err := s.database.ListOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}
