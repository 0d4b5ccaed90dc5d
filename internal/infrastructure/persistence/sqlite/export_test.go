package sqlite

import "database/sql"

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }
