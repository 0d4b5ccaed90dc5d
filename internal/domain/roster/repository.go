package roster

import (
	"context"

	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Интерфейс хранилища журнала. Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Store сохраняет и загружает журнал целиком.
type Store interface {
	// Save записывает все записи, заменяя предыдущее содержимое хранилища.
	Save(ctx context.Context, records []student.Record) error

	// Load читает все записи.
	// Возвращает ErrSnapshotNotFound, если хранилища нет,
	// и ErrSnapshotCorrupt, если содержимое не удалось разобрать.
	Load(ctx context.Context) ([]student.Record, error)

	// Location возвращает путь хранилища для сообщений и логов.
	Location() string
}

// ChangeTracker реализуется хранилищами, которые помнят отпечаток содержимого
// после последней загрузки или сохранения.
type ChangeTracker interface {
	// Fingerprint возвращает отпечаток последней синхронизации ("" - её не было
	// или хранилища не существовало).
	Fingerprint() string

	// Changed сообщает, изменилось ли содержимое хранилища с последней синхронизации.
	Changed(ctx context.Context) (bool, error)
}
