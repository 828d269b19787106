package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/errors"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const sqliteFileName = "mirror.db"

const schema = `
CREATE TABLE IF NOT EXISTS device (
	id        INTEGER PRIMARY KEY CHECK (id = 1),
	device_id TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS membership (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	group_id    TEXT NOT NULL,
	token       TEXT NOT NULL,
	device_name TEXT NOT NULL,
	device_type TEXT NOT NULL,
	joined_at   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cursors (
	data_type           TEXT PRIMARY KEY,
	last_sync_timestamp INTEGER NOT NULL DEFAULT 0,
	last_record_id      TEXT NOT NULL DEFAULT '',
	cached_count        INTEGER NOT NULL DEFAULT 0,
	last_synced_at      INTEGER
);
CREATE TABLE IF NOT EXISTS cache (
	data_type TEXT NOT NULL,
	id        TEXT NOT NULL,
	date      INTEGER NOT NULL,
	payload   BLOB NOT NULL,
	PRIMARY KEY (data_type, id)
);
CREATE INDEX IF NOT EXISTS idx_cache_order ON cache (data_type, date, id);
`

// SQLiteStore keeps device state in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the store under dataDir.
func OpenSQLite(ctx context.Context, dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, domainerrors.NewStorageError("create data dir", err)
	}

	dsn := "file:" + filepath.Join(dataDir, sqliteFileName) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domainerrors.NewStorageError("open", err)
	}
	// SQLite allows one writer; a single connection keeps transactions serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()

		return nil, domainerrors.NewStorageError("migrate", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domainerrors.NewStorageError(op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()

		return domainerrors.NewStorageError(op, err)
	}
	if err := tx.Commit(); err != nil {
		return domainerrors.NewStorageError(op, err)
	}

	return nil
}

// DeviceID implements Store.
func (s *SQLiteStore) DeviceID(ctx context.Context) (string, error) {
	var deviceID string
	err := s.db.QueryRowContext(ctx, `SELECT device_id FROM device WHERE id = 1`).Scan(&deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", domainerrors.NewStorageError("load device id", err)
	}

	return deviceID, nil
}

// SaveDeviceID implements Store.
func (s *SQLiteStore) SaveDeviceID(ctx context.Context, deviceID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO device (id, device_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET device_id = excluded.device_id
	`, deviceID)

	return domainerrors.NewStorageError("save device id", err)
}

// Membership implements Store.
func (s *SQLiteStore) Membership(ctx context.Context) (*Membership, error) {
	var (
		m        Membership
		joinedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT group_id, token, device_name, device_type, joined_at FROM membership WHERE id = 1
	`).Scan(&m.GroupID, &m.Token, &m.DeviceName, &m.DeviceType, &joinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoMembership
	}
	if err != nil {
		return nil, domainerrors.NewStorageError("load membership", err)
	}
	m.JoinedAt = time.UnixMilli(joinedAt).UTC()

	return &m, nil
}

// SaveMembership implements Store.
func (s *SQLiteStore) SaveMembership(ctx context.Context, m Membership) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO membership (id, group_id, token, device_name, device_type, joined_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			group_id = excluded.group_id,
			token = excluded.token,
			device_name = excluded.device_name,
			device_type = excluded.device_type,
			joined_at = excluded.joined_at
	`, m.GroupID, m.Token, m.DeviceName, string(m.DeviceType), m.JoinedAt.UnixMilli())

	return domainerrors.NewStorageError("save membership", err)
}

// ClearMembership implements Store.
func (s *SQLiteStore) ClearMembership(ctx context.Context) error {
	return s.withTx(ctx, "clear membership", func(tx *sql.Tx) error {
		for _, stmt := range []string{`DELETE FROM membership`, `DELETE FROM cursors`, `DELETE FROM cache`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})
}

// LoadCursor implements Store.
func (s *SQLiteStore) LoadCursor(ctx context.Context, dataType entity.DataType) (entity.SyncCursor, error) {
	cursor := entity.SyncCursor{DataType: dataType}

	var syncedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT last_sync_timestamp, last_record_id, cached_count, last_synced_at
		FROM cursors WHERE data_type = ?
	`, string(dataType)).Scan(&cursor.LastSyncTimestamp, &cursor.LastRecordID, &cursor.CachedCount, &syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return cursor, nil
	}
	if err != nil {
		return cursor, domainerrors.NewStorageError("load cursor", err)
	}
	if syncedAt.Valid {
		t := time.UnixMilli(syncedAt.Int64).UTC()
		cursor.LastSyncedAt = &t
	}

	return cursor, nil
}

// LoadCache implements Store.
func (s *SQLiteStore) LoadCache(ctx context.Context, dataType entity.DataType) ([]entity.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, payload FROM cache WHERE data_type = ? ORDER BY date ASC, id ASC
	`, string(dataType))
	if err != nil {
		return nil, domainerrors.NewStorageError("load cache", err)
	}
	defer rows.Close()

	records := make([]entity.RawRecord, 0)
	for rows.Next() {
		var record entity.RawRecord
		if err := rows.Scan(&record.ID, &record.Date, &record.Payload); err != nil {
			return nil, domainerrors.NewStorageError("scan cache", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, domainerrors.NewStorageError("load cache", err)
	}

	return records, nil
}

// SaveSnapshot implements Store.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, cursor entity.SyncCursor, records []entity.RawRecord) error {
	dataType := string(cursor.DataType)

	return s.withTx(ctx, "save snapshot", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cache WHERE data_type = ?`, dataType); err != nil {
			return errors.WithStack(err)
		}

		insert, err := tx.PrepareContext(ctx, `INSERT INTO cache (data_type, id, date, payload) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return errors.WithStack(err)
		}
		defer insert.Close()

		for _, record := range records {
			if _, err := insert.ExecContext(ctx, dataType, record.ID, record.Date, []byte(record.Payload)); err != nil {
				return errors.Wrapf(err, "insert record %s", record.ID)
			}
		}

		var syncedAt sql.NullInt64
		if cursor.LastSyncedAt != nil {
			syncedAt = sql.NullInt64{Int64: cursor.LastSyncedAt.UnixMilli(), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cursors (data_type, last_sync_timestamp, last_record_id, cached_count, last_synced_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(data_type) DO UPDATE SET
				last_sync_timestamp = excluded.last_sync_timestamp,
				last_record_id = excluded.last_record_id,
				cached_count = excluded.cached_count,
				last_synced_at = excluded.last_synced_at
		`, dataType, cursor.LastSyncTimestamp, cursor.LastRecordID, len(records), syncedAt)

		return errors.WithStack(err)
	})
}

// ClearDataType implements Store.
func (s *SQLiteStore) ClearDataType(ctx context.Context, dataType entity.DataType) error {
	return s.withTx(ctx, "clear data type", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cache WHERE data_type = ?`, string(dataType)); err != nil {
			return errors.WithStack(err)
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM cursors WHERE data_type = ?`, string(dataType))

		return errors.WithStack(err)
	})
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return errors.WithStack(s.db.Close())
}
