package postgres

import (
	"context"
	"time"

	"mirror/internal/domain/entity"
	domainerrors "mirror/internal/domain/errors"
	"mirror/internal/domain/repository"
	"mirror/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordRepository implements the repository.RecordRepository interface.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository is the constructor for recordRepository.
func NewRecordRepository(db *gorm.DB) repository.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// upsertRecordSQL reports in one statement whether the row was inserted.
// xmax is 0 only for a tuple this statement created.
const upsertRecordSQL = `INSERT INTO sync_records (group_id, data_type, id, date, payload, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (group_id, data_type, id) DO UPDATE
SET date = EXCLUDED.date, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
RETURNING (xmax = 0) AS inserted`

type upsertResult struct {
	Inserted bool
}

// Upsert inserts or replaces a record by (group, data type, id).
func (repo *recordRepository) Upsert(ctx context.Context, groupID string, dataType entity.DataType, record entity.RawRecord) (bool, error) {
	recordM := fromRecordDomain(groupID, dataType, record)

	var result upsertResult
	if err := repo.db.WithContext(ctx).
		Raw(upsertRecordSQL, recordM.GroupID, recordM.DataType, recordM.ID, recordM.Date, recordM.Payload, time.Now().UTC()).
		Scan(&result).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to upsert record")
	}

	return result.Inserted, nil
}

// Delete removes a record.
func (repo *recordRepository) Delete(ctx context.Context, groupID string, dataType entity.DataType, recordID string) error {
	result := repo.db.WithContext(ctx).
		Where("group_id = ? AND data_type = ? AND id = ?", groupID, string(dataType), recordID).
		Delete(&model.RecordModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete record")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// Pull returns up to limit records strictly after cursor in (date, id) order.
// Ids compare under the "C" collation so the order matches byte order on every
// database locale, the same order devices and other stores use.
func (repo *recordRepository) Pull(ctx context.Context, groupID string, dataType entity.DataType, cursor entity.Cursor, limit int) ([]entity.RawRecord, error) {
	var recordModels []*model.RecordModel

	query := repo.db.WithContext(ctx).
		Where("group_id = ? AND data_type = ?", groupID, string(dataType))

	if cursor.RecordID == "" {
		query = query.Where("date > ?", cursor.Timestamp)
	} else {
		query = query.Where(`(date > ? OR (date = ? AND id COLLATE "C" > ?))`, cursor.Timestamp, cursor.Timestamp, cursor.RecordID)
	}

	if err := query.
		Order("date ASC").
		Order(`id COLLATE "C" ASC`).
		Limit(limit).
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to pull records")
	}

	records := make([]entity.RawRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toRecordDomain(recordM))
	}

	return records, nil
}

// --- Mapper Functions ---

func toRecordDomain(data *model.RecordModel) entity.RawRecord {
	return entity.RawRecord{
		ID:      data.ID,
		Date:    data.Date,
		Payload: []byte(data.Payload),
	}
}

func fromRecordDomain(groupID string, dataType entity.DataType, data entity.RawRecord) *model.RecordModel {
	return &model.RecordModel{
		GroupID:  groupID,
		DataType: string(dataType),
		ID:       data.ID,
		Date:     data.Date,
		Payload:  datatypes.JSON(data.Payload),
	}
}
