package store

import (
	"context"
	"errors"
	"fmt"

	"inventory-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const productIDSequence = "product_id_seq"

// PostgresStore keeps records in a products table. The embedded product is
// flattened into product_* columns and ids come from a native sequence.
type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.ProductRecord{}); err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS " + productIDSequence).Error; err != nil {
		return fmt.Errorf("create id sequence: %w", err)
	}

	var maxID int64
	if err := db.Model(&models.ProductRecord{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return fmt.Errorf("find max id: %w", err)
	}
	if maxID == 0 {
		return nil
	}
	// Only move the sequence forward; an unused sequence counts as 0.
	err := db.Exec(
		"SELECT setval('"+productIDSequence+"', GREATEST(?, (SELECT CASE WHEN is_called THEN last_value ELSE 0 END FROM "+productIDSequence+")), true)",
		maxID,
	).Error
	if err != nil {
		return fmt.Errorf("seed id sequence: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.ProductRecord, error) {
	out := make([]models.ProductRecord, 0)
	if err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, p models.Product) (models.ProductRecord, error) {
	db := s.db.WithContext(ctx)
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		var id int64
		if err := db.Raw("SELECT nextval('" + productIDSequence + "')").Scan(&id).Error; err != nil {
			return models.ProductRecord{}, fmt.Errorf("next id: %w", err)
		}
		rec := newRecord(id, p)
		err := insertProduct(db, &rec).Error
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ProductRecord{}, fmt.Errorf("insert product: %w", err)
		}
	}
	return models.ProductRecord{}, ErrDuplicateID
}

func (s *PostgresStore) Update(ctx context.Context, id int64, p models.Product) (models.ProductRecord, error) {
	rec := newRecord(id, p)
	res := updateProduct(s.db.WithContext(ctx), &rec)
	if res.Error != nil {
		return models.ProductRecord{}, fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ProductRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (models.ProductRecord, error) {
	var rec models.ProductRecord
	res := deleteProduct(s.db.WithContext(ctx), id, &rec)
	if res.Error != nil {
		return models.ProductRecord{}, fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ProductRecord{}, ErrNotFound
	}
	return rec, nil
}

// insertProduct writes every column, so false and zero values are stored as
// given rather than replaced by column defaults.
func insertProduct(db *gorm.DB, rec *models.ProductRecord) *gorm.DB {
	return db.Select("*").Create(rec)
}

func updateProduct(db *gorm.DB, rec *models.ProductRecord) *gorm.DB {
	return db.Model(&models.ProductRecord{}).
		Where("id = ?", rec.ID).
		Select("*").
		Omit("id").
		Updates(rec)
}

// deleteProduct fills rec with the removed row.
func deleteProduct(db *gorm.DB, id int64, rec *models.ProductRecord) *gorm.DB {
	return db.Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(rec)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
