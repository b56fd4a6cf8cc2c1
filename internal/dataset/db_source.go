package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Row models for the relational snapshot of the dataset. A snapshot database
// (SQLite file for local use, Postgres for shared deployments) carries the
// same three record sets as the JSON form.

type codeRow struct {
	MCC                   string `gorm:"column:mcc;primaryKey;size:4"`
	ISODescription        string `gorm:"column:iso_description"`
	USDADescription       string `gorm:"column:usda_description"`
	StripeDescription     string `gorm:"column:stripe_description"`
	StripeCode            string `gorm:"column:stripe_code"`
	VisaDescription       string `gorm:"column:visa_description"`
	VisaClearingName      string `gorm:"column:visa_clearing_name"`
	MastercardDescription string `gorm:"column:mastercard_description"`
	AmexDescription       string `gorm:"column:amex_description"`
	AlipayDescription     string `gorm:"column:alipay_description"`
	IRSDescription        string `gorm:"column:irs_description"`
	IRSReportable         *bool  `gorm:"column:irs_reportable"`
}

func (codeRow) TableName() string { return "mcc_codes" }

type rangeRow struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Start       string `gorm:"column:start_code;size:4;not null"`
	End         string `gorm:"column:end_code;size:4;not null"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	Reserved    bool   `gorm:"column:reserved;not null;default:false"`
}

func (rangeRow) TableName() string { return "mcc_ranges" }

type categoryRow struct {
	ID          string `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	Codes       string `gorm:"column:codes;type:text;not null"`
}

func (categoryRow) TableName() string { return "mcc_categories" }

// DatabaseSource loads dataset records from a relational snapshot database.
type DatabaseSource struct {
	db   *gorm.DB
	name string
}

// NewSQLiteSource opens a SQLite snapshot at the given path.
func NewSQLiteSource(path string) (*DatabaseSource, error) {
	db, err := openGorm(sqlite.Open(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite snapshot: %w", err)
	}
	return &DatabaseSource{db: db, name: fmt.Sprintf("sqlite:%s", path)}, nil
}

// NewPostgresSource connects to a Postgres snapshot using the given DSN.
func NewPostgresSource(dsn string) (*DatabaseSource, error) {
	db, err := openGorm(postgres.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres snapshot: %w", err)
	}
	return &DatabaseSource{db: db, name: "postgres"}, nil
}

// NewDatabaseSource wraps an already-open gorm handle. Used by tests and by
// callers that manage their own connection pool.
func NewDatabaseSource(db *gorm.DB, name string) *DatabaseSource {
	return &DatabaseSource{db: db, name: name}
}

func openGorm(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func (s *DatabaseSource) Name() string {
	return s.name
}

// AutoMigrate creates the snapshot schema.
func (s *DatabaseSource) AutoMigrate() error {
	return s.db.AutoMigrate(&codeRow{}, &rangeRow{}, &categoryRow{})
}

// Seed replaces the snapshot contents with the given records, creating the
// schema if needed. All-or-nothing under one transaction.
func (s *DatabaseSource) Seed(records *Records) error {
	if err := s.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"mcc_codes", "mcc_ranges", "mcc_categories"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		for _, rec := range records.Codes {
			row := codeRow(rec)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, rec := range records.Ranges {
			row := rangeRow{
				Start:       rec.Start,
				End:         rec.End,
				Name:        rec.Name,
				Description: rec.Description,
				Reserved:    rec.Reserved,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for id, rec := range records.Categories {
			codes, err := json.Marshal(rec.Codes)
			if err != nil {
				return err
			}
			row := categoryRow{
				ID:          id,
				Name:        rec.Name,
				Description: rec.Description,
				Codes:       string(codes),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Load reads the full snapshot into records.
func (s *DatabaseSource) Load(ctx context.Context) (*Records, error) {
	db := s.db.WithContext(ctx)

	var codeRows []codeRow
	if err := db.Order("mcc").Find(&codeRows).Error; err != nil {
		return nil, NewLoadError(s.name, err)
	}

	var rangeRows []rangeRow
	if err := db.Order("start_code").Find(&rangeRows).Error; err != nil {
		return nil, NewLoadError(s.name, err)
	}

	var categoryRows []categoryRow
	if err := db.Order("id").Find(&categoryRows).Error; err != nil {
		return nil, NewLoadError(s.name, err)
	}

	records := &Records{
		Codes:      make([]CodeRecord, 0, len(codeRows)),
		Ranges:     make([]RangeRecord, 0, len(rangeRows)),
		Categories: make(map[string]CategoryRecord, len(categoryRows)),
	}

	for _, row := range codeRows {
		records.Codes = append(records.Codes, CodeRecord(row))
	}

	for _, row := range rangeRows {
		records.Ranges = append(records.Ranges, RangeRecord{
			Start:       row.Start,
			End:         row.End,
			Name:        row.Name,
			Description: row.Description,
			Reserved:    row.Reserved,
		})
	}

	for _, row := range categoryRows {
		var codes []string
		if err := json.Unmarshal([]byte(row.Codes), &codes); err != nil {
			return nil, NewLoadError(s.name, fmt.Errorf("category %s codes: %w", row.ID, err))
		}
		records.Categories[row.ID] = CategoryRecord{
			Name:        row.Name,
			Description: row.Description,
			Codes:       codes,
		}
	}

	return records, nil
}

// Close releases the underlying connection pool.
func (s *DatabaseSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
