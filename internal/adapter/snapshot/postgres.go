package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// snapshotRecord is one row per namespace
type snapshotRecord struct {
	Namespace string `gorm:"primaryKey;size:64"`
	Payload   string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (snapshotRecord) TableName() string { return "state_snapshots" }

// PostgresStore keeps the snapshot in the state_snapshots table
type PostgresStore struct {
	db        *gorm.DB
	namespace string
	log       *zap.Logger
}

func NewPostgresStore(url, namespace string, logQueries bool, log *zap.Logger) (*PostgresStore, error) {
	level := logger.Warn
	if logQueries {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// a single writer; the memory database serialises saves
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)

	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL", zap.String("namespace", namespace))
	return &PostgresStore{db: db, namespace: namespace, log: log}, nil
}

func (p *PostgresStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	var rec snapshotRecord
	err := p.db.WithContext(ctx).First(&rec, "namespace = ?", p.namespace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decode([]byte(rec.Payload))
}

func (p *PostgresStore) Save(ctx context.Context, s *domain.Snapshot) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	rec := snapshotRecord{Namespace: p.namespace, Payload: string(b), UpdatedAt: time.Now().UTC()}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	return p.db.WithContext(ctx).Delete(&snapshotRecord{}, "namespace = ?", p.namespace).Error
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
