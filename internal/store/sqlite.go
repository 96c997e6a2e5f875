package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// scenarioRecord is the row layout of the scenarios table.
type scenarioRecord struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID        string    `gorm:"column:id;size:36;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index;not null"`

	ScenarioName              string  `gorm:"column:scenario_name"`
	MonthlyInvoiceVolume      float64 `gorm:"column:monthly_invoice_volume"`
	NumAPStaff                float64 `gorm:"column:num_ap_staff"`
	AvgHoursPerInvoice        float64 `gorm:"column:avg_hours_per_invoice"`
	HourlyWage                float64 `gorm:"column:hourly_wage"`
	ErrorRateManual           float64 `gorm:"column:error_rate_manual"`
	ErrorCost                 float64 `gorm:"column:error_cost"`
	TimeHorizonMonths         float64 `gorm:"column:time_horizon_months"`
	OneTimeImplementationCost float64 `gorm:"column:one_time_implementation_cost"`

	MonthlySavings    float64 `gorm:"column:monthly_savings"`
	CumulativeSavings float64 `gorm:"column:cumulative_savings"`
	NetSavings        float64 `gorm:"column:net_savings"`
	PaybackMonths     float64 `gorm:"column:payback_months"`
	ROIPercentage     float64 `gorm:"column:roi_percentage"`
}

func (scenarioRecord) TableName() string {
	return "scenarios"
}

func recordFromScenario(s simulation.Scenario) scenarioRecord {
	return scenarioRecord{
		ID:                        s.ID,
		CreatedAt:                 s.CreatedAt,
		ScenarioName:              s.ScenarioName,
		MonthlyInvoiceVolume:      s.MonthlyInvoiceVolume,
		NumAPStaff:                s.NumAPStaff,
		AvgHoursPerInvoice:        s.AvgHoursPerInvoice,
		HourlyWage:                s.HourlyWage,
		ErrorRateManual:           s.ErrorRateManual,
		ErrorCost:                 s.ErrorCost,
		TimeHorizonMonths:         s.TimeHorizonMonths,
		OneTimeImplementationCost: s.OneTimeImplementationCost,
		MonthlySavings:            s.MonthlySavings,
		CumulativeSavings:         s.CumulativeSavings,
		NetSavings:                s.NetSavings,
		PaybackMonths:             s.PaybackMonths,
		ROIPercentage:             s.ROIPercentage,
	}
}

func (r scenarioRecord) scenario() simulation.Scenario {
	return simulation.Scenario{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.UTC(),
		Input: simulation.Input{
			ScenarioName:              r.ScenarioName,
			MonthlyInvoiceVolume:      r.MonthlyInvoiceVolume,
			NumAPStaff:                r.NumAPStaff,
			AvgHoursPerInvoice:        r.AvgHoursPerInvoice,
			HourlyWage:                r.HourlyWage,
			ErrorRateManual:           r.ErrorRateManual,
			ErrorCost:                 r.ErrorCost,
			TimeHorizonMonths:         r.TimeHorizonMonths,
			OneTimeImplementationCost: r.OneTimeImplementationCost,
		},
		Result: simulation.Result{
			MonthlySavings:    r.MonthlySavings,
			CumulativeSavings: r.CumulativeSavings,
			NetSavings:        r.NetSavings,
			PaybackMonths:     r.PaybackMonths,
			ROIPercentage:     r.ROIPercentage,
		},
	}
}

// SQLiteStore keeps scenarios in a SQLite database through gorm.
type SQLiteStore struct {
	db     *gorm.DB
	logger *zap.Logger
	now    clock
}

// OpenSQLiteStore opens (or creates) the database at path and migrates the
// scenarios table. Use MemoryDSN for a throwaway database.
func OpenSQLiteStore(logger *zap.Logger, path string) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = constants.DefaultSQLitePath
	}

	if path != MemoryDSN {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite connection pool: %w", err)
	}
	if path == MemoryDSN {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			logger.Warn("failed to enable WAL journal mode",
				zap.String("op", "store.OpenSQLiteStore"),
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	if err := db.AutoMigrate(&scenarioRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate scenarios table: %w", err)
	}

	logger.Info("opened sqlite scenario store",
		zap.String("op", "store.OpenSQLiteStore"),
		zap.String("path", path),
	)
	return &SQLiteStore{db: db, logger: logger, now: systemClock}, nil
}

// Insert writes a new row.
func (s *SQLiteStore) Insert(ctx context.Context, scenario simulation.Scenario) (simulation.Scenario, error) {
	scenario.ID = newID()
	scenario.CreatedAt = s.now()

	record := recordFromScenario(scenario)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return simulation.Scenario{}, fmt.Errorf("failed to insert scenario: %w", err)
	}
	return record.scenario(), nil
}

// List returns every row newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]simulation.Scenario, error) {
	var records []scenarioRecord
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Order("seq desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]simulation.Scenario, 0, len(records))
	for _, record := range records {
		scenarios = append(scenarios, record.scenario())
	}
	return scenarios, nil
}

// Get returns the row with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (simulation.Scenario, error) {
	var record scenarioRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return simulation.Scenario{}, ErrNotFound
		}
		return simulation.Scenario{}, fmt.Errorf("failed to get scenario %s: %w", id, err)
	}
	return record.scenario(), nil
}

// Delete removes the row with the given id; zero affected rows is success.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&scenarioRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, result.Error)
	}
	s.logger.Debug("deleted scenario",
		zap.String("op", "store.SQLiteStore.Delete"),
		zap.String("id", id),
		zap.Int64("rows", result.RowsAffected),
	)
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
