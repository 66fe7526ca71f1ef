package infra

import (
	"fmt"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (the single-open-session partial index and the monetary
// CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Surfaces unique violations as gorm.ErrDuplicatedKey so the caja
		// open path can translate the race loser into a domain error.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates the schema and applies the SQL patches. Also used by
// the integration tests against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Item{},
		&model.SesionCaja{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Abono{},
		&model.Gasto{},
		&model.ReciboVenta{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Every statement is guarded so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open register, system-wide. Concurrent opens race to
		// this index; the loser gets a unique violation inside its tx.
		{"unique open cash session", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cash_registers_abierta') THEN
    CREATE UNIQUE INDEX uni_cash_registers_abierta
        ON cash_registers (estado)
        WHERE estado = 'ABIERTA';
  END IF;
END $$`},
		// Ledger entries are strictly positive.
		{"payment_history positive monto", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_payment_history_monto_pos') THEN
    ALTER TABLE payment_history
      ADD CONSTRAINT chk_payment_history_monto_pos CHECK (monto > 0);
  END IF;
END $$`},
		// A sale's outstanding balance never goes negative.
		{"sales non-negative saldo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_sales_saldo_no_negativo') THEN
    ALTER TABLE sales
      ADD CONSTRAINT chk_sales_saldo_no_negativo CHECK (saldo_pendiente >= 0);
  END IF;
END $$`},
		// A sale can't drive a product's stock below zero; the violation
		// aborts the whole sale transaction.
		{"items non-negative stock", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_items_stock_no_negativo') THEN
    ALTER TABLE items
      ADD CONSTRAINT chk_items_stock_no_negativo CHECK (stock IS NULL OR stock >= 0);
  END IF;
END $$`},
		{"expenses positive monto", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_expenses_monto_pos') THEN
    ALTER TABLE expenses
      ADD CONSTRAINT chk_expenses_monto_pos CHECK (monto > 0);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
