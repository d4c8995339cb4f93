package models

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Developer tooling, enabled through environment variables in main:

  GENERATE_MODELS=true         auto-migrates a scratch database from the structs
                               below and writes typed query helpers to ./generated
  GENERATE_COLUMN_REPORT=true  lists columns present in the database but missing
                               from the Go models (drift against goose migrations)

The production schema is owned by the goose migrations in database/migrations.
*/

// All returns one zero value of every persisted model.
func All() []any {
	return []any{
		&User{},
		&ContractorProfile{},
		&Project{},
		&Bid{},
		&JobRequest{},
	}
}

func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
		Logger:                 db.Logger.LogMode(logger.Info),
	})

	log.Info().Msg("Migrating models...")
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto-migrate models: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Msg("Model generation complete")
	return nil
}

// ColumnMismatches returns, per table, the database columns that no model
// field maps to.
func ColumnMismatches(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		columns, err := tableColumns(db, table)
		if err != nil {
			return nil, err
		}
		if missing := findColumnMismatches(columns, modelColumns(stmt.Schema)); len(missing) > 0 {
			report[table] = missing
		}
	}
	return report, nil
}

// LogColumnReport writes ColumnMismatches to the logger.
func LogColumnReport(db *gorm.DB) error {
	report, err := ColumnMismatches(db)
	if err != nil {
		return err
	}
	total := 0
	for table, columns := range report {
		total += len(columns)
		log.Warn().Str("table", table).Strs("columns", columns).Msg("columns not accounted for in model")
	}
	log.Info().Int("mismatchedColumns", total).Msg("column mismatch report complete")
	return nil
}

func tableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	return columns, nil
}

func modelColumns(s *schema.Schema) []string {
	var columns []string
	for _, field := range s.Fields {
		if field.DBName == "" {
			continue
		}
		columns = append(columns, strings.ToLower(field.DBName))
	}
	return columns
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	known := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		known[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
