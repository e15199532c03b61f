package migrations

import (
	"fmt"

	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/linskybing/programhub/pkg/logger"
	"gorm.io/gorm"
)

type constraint struct {
	name string
	expr string
}

var applicationConstraints = []constraint{
	{
		name: "chk_program_applications_status",
		expr: "status IN ('draft','submitted','under_review','accepted','rejected','withdrawn')",
	},
	{
		// submitted_at is set exactly when the application left draft
		name: "chk_program_applications_submitted_at",
		expr: "(status = 'draft') = (submitted_at IS NULL)",
	},
}

// Run migrates the application tables and adds the check constraints that
// AutoMigrate cannot express.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&program.Application{}, &program.StatusChange{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return addConstraints(db)
}

func addConstraints(db *gorm.DB) error {
	table := program.Application{}.TableName()
	for _, c := range applicationConstraints {
		if db.Migrator().HasConstraint(&program.Application{}, c.name) {
			continue
		}
		sql := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)", table, c.name, c.expr)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", c.name, err)
		}
		logger.For("migrations").WithField("constraint", c.name).Info("Added constraint")
	}
	return nil
}
