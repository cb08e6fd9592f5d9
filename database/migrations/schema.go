package migrations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tables lists the tables the service owns.
var Tables = []string{"users", "orders"}

type orderComment struct {
	Comment string `gorm:"type:text;default:''"`
}

func (orderComment) TableName() string { return "orders" }

type orderAddress struct {
	Address string `gorm:"type:text"`
}

func (orderAddress) TableName() string { return "orders" }

// orderCreatedAt carries no database default: SQLite refuses to add a column
// defaulting to CURRENT_TIMESTAMP, and GORM sets created_at on every insert.
type orderCreatedAt struct {
	CreatedAt time.Time
}

func (orderCreatedAt) TableName() string { return "orders" }

// Repair lists what ReconcileOrders changed.
type Repair struct {
	AddedComment   bool
	AddedCreatedAt bool
	DroppedAddress bool
}

// ReconcileOrders brings an existing orders table to the expected column
// set by reading the live catalog: it adds comment and created_at when
// missing and drops a leftover address column. Rows that predate created_at
// are stamped with the repair time. It changes nothing on a table that already
// matches, and does nothing when orders does not exist.
func ReconcileOrders(db *gorm.DB) (Repair, error) {
	var repair Repair
	m := db.Migrator()

	if !m.HasTable("orders") {
		return repair, nil
	}

	if !m.HasColumn(&orderComment{}, "comment") {
		if err := m.AddColumn(&orderComment{}, "Comment"); err != nil {
			return repair, fmt.Errorf("add orders.comment: %w", err)
		}
		repair.AddedComment = true
	}

	if !m.HasColumn(&orderCreatedAt{}, "created_at") {
		if err := m.AddColumn(&orderCreatedAt{}, "CreatedAt"); err != nil {
			return repair, fmt.Errorf("add orders.created_at: %w", err)
		}
		err := db.Exec("UPDATE orders SET created_at = ? WHERE created_at IS NULL", time.Now()).Error
		if err != nil {
			return repair, fmt.Errorf("backfill orders.created_at: %w", err)
		}
		repair.AddedCreatedAt = true
	}

	if m.HasColumn(&orderAddress{}, "address") {
		if err := dropColumn(db, "orders", "address"); err != nil {
			return repair, fmt.Errorf("drop orders.address: %w", err)
		}
		repair.DroppedAddress = true
	}

	return repair, nil
}

// dropColumn issues a plain ALTER TABLE. The sqlite migrator's DropColumn
// rebuilds the table and fails on tables whose DDL it did not write.
func dropColumn(db *gorm.DB, table, column string) error {
	return db.Exec("ALTER TABLE ? DROP COLUMN ?", clause.Table{Name: table}, clause.Column{Name: column}).Error
}

// ensureMu keeps the startup run and the delayed recheck from overlapping.
var ensureMu sync.Mutex

// EnsureSchema applies pending migrations, then reconciles orders again so
// drift introduced after the migrations ran is repaired too. It is
// idempotent and concurrent calls run one at a time. Callers log the error
// and carry on; a failed schema step must not stop the server.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	ensureMu.Lock()
	defer ensureMu.Unlock()

	log := logger.WithCtx(ctx)

	applied, runErr := migration.New(db).Run(ctx)
	if len(applied) > 0 {
		log.Info("schema: migrations applied", "names", applied)
	}

	repair, repairErr := ReconcileOrders(db.WithContext(ctx))
	if repair.AddedComment {
		log.Warn("schema: orders.comment was missing and has been added")
	}
	if repair.AddedCreatedAt {
		log.Warn("schema: orders.created_at was missing and has been added")
	}
	if repair.DroppedAddress {
		log.Warn("schema: legacy orders.address column dropped")
	}

	if err := errors.Join(runErr, repairErr); err != nil {
		metrics.SchemaRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("schema: %w", err)
	}

	metrics.SchemaRuns.WithLabelValues("ok").Inc()
	return nil
}
