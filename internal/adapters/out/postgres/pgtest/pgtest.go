// Package pgtest starts a disposable PostgreSQL container with the schema
// applied, for repository and query integration suites.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/organizationrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/organization"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a running container and a migrated connection to it.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE defect_reports, item_handovers, dispatch_request_items,
		dispatch_requests, payments, items, orders, users, outlets, organizations CASCADE`).Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Tenant is a stored organization with one outlet.
type Tenant struct {
	Organization *organization.Organization
	Outlet       *organization.Outlet
}

// SeedTenant stores an organization named slug with one outlet.
func (d *Database) SeedTenant(ctx context.Context, slug string) (Tenant, error) {
	org, err := organization.NewOrganization(kernel.NewUUID(), "Laundry "+slug, slug, slug+"@laundry.test", "", time.Now().UTC())
	if err != nil {
		return Tenant{}, err
	}
	outlet, err := organization.NewOutlet(kernel.NewUUID(), org.ID(), "Main Branch", "MAIN", "", "", "", nil)
	if err != nil {
		return Tenant{}, err
	}

	if err := organizationrepo.NewGormOrganizationRepository(d.DB, discard{}).Add(ctx, org); err != nil {
		return Tenant{}, err
	}
	if err := organizationrepo.NewGormOutletRepository(d.DB, discard{}).Add(ctx, outlet); err != nil {
		return Tenant{}, err
	}
	return Tenant{Organization: org, Outlet: outlet}, nil
}

// AddOutlet stores another outlet of the tenant.
func (d *Database) AddOutlet(ctx context.Context, t Tenant, name string) (*organization.Outlet, error) {
	outlet, err := organization.NewOutlet(kernel.NewUUID(), t.Organization.ID(), name, "", "", "", "", nil)
	if err != nil {
		return nil, err
	}
	if err := organizationrepo.NewGormOutletRepository(d.DB, discard{}).Add(ctx, outlet); err != nil {
		return nil, err
	}
	return outlet, nil
}

type discard struct{}

func (discard) TrackAggregate(kernel.UUID, any) {}
