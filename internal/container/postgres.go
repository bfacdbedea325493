package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/store"
)

// PostgresPackage provides the pgx pool and the Postgres repository, with
// the schema bootstrapped on first use.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresURL)
	})

	do.Provide(injector, func(i *do.Injector) (*store.Postgres, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)

		repo := store.NewPostgres(pool)
		if err := repo.Migrate(context.Background()); err != nil {
			return nil, err
		}

		return repo, nil
	})
}
