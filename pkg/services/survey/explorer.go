package survey

import (
	"context"
	"fmt"

	"github.com/de-tools/coop-atlas/pkg/adapters"
	"github.com/de-tools/coop-atlas/pkg/models/domain"
	surveystore "github.com/de-tools/coop-atlas/pkg/store/duckdb/survey"
)

// Explorer hands out immutable dataset snapshots by name. There is no
// shared preloaded state: every analysis call receives an injected
// snapshot.
type Explorer interface {
	ListDatasets(ctx context.Context) ([]string, error)
	GetDataset(ctx context.Context, name string) (*domain.Dataset, error)
}

type storeExplorer struct {
	store surveystore.Store
}

func NewExplorer(store surveystore.Store) Explorer {
	return &storeExplorer{store: store}
}

func (e *storeExplorer) ListDatasets(ctx context.Context) ([]string, error) {
	return e.store.ListDatasets(ctx)
}

func (e *storeExplorer) GetDataset(ctx context.Context, name string) (*domain.Dataset, error) {
	columns, values, err := e.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", name, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset %q not found", name)
	}
	return adapters.MapStoreValuesToDataset(columns, values), nil
}
