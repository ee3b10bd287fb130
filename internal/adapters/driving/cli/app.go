package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/drivers"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
	"github.com/custodia-labs/zicoder/internal/core/services"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// shutdownTimeout bounds how long active drivers get to disconnect.
const shutdownTimeout = 10 * time.Second

// app wires the marketplaces and catalogues shared by the serve commands.
type app struct {
	settings   domain.Settings
	catalogues *drivers.Catalogues

	models     *services.ModelMarketplace
	mcpServers *services.MCPServerMarketplace
	cache      *services.CacheMarketplace
	queue      *services.QueueMarketplace
}

// loadSettings reads the config file selected by --config.
func loadSettings() (domain.Settings, string, error) {
	store, err := file.NewSettingsStore(configPath)
	if err != nil {
		return domain.Settings{}, "", fmt.Errorf("opening config: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return domain.Settings{}, store.Path(), fmt.Errorf("loading config %s: %w", store.Path(), err)
	}
	return settings, store.Path(), nil
}

// newApp creates empty marketplaces and installs every driver declared in
// settings. On error, drivers already connected are disconnected.
func newApp(ctx context.Context, settings domain.Settings, catalogues *drivers.Catalogues) (*app, error) {
	if settings.Log.Verbose {
		logger.SetVerbose(true)
	}

	a := &app{
		settings:   settings,
		catalogues: catalogues,
		models:     services.NewModelMarketplace(),
		mcpServers: services.NewMCPServerMarketplace(),
		cache:      services.NewCacheMarketplace(),
		queue:      services.NewQueueMarketplace(),
	}

	logger.Section("Installing drivers")
	err := errors.Join(
		install[driven.ModelDriver](ctx, a.models, catalogues.Models, settings.Models),
		install[driven.MCPDriver](ctx, a.mcpServers, catalogues.MCPServers, settings.MCPServers),
		install[driven.CacheDriver](ctx, a.cache, catalogues.Cache, settings.Cache),
		install[driven.QueueDriver](ctx, a.queue, catalogues.Queue, settings.Queue),
	)
	if err != nil {
		a.shutdown()
		return nil, err
	}
	return a, nil
}

// install builds, registers, activates and connects each declared driver.
func install[D driven.Driver](
	ctx context.Context,
	market driving.Marketplace[D],
	catalogue driving.DriverCatalogue[D],
	decls []domain.DriverSettings,
) error {
	for _, decl := range decls {
		driver, err := catalogue.Build(decl.Driver, decl.Config)
		if err != nil {
			return fmt.Errorf("%s %q: %w", market.Kind(), decl.Name, err)
		}
		if active, ok := market.ActiveName(); ok && active == decl.Name {
			if err := market.Disconnect(ctx); err != nil {
				logger.Warn("%s: disconnect replaced driver %q: %v", market.Kind(), decl.Name, err)
			}
		}
		market.Register(decl.Name, func() D { return driver })

		if !decl.Active {
			continue
		}
		if err := market.SetActive(decl.Name); err != nil {
			return fmt.Errorf("%s %q: %w", market.Kind(), decl.Name, err)
		}
		if decl.Connect {
			if err := market.Connect(ctx); err != nil {
				return fmt.Errorf("%s %q: connect: %w", market.Kind(), decl.Name, err)
			}
		}
		logger.Info("%s: %q (%s) active", market.Kind(), decl.Name, decl.Driver)
	}
	return nil
}

// shutdown disconnects the active driver of every marketplace concurrently.
// Failures are logged; a marketplace with no active driver is skipped.
func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	disconnects := map[domain.MarketplaceKind]func(context.Context) error{
		domain.MarketplaceModel: a.models.Disconnect,
		domain.MarketplaceMCP:   a.mcpServers.Disconnect,
		domain.MarketplaceCache: a.cache.Disconnect,
		domain.MarketplaceQueue: a.queue.Disconnect,
	}

	var g errgroup.Group
	for kind, disconnect := range disconnects {
		g.Go(func() error {
			err := disconnect(ctx)
			if err != nil && !errors.Is(err, domain.ErrNoActiveDriver) {
				logger.Warn("%s: disconnect: %v", kind, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
