// Package container wires application dependencies for the entrypoints.
package container

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eightchip/Custom-Merge-Excel-for-web/adapters/api"
	"github.com/eightchip/Custom-Merge-Excel-for-web/adapters/excel"
	"github.com/eightchip/Custom-Merge-Excel-for-web/app"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/config"
	"github.com/eightchip/Custom-Merge-Excel-for-web/internal/logging"
)

// Container holds the shared application dependencies
type Container struct {
	Config *config.Config
	Logger zerolog.Logger
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config: cfg,
		Logger: logging.New(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}),
	}, nil
}

// Workbench assembles the file pipeline for the given artifact format.
func (c *Container) Workbench(format excel.Format) *app.WorkbenchService {
	reader := excel.NewDataReader(c.Logger)
	writer := excel.NewResultWriter(format, c.Logger)
	return app.NewWorkbenchService(reader, writer, c.Logger)
}

// APIServer assembles the HTTP server.
func (c *Container) APIServer() *api.Server {
	return api.NewServer(c.Config.Server, c.Logger)
}
