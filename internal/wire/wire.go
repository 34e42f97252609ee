// Package wire provides dependency injection for annoboard.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	cliadapter "github.com/example/annoboard/internal/adapters/cli"
	"github.com/example/annoboard/internal/adapters/filesystem"
	"github.com/example/annoboard/internal/adapters/sqlite"
	"github.com/example/annoboard/internal/app"
	"github.com/example/annoboard/internal/config"
	"github.com/example/annoboard/internal/core/extract"
	"github.com/example/annoboard/internal/db"
	"github.com/example/annoboard/internal/ports/primary"
	"github.com/example/annoboard/internal/ports/secondary"
)

var (
	cfg           *config.Config
	logger        *log.Logger
	boardService  primary.BoardService
	importService primary.ImportService
	exportService primary.ExportService
	once          sync.Once
)

// Config returns the configuration loaded from the working directory.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared logger.
func Logger() *log.Logger {
	once.Do(initServices)
	return logger
}

// BoardService returns the singleton BoardService instance.
func BoardService() primary.BoardService {
	once.Do(initServices)
	return boardService
}

// ImportService returns the singleton ImportService instance.
func ImportService() primary.ImportService {
	once.Do(initServices)
	return importService
}

// ExportService returns the singleton ExportService instance.
func ExportService() primary.ExportService {
	once.Do(initServices)
	return exportService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	logger = log.New()
	logger.SetOutput(os.Stderr)

	wd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("failed to get working directory: %v", err)
	}
	cfg, err = config.LoadConfig(wd)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("unknown log level %q, using warn", cfg.LogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)

	boardRepo := newBoardRepository(cfg)

	// Create services (primary ports implementation)
	boards := app.NewBoardService(boardRepo, logger)
	boardService = boards
	importService = app.NewImportService(boards, newPaperCatalog(cfg, wd), extract.New(cfg.ExtractOptions()), logger)
	exportService = app.NewExportService(boards, cfg.MarkdownOptions(), logger)

	logger.WithFields(log.Fields{"backend": cfg.Backend, "data_dir": cfg.DataDir}).Debug("services initialized")
}

// newBoardRepository selects the storage backend named by the config.
func newBoardRepository(cfg *config.Config) secondary.BoardRepository {
	if cfg.Backend == config.BackendFile {
		repo, err := filesystem.NewBoardRepository(filepath.Join(cfg.DataDir, "boards"))
		if err != nil {
			logger.Fatalf("failed to initialize board directory: %v", err)
		}
		return repo
	}

	database, err := db.GetDB(cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	return sqlite.NewBoardRepository(database)
}

// newPaperCatalog returns nil when no papers file is configured.
func newPaperCatalog(cfg *config.Config, wd string) secondary.PaperCatalog {
	if cfg.PapersFile == "" {
		return nil
	}
	path := cfg.PapersFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}
	return filesystem.NewPaperCatalog(path)
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BoardAdapter() *cliadapter.BoardAdapter {
	return BoardAdapterWithOutput(os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) *cliadapter.BoardAdapter {
	once.Do(initServices)
	return cliadapter.NewBoardAdapter(boardService, out)
}

// ImportAdapter returns a new ImportAdapter writing to stdout.
func ImportAdapter() *cliadapter.ImportAdapter {
	once.Do(initServices)
	return cliadapter.NewImportAdapter(importService, os.Stdout)
}

// ExportAdapter returns a new ExportAdapter writing to stdout.
func ExportAdapter() *cliadapter.ExportAdapter {
	once.Do(initServices)
	return cliadapter.NewExportAdapter(exportService, os.Stdout)
}

// Close releases the database connection, if one was opened.
func Close() error {
	return db.Close()
}
