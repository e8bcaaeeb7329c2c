package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/controller"
	"github.com/boolean-maybe/tock/stats"
	"github.com/boolean-maybe/tock/store"
	"github.com/boolean-maybe/tock/store/filekv"
	"github.com/boolean-maybe/tock/store/sqlitekv"
	"github.com/boolean-maybe/tock/task"
)

// Services holds the persistence and domain layer shared by the TUI and the
// command line.
type Services struct {
	Backend     string
	DataDir     string
	KV          store.KeyValueStore
	TaskStore   *store.TaskStore
	Stats       *stats.Engine
	Categorizer *task.Categorizer
	Tasks       *controller.TaskController

	closer io.Closer
}

// Close releases the backing store.
func (s *Services) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// WatchMatcher returns a path filter for the data files of the backend, or
// nil when nothing on disk backs the data.
func (s *Services) WatchMatcher() func(path string) bool {
	switch s.Backend {
	case config.BackendFile:
		fkv, ok := s.KV.(*filekv.Store)
		if !ok {
			return nil
		}
		return func(path string) bool {
			key := fkv.KeyForPath(path)
			return key == store.KeyTasks || key == store.KeyStats
		}
	case config.BackendSQLite:
		return func(path string) bool {
			return filepath.Base(path) == sqlitekv.FileName
		}
	default:
		return nil
	}
}

// OpenKV opens the key-value backend in dir. The closer is nil when the
// backend holds no resources.
func OpenKV(backend, dir string) (store.KeyValueStore, io.Closer, error) {
	switch backend {
	case config.BackendSQLite:
		db, err := sqlitekv.OpenDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return db, db, nil
	case config.BackendMemory:
		return store.NewMemoryKV(), nil, nil
	default:
		fkv, err := filekv.NewOS(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return fkv, nil, nil
	}
}

// InitServices opens the configured backend and loads tasks and stats.
func InitServices() (*Services, error) {
	backend := config.GetBackend()
	dir := config.GetDataDir()

	kv, closer, err := OpenKV(backend, dir)
	if err != nil {
		return nil, err
	}
	svc, err := NewServices(kv, config.GetCategories(), goalDefaults())
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	svc.Backend = backend
	svc.DataDir = dir
	svc.closer = closer

	slog.Info("stores initialized", "backend", backend, "dir", dir, "tasks", len(svc.TaskStore.All()))
	return svc, nil
}

// NewServices builds the domain layer over kv.
func NewServices(kv store.KeyValueStore, categories []task.Category, goals stats.Goals) (*Services, error) {
	taskStore, err := store.NewTaskStore(kv)
	if err != nil {
		return nil, fmt.Errorf("initialize task store: %w", err)
	}

	engine := stats.NewEngine(kv, goals, nil)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	categorizer := task.NewCategorizer(categories)
	return &Services{
		KV:          kv,
		TaskStore:   taskStore,
		Stats:       engine,
		Categorizer: categorizer,
		Tasks:       controller.NewTaskController(taskStore, engine, categorizer, nil, config.GenerateID),
	}, nil
}

func goalDefaults() stats.Goals {
	daily, weekly, monthly := config.GetGoalDefaults()
	return stats.Goals{Daily: daily, Weekly: weekly, Monthly: monthly}
}
