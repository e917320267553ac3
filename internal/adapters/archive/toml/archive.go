package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/sahifabooks/orderbot/internal/domain"
	"github.com/sahifabooks/orderbot/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	archivePathKey    = "archive.path"
	archiveFileMode   = 0o600
	archiveDirMode    = 0o700
	archiveConfigDir  = ".orderbot"
	archiveConfigFile = "orders.toml"
	tempFilePattern   = ".orders-*.toml.tmp"
)

// Archive persists finalized orders to a single TOML file. Writes go through
// a temp file and rename so a crash mid-write never corrupts the history.
type Archive struct {
	archivePath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.OrderArchive = (*Archive)(nil)

func NewArchive(cfg *viper.Viper) (*Archive, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, archiveConfigDir, archiveConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, archiveConfigDir))
	cfg.SetDefault(archivePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	archivePath := cfg.GetString(archivePathKey)
	if archivePath == "" {
		return nil, errors.New("archive path is empty")
	}
	archivePath, err = normalizeArchivePath(archivePath)
	if err != nil {
		return nil, err
	}

	return &Archive{archivePath: archivePath, mu: lockForPath(archivePath)}, nil
}

func (a *Archive) Save(ctx context.Context, order domain.ArchivedOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := a.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	file.Orders = append(file.Orders, toSchema(order))

	if err := ctx.Err(); err != nil {
		return err
	}

	return a.writeSchema(file)
}

func (a *Archive) List(ctx context.Context) ([]domain.ArchivedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	file, err := a.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	orders := make([]domain.ArchivedOrder, 0, len(file.Orders))
	for _, entry := range file.Orders {
		order, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (a *Archive) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(a.archivePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read orders file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode orders file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeArchivePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve archive path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (a *Archive) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(a.archivePath), archiveDirMode); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode orders file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(a.archivePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp orders file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp orders file: %w", err)
	}

	if err := tempFile.Chmod(archiveFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp orders file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp orders file: %w", err)
	}

	if err := os.Rename(tempName, a.archivePath); err != nil {
		return fmt.Errorf("replace orders file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(a.archivePath, archiveFileMode); err != nil {
		return fmt.Errorf("chmod orders file: %w", err)
	}

	return nil
}
