package eventlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adiyatma/idp-dashboard/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists one keyed event blob per category. Implementations must
// treat a never-written category as empty, not as an error, and a Save must
// never leave the previously durable state corrupted.
type Store interface {
	Load(category string) ([]model.StoredEvent, error)
	Save(category string, events []model.StoredEvent) error
}

// FileStore keeps one JSON file per category under a data directory. Saves
// write a temp file in the same directory and rename it over the old one, so
// an interrupted write leaves the previous file intact.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(category string) string {
	return filepath.Join(s.dir, category+".json")
}

func (s *FileStore) Load(category string) ([]model.StoredEvent, error) {
	raw, err := os.ReadFile(s.path(category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read category %s: %w", category, err)
	}
	var events []model.StoredEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("decode category %s: %w", category, err)
	}
	return events, nil
}

func (s *FileStore) Save(category string, events []model.StoredEvent) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode category %s: %w", category, err)
	}

	tmpFile, err := os.CreateTemp(s.dir, category+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer os.Remove(tmpName)

	if _, err := tmpFile.Write(raw); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write category %s: %w", category, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync category %s: %w", category, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close category %s: %w", category, err)
	}

	if err := os.Rename(tmpName, s.path(category)); err != nil {
		return fmt.Errorf("swap category %s: %w", category, err)
	}
	return nil
}

// GormStore keeps one CategoryLog row per category with the event slice in a
// JSON column. The whole row is replaced per save; atomicity is the
// database's job.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(category string) ([]model.StoredEvent, error) {
	var row model.CategoryLog
	err := s.db.Where("category = ?", category).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", category, err)
	}
	if len(row.Events) == 0 {
		return nil, nil
	}
	var events []model.StoredEvent
	if err := json.Unmarshal(row.Events, &events); err != nil {
		return nil, fmt.Errorf("decode category %s: %w", category, err)
	}
	return events, nil
}

func (s *GormStore) Save(category string, events []model.StoredEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode category %s: %w", category, err)
	}
	row := model.CategoryLog{Category: category, Events: raw}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"events", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save category %s: %w", category, err)
	}
	return nil
}
