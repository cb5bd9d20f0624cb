package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/search"
	"github.com/mattsolo1/grove-navtree/pkg/vault"
)

// Service is the data-loading side of the navigation menu
type Service struct {
	Config *Config
	Logger *logrus.Entry
}

// Config holds service configuration
type Config struct {
	VaultDir  string
	VaultName string // Defaults to the vault directory name
	IndexPath string // sqlite index; defaults to <vault>/.navtree/index.db
	UseIndex  bool   // Load notes from the index instead of scanning the vault
}

// New creates a new service
func New(config *Config, logger *logrus.Entry) (*Service, error) {
	if config == nil || config.VaultDir == "" {
		return nil, fmt.Errorf("no vault directory configured")
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	info, err := os.Stat(config.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", config.VaultDir)
	}

	if config.IndexPath == "" {
		config.IndexPath = filepath.Join(config.VaultDir, ".navtree", "index.db")
	}

	return &Service{
		Config: config,
		Logger: logger,
	}, nil
}

// LoadNoteData returns the vault's notes, from the index when configured
func (s *Service) LoadNoteData() (*models.NoteData, error) {
	if s.Config.UseIndex {
		idx, err := s.openIndex()
		if err != nil {
			return nil, err
		}
		defer idx.Close()

		data, err := idx.Load()
		if err != nil {
			return nil, fmt.Errorf("load index: %w", err)
		}
		s.Logger.WithFields(logrus.Fields{"notes": len(data.Notes), "source": "index"}).Debug("note data loaded")
		return data, nil
	}

	data, err := vault.Load(s.Config.VaultDir, vault.WithVaultName(s.Config.VaultName))
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"notes": len(data.Notes), "source": "vault"}).Debug("note data loaded")
	return data, nil
}

// RebuildIndex scans the vault and rewrites the index. It returns the number
// of indexed notes.
func (s *Service) RebuildIndex() (int, error) {
	data, err := vault.Load(s.Config.VaultDir, vault.WithVaultName(s.Config.VaultName))
	if err != nil {
		return 0, err
	}

	idx, err := s.openIndex()
	if err != nil {
		return 0, err
	}
	defer idx.Close()

	if err := idx.ReplaceAll(data); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}
	count, err := idx.Count()
	if err != nil {
		return 0, fmt.Errorf("count indexed notes: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{"notes": count, "index": s.Config.IndexPath}).Info("index rebuilt")
	return count, nil
}

// SearchTitles searches note titles in the index
func (s *Service) SearchTitles(query string, limit int) ([]*models.Note, error) {
	idx, err := s.openIndex()
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	results, err := idx.SearchTitles(query, limit)
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	return results, nil
}

// ResolveNoteRef finds a note by id, falling back to an fname match.
func ResolveNoteRef(data *models.NoteData, ref string) (*models.Note, error) {
	if !data.Verify() {
		return nil, fmt.Errorf("note data not loaded")
	}
	if note := data.Notes.Get(ref); note != nil {
		return note, nil
	}
	if note := data.Notes.FindByFname(ref); note != nil {
		return note, nil
	}
	return nil, fmt.Errorf("note not found: %s", ref)
}

func (s *Service) openIndex() (*search.Index, error) {
	if err := os.MkdirAll(filepath.Dir(s.Config.IndexPath), 0755); err != nil {
		return nil, fmt.Errorf("ensure index directory: %w", err)
	}
	idx, err := search.NewIndex(s.Config.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return idx, nil
}
