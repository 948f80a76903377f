package settings

import (
	"errors"
	"os"
	"path/filepath"
)

// FilePersister stores the settings blob in a single file.
type FilePersister struct {
	Path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

func (p *FilePersister) LoadData() ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (p *FilePersister) SaveData(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.Path, data, 0o644)
}
