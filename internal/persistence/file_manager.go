package persistence

import (
	"fmt"
	"meetsync/internal/models"
	"meetsync/internal/persistence/interfaces"
	"meetsync/internal/providers"
	"meetsync/internal/storage"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// FileManager writes and reads snapshots of stores that keep their state in
// memory. Other stores are left alone.
type FileManager struct {
	snapshotter storage.Snapshotter
	compressor  interfaces.CompressorInterface
	logger      providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store storage.Store, logger providers.Logger) *FileManager {
	snapshotter, _ := store.(storage.Snapshotter)
	return &FileManager{
		snapshotter: snapshotter,
		compressor:  compressor,
		logger:      logger,
	}
}

func (f *FileManager) Enabled() bool {
	return f.snapshotter != nil
}

func (f *FileManager) SaveToFile(fileName string) error {
	if f.snapshotter == nil {
		return nil
	}

	jsonData, err := json.Marshal(f.snapshotter.Snapshot())
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	if f.snapshotter == nil {
		return nil
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported %d", snapshot.Version, models.SnapshotVersion)
	}

	f.snapshotter.Restore(&snapshot)
	f.logger.Infof(providers.TypeApp, "Restored %d groups, %d members, %d availability records",
		len(snapshot.Groups), len(snapshot.Members), len(snapshot.Availability))
	return nil
}
