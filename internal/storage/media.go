// Package storage implements the media store holding uploaded listing images.
package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"motorlot/internal/observability"

	"github.com/google/uuid"
)

// UnassignedDir is the sentinel path segment used for images uploaded before
// they are attached to a listing.
const UnassignedDir = "unassigned"

// MediaStore persists uploaded files and removes them on demand. Paths are
// relative to the store root and use forward slashes.
type MediaStore interface {
	Save(relDir, originalName string, r io.Reader) (string, error)
	Remove(relPath string) error
}

// ListingDir returns the per-listing directory images are stored under.
func ListingDir(listingID uint) string {
	if listingID == 0 {
		return path.Join("listings", UnassignedDir)
	}
	return path.Join("listings", fmt.Sprintf("%d", listingID))
}

// DiskStore is a MediaStore backed by the local filesystem.
type DiskStore struct {
	root string
}

// NewDiskStore creates a disk-backed media store rooted at root, creating the
// directory when absent.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save stores the file under relDir with a fresh random name, preserving the
// original extension, and returns the root-relative path.
func (s *DiskStore) Save(relDir, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	relPath := path.Join(relDir, uuid.NewString()+ext)

	absPath, err := s.abs(relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(absPath)
		return "", fmt.Errorf("write media file: %w", err)
	}

	observability.ImagesStored.Inc()
	return relPath, nil
}

// Remove deletes the stored file. A missing file is not an error; the row is
// the source of truth and a crash between file and row deletion may have
// removed it already.
func (s *DiskStore) Remove(relPath string) error {
	absPath, err := s.abs(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove media file: %w", err)
	}
	observability.ImagesDeleted.Inc()
	return nil
}

// abs resolves relPath inside the store root, rejecting traversal outside it.
func (s *DiskStore) abs(relPath string) (string, error) {
	cleaned := path.Clean("/" + relPath)[1:]
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fs.ErrInvalid
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}
