// Package artifacts persists uploaded product archives on local disk and
// hands back the stable reference path stored on the project record.
package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotArchive rejects payloads that are not zip archives.
	ErrNotArchive = errors.New("artifact must be a zip archive")
)

// zipMagic is the local-file-header signature every zip starts with.
var zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// DiskStore writes artifacts under a single root directory, one archive
// per slug. The root is created lazily on the first save.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save streams the archive to {root}/{slug}.zip and returns the
// reference path persisted on the record. The original filename is only
// used for the format check; the stored name is derived from the slug.
func (s *DiskStore) Save(slugID, originalName string, r io.Reader) (string, error) {
	if !strings.EqualFold(filepath.Ext(originalName), ".zip") {
		return "", ErrNotArchive
	}

	head := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(r, head); err != nil {
		return "", ErrNotArchive
	}
	if !bytes.Equal(head, zipMagic) {
		return "", ErrNotArchive
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	dst := filepath.Join(s.root, slugID+".zip")
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(head); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write artifact: %w", err)
	}

	return "/uploads/" + slugID + ".zip", nil
}

// Rename moves an already-stored artifact to a new slug and returns the
// new reference path. Used when a slug conflict forces the record insert
// to retry with a fresh slug.
func (s *DiskStore) Rename(oldSlug, newSlug string) (string, error) {
	oldPath := filepath.Join(s.root, oldSlug+".zip")
	newPath := filepath.Join(s.root, newSlug+".zip")
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename artifact: %w", err)
	}
	return "/uploads/" + newSlug + ".zip", nil
}

// Remove deletes a stored artifact. Used to clean up after a slug
// conflict forces a retry with a fresh slug.
func (s *DiskStore) Remove(slugID string) error {
	err := os.Remove(filepath.Join(s.root, slugID+".zip"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the artifact for a slug is on disk. The
// extraction stage uses this as its integrity check.
func (s *DiskStore) Exists(slugID string) bool {
	info, err := os.Stat(filepath.Join(s.root, slugID+".zip"))
	return err == nil && !info.IsDir()
}
