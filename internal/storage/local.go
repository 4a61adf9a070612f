package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sheerent-backend/internal/imaging"
)

// LocalStore implements ImageStore on the local filesystem.
//
// Layout under the root directory:
//
//	items/item_<id>/<position>.jpg        registration images
//	items/item_<id>/thumbs/<position>.jpg thumbnails
//	rentals/rental_<id>/after.jpg         after-return image
//
// ItemImageDir holds originals only. Detection scans that directory as the
// before inventory, so derived files must not land in it.
type LocalStore struct {
	rootDir        string
	thumbnailMaxPx int
}

func NewLocalStore(rootDir string, thumbnailMaxPx int) (*LocalStore, error) {
	for _, dir := range []string{filepath.Join(rootDir, "items"), filepath.Join(rootDir, "rentals")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}
	return &LocalStore{rootDir: rootDir, thumbnailMaxPx: thumbnailMaxPx}, nil
}

func (s *LocalStore) ItemImageDir(itemID int32) string {
	return filepath.Join(s.rootDir, "items", fmt.Sprintf("item_%d", itemID))
}

func (s *LocalStore) AfterImageDir(rentalID int32) string {
	return filepath.Join(s.rootDir, "rentals", fmt.Sprintf("rental_%d", rentalID))
}

func (s *LocalStore) SaveItemImage(itemID int32, position int, r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("reading image upload: %w", err)
	}
	if err := imaging.Validate(data); err != nil {
		return "", "", err
	}

	dir := s.ItemImageDir(itemID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating item image directory: %w", err)
	}

	filePath := filepath.Join(dir, fmt.Sprintf("%d.jpg", position))
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("writing item image: %w", err)
	}

	thumbDir := filepath.Join(dir, "thumbs")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating thumbnail directory: %w", err)
	}
	thumbnailPath := filepath.Join(thumbDir, fmt.Sprintf("%d.jpg", position))
	thumb, err := imaging.Thumbnail(data, s.thumbnailMaxPx)
	if err != nil {
		return "", "", fmt.Errorf("generating thumbnail: %w", err)
	}
	if err := os.WriteFile(thumbnailPath, thumb, 0o644); err != nil {
		return "", "", fmt.Errorf("writing thumbnail: %w", err)
	}

	return filePath, thumbnailPath, nil
}

func (s *LocalStore) SaveAfterImage(rentalID int32, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading after image upload: %w", err)
	}
	if err := imaging.Validate(data); err != nil {
		return "", err
	}

	dir := s.AfterImageDir(rentalID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating after image directory: %w", err)
	}

	path := filepath.Join(dir, "after.jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing after image: %w", err)
	}
	return path, nil
}

func (s *LocalStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
