// Package storage provides the path-addressable image store. Registration
// images are keyed by item id, after-return images by rental id. The image
// at position 0 of an item is its canonical before-reference.
package storage

import (
	"io"
)

type ImageStore interface {
	// SaveItemImage stores one registration image for an item at the given
	// position and returns the stored file path and its thumbnail path.
	SaveItemImage(itemID int32, position int, r io.Reader) (filePath, thumbnailPath string, err error)

	// SaveAfterImage stores the after-return image for a rental.
	SaveAfterImage(rentalID int32, r io.Reader) (string, error)

	// ItemImageDir returns the directory holding an item's registration
	// images; it is the detection source for the before inventory.
	ItemImageDir(itemID int32) string

	// AfterImageDir returns the directory holding a rental's after image;
	// it is the detection source for the after inventory.
	AfterImageDir(rentalID int32) string

	// Exists reports whether a previously stored path is still readable.
	Exists(path string) bool

	Open(path string) (io.ReadCloser, error)
}
