package tail

import (
	"fmt"
	"io"
	"os"

	"github.com/laralog/laralog/internal/domain"
)

// ReadNew opens the file, reads everything from the cursor's offset to
// the current end of file, and advances the offset by the bytes read.
// The handle is opened and closed per call so no open stream outlives a
// rotation. On failure the cursor is left untouched so the next poll
// retries the same range.
func ReadNew(cursor *Cursor) ([]byte, error) {
	f, err := os.Open(cursor.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, cursor.Path)
		}
		return nil, fmt.Errorf("opening %s: %w", cursor.Path, err)
	}
	defer f.Close()

	if _, err := f.Seek(cursor.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking %s to %d: %w", cursor.Path, cursor.Offset, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cursor.Path, err)
	}

	cursor.Offset += int64(len(data))
	return data, nil
}

// EndOffset returns the file's current size, used to start watching at
// the end of existing content.
func EndOffset(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return 0, fmt.Errorf("probing %s: %w", path, err)
	}
	return info.Size(), nil
}
