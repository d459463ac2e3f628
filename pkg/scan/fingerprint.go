package scan

import (
	"os"
	"path/filepath"

	"github.com/cratemap/cratemap/pkg/errors"
)

// Fingerprint is a lightweight change signature for one source file.
// Two scans over an unchanged workspace produce equal fingerprint lists;
// any create, delete, rename, resize, or touch changes the list.
type Fingerprint struct {
	RelativePath   string
	ModifiedMillis int64
	ByteLen        int64
}

// Fingerprints computes the fingerprint list for every source file under
// root, in the same sorted order as Files. It never reads file contents.
//
// Returns an IO_ERROR naming the offending path if any file cannot be
// stat'ed. The result is only used by the watch scheduler to decide whether
// a rebuild is worth scheduling; it never appears in a graph.
func Fingerprints(root string) ([]Fingerprint, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}

	fingerprints := make([]Fingerprint, 0, len(files))
	for _, rel := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "failed to read metadata for %s", abs)
		}
		fingerprints = append(fingerprints, Fingerprint{
			RelativePath:   rel,
			ModifiedMillis: info.ModTime().UnixMilli(),
			ByteLen:        info.Size(),
		})
	}

	return fingerprints, nil
}
