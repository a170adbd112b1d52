package textfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/piecetable"
	"github.com/spf13/afero"
)

// Save writes the text of doc to file name. The text is written to a
// temporary file in the same directory first, which then replaces name.
// An existing file keeps its permission bits; new files are created 0644.
func Save(fs afero.Fs, name string, doc *piecetable.Document) error {
	perm := os.FileMode(0644)
	if fi, err := fs.Stat(name); err == nil {
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrNotRegular, name)
		}
		perm = fi.Mode().Perm()
	}
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	tmp, err := afero.TempFile(fs, dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("textfile: cannot save %s: %w", name, err)
	}
	tmpname := tmp.Name()
	n, err := doc.WriteTo(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = fs.Chmod(tmpname, perm)
	}
	if err == nil {
		err = fs.Rename(tmpname, name)
	}
	if err != nil {
		_ = fs.Remove(tmpname)
		return fmt.Errorf("textfile: cannot save %s: %w", name, err)
	}
	tracer().Debugf("saved %d bytes to %q", n, name)
	return nil
}
