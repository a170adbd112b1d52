package textfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/piecetable"
	"github.com/spf13/afero"
)

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// ErrNotRegular is returned when trying to load a directory, device or other
// non-regular file.
var ErrNotRegular = errors.New("textfile: not a regular file")

// textFile represents a file which will be loaded as a document.
type textFile struct {
	path string      // file name
	info os.FileInfo // result from Stat(path)
	file afero.File  // file handle
}

// Load reads a file, which must be a text file, and opens it as a document.
// The complete content of the file becomes the original buffer of the
// document.
func Load(fs afero.Fs, name string) (*piecetable.Document, error) {
	tf, err := openFile(fs, name)
	if err != nil {
		return nil, err
	}
	defer tf.file.Close()
	buf, err := tf.readFragments(fragmentSize(tf.info.Size()))
	if err != nil {
		return nil, err
	}
	doc := piecetable.Open(buf)
	tracer().Debugf("loaded %q: %d bytes, %d lines", name, doc.Len(), doc.LineCount())
	return doc, nil
}

// openFile opens a file and collects some useful information on it,
// checking for error conditions.
func openFile(fs afero.Fs, name string) (*textFile, error) {
	fi, err := fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("textfile: %w", err)
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	file, err := fs.Open(name) // just open for read access
	if err != nil {
		return nil, fmt.Errorf("textfile: %w", err)
	}
	return &textFile{path: name, info: fi, file: file}, nil
}

// fragmentSize selects the size of the chunks a file of the given size is
// read in.
func fragmentSize(size int64) int64 {
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// readFragments reads the file fragment by fragment. A file which is
// truncated while reading is an error.
func (tf *textFile) readFragments(fragSize int64) ([]byte, error) {
	size := tf.info.Size()
	buf := make([]byte, size)
	for pos := int64(0); pos < size; pos += fragSize {
		end := min(pos+fragSize, size)
		cnt, err := tf.file.ReadAt(buf[pos:end], pos)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("textfile: error loading fragment of %s at %d: %w", tf.path, pos, err)
		} else if int64(cnt) < end-pos {
			return nil, fmt.Errorf("textfile: not all bytes loaded for fragment of %s at %d", tf.path, pos)
		}
	}
	return buf, nil
}
