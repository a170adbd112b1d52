/*
Package textfile loads text files into piece table documents and saves
documents back to disk.

Files are accessed through an afero.Fs, so clients may use the OS filesystem
(afero.NewOsFs) or an in-memory one for tests. A document is always saved as
the flat dump of its text; saving goes to a temporary file in the target's
directory which is then renamed over the target.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}
