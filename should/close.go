// Package should runs cleanup steps whose failure is logged rather than returned,
// which keeps defer statements short.
package should

import (
	"io"
	"log/slog"
	"os"
)

// Close closes closer and logs msg with the error if that fails.
//
//	defer should.Close(db, "closing history store")
func Close(closer io.Closer, msg string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		slog.Error(msg, "error", err)
	}
}

// Remove deletes path and logs msg with the error if that fails. A path that
// is already gone is not an error.
func Remove(path string, msg string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Error(msg, "path", path, "error", err)
	}
}
