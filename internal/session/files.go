package session

import (
	"errors"
	"io"
	"os"

	"iscript/internal/logger"
	"iscript/pkg/scripttypes"
)

// CopyFile copies src to dst, overwriting dst and preserving the permission
// bits and modification time of src.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &scripttypes.ResourceError{Op: "open", Path: src, Err: err}
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return &scripttypes.ResourceError{Op: "stat", Path: src, Err: err}
	}
	if info.IsDir() {
		return &scripttypes.ResourceError{Op: "copy", Path: src, Err: errors.New("is a directory")}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return &scripttypes.ResourceError{Op: "create", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &scripttypes.ResourceError{Op: "copy", Path: src, Err: err}
	}
	if err := out.Close(); err != nil {
		return &scripttypes.ResourceError{Op: "copy", Path: dst, Err: err}
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		logger.Debug("Could not preserve modification time", "path", dst, "error", err)
	}
	return nil
}
