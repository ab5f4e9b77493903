// Package fsutil holds the filesystem helpers shared by the build phases.
package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// CopyDir recursively copies src into dst, overwriting files that already exist.
// Symlinks are followed.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.FileSystemError(err, "stat", src).Build()
	}
	if !srcInfo.IsDir() {
		return errors.NewError(errors.CategoryFileSystem, "copy source is not a directory").WithContext("path", src).Build()
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return errors.FileSystemError(err, "mkdir", dst).Build()
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.FileSystemError(err, "read dir", src).Build()
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := os.Stat(srcPath)
		if err != nil {
			return errors.FileSystemError(err, "stat", srcPath).Build()
		}
		if info.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := CopyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// CopyFile copies a single file, preserving its permission bits.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.FileSystemError(err, "open", src).Build()
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.FileSystemError(err, "stat", src).Build()
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.FileSystemError(err, "create", dst).Build()
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.FileSystemError(err, "copy", dst).Build()
	}
	return nil
}
