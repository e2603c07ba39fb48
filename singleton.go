package main

import (
	"errors"
	"io"
	"io/fs"
	"os"

	simple_util "github.com/liserjrqlxue/simple-util"
)

// mergeSingletons folds the two transient unpaired files into dst. An
// absent or empty unpaired file contributes nothing; dst always ends up
// existing, possibly empty, so downstream code can tell "no singletons"
// from "merge never ran". The unpaired files are removed afterwards, but
// only when the merge itself succeeded, so a partial write leaves the
// inputs around for inspection.
func mergeSingletons(u1, u2, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	for _, src := range []string{u1, u2} {
		if err := appendFile(out, src); err != nil {
			_ = out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return err
	}
	for _, src := range []string{u1, u2} {
		if err := os.Remove(src); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func appendFile(dst io.Writer, src string) error {
	f, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer simple_util.DeferClose(f)
	_, err = io.Copy(dst, f)
	return err
}

// fileNonEmpty reports whether path exists with size > 0. A zero-byte
// singleton file must not be passed to the assembler.
func fileNonEmpty(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Size() > 0
}
