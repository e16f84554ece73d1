package csvtab

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
)

// bundleStub is the self-extracting launcher. The payload archive starts
// on line 7, immediately after the exec line.
const bundleStub = `#!/bin/sh
set -e
dir=$(mktemp -d)
trap 'rm -rf "$dir"' EXIT
tail -n +7 "$0" | tar xz -C "$dir"
exec sh "$dir/%s" "$dir/%s"
`

// Bundle packages a data file and a script into one self-running
// executable: a shell stub followed by a gzipped tar holding both files.
// Running the bundle extracts to a temporary directory and execs the
// script with the data file path as its argument. An empty outPath
// defaults to the script's base name with a ".run" suffix, next to the
// data file. This is the whole packaging surface; the library itself
// exposes nothing else to it.
func Bundle(dataPath, scriptPath, outPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(dataPath), filepath.Base(scriptPath)+".run")
	}

	scriptName := filepath.Base(scriptPath)
	dataName := filepath.Base(dataPath)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, bundleStub, scriptName, dataName)
	if err := writeBundlePayload(&buf, scriptName, script, dataName, data); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUnwritableTarget, err)
	}
	return nil
}

func writeBundlePayload(buf *bytes.Buffer, scriptName string, script []byte, dataName string, data []byte) error {
	gz := gzip.NewWriter(buf)
	tw := tar.NewWriter(gz)
	entries := []struct {
		name string
		body []byte
		mode int64
	}{
		{scriptName, script, 0o755},
		{dataName, data, 0o644},
	}
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: e.mode, Size: int64(len(e.body))}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if _, err := tw.Write(e.body); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
