package rendering

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/scorerank/internal/types"
)

const filePerm = 0o644

// WriteReport renders report and writes it to ReportFileName(topN) inside folderPath,
// replacing any previous artifact. It returns the written path.
func WriteReport(folderPath string, report *types.FolderReport, topN int) (string, error) {
	content, err := RenderTable(report, topN)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(folderPath, ReportFileName(topN))
	if err := WriteFileAtomic(outPath, []byte(content)); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteFileAtomic writes data to a temp file next to dest and renames it over dest,
// so readers never observe a partially written file.
func WriteFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-"+strings.TrimPrefix(filepath.Base(dest), ".")+"-*")
	if err != nil {
		return &WriteError{Path: dest, Cause: err}
	}
	tmpPath := tmp.Name()

	fail := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &WriteError{Path: dest, Cause: cause}
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return fail(err)
	}
	bw := bufio.NewWriter(tmp)
	if _, err := bw.Write(data); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: dest, Cause: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: dest, Cause: err}
	}
	return nil
}
