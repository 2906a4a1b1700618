// Package archive turns a downloaded resource file into the concrete list
// of candidate data files, extracting zip archives and expanding
// multi-layer geo containers into per-layer pseudo-paths.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// ErrExtraction marks a failed archive extraction.
var ErrExtraction = eris.New("extraction failed")

// Resolve inspects the downloaded resource file and returns the candidate
// data file paths for the declared extension. Non-archives resolve to the
// file itself. Archives are extracted into a fresh subdirectory of
// scratchDir and searched recursively for suffix matches; matches that are
// path-prefixes of other matches are dropped. Spreadsheet archives with no
// suffix match fall back to the original file, and geo containers expand
// into one pseudo-path per internal layer.
func Resolve(resourceFile, ext, scratchDir string) ([]string, error) {
	var matches []string
	if isArchive(resourceFile) {
		dest := filepath.Join(scratchDir, uuid.NewString())
		if err := extractZIP(resourceFile, dest); err != nil {
			return nil, eris.Wrap(ErrExtraction, err.Error())
		}

		var err error
		matches, err = findBySuffix(dest, "."+ext)
		if err != nil {
			return nil, eris.Wrap(ErrExtraction, err.Error())
		}

		if len(matches) > 1 {
			matches = dropContainers(matches)
		}

		// The archive may have been mislabeled; fall back to the download.
		if len(matches) == 0 && (ext == "xlsx" || ext == "xls") {
			matches = []string{resourceFile}
		}
	} else {
		matches = []string{resourceFile}
	}

	if ext == "gpkg" {
		matches = expandLayers(matches)
	}

	return matches, nil
}

// isArchive reports whether the file is a zip by signature or by name.
func isArchive(path string) bool {
	if strings.Contains(filepath.Base(path), ".zip") {
		return true
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	_ = r.Close()
	return true
}

// findBySuffix walks root collecting files and directories whose name ends
// with the suffix. Directories matter: Esri geodatabases are directories.
func findBySuffix(root, suffix string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// dropContainers removes matches that contain other matches, keeping only
// the innermost paths.
func dropContainers(matches []string) []string {
	kept := matches[:0:0]
	for _, m := range matches {
		contained := false
		for _, other := range matches {
			if other != m && strings.Contains(other, m) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, m)
		}
	}
	return kept
}

// expandLayers turns each geopackage path into one pseudo-path per layer.
// Containers whose layers cannot be listed pass through unexpanded so the
// loader surfaces the read error.
func expandLayers(matches []string) []string {
	var out []string
	for _, m := range matches {
		layers, err := ListLayers(m)
		if err != nil || len(layers) == 0 {
			out = append(out, m)
			continue
		}
		for _, l := range layers {
			out = append(out, filepath.Join(m, l))
		}
	}
	return out
}

func extractZIP(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "archive: open zip")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if err := extractZIPEntry(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

// extractZIPEntry extracts a single zip.File to the destination directory.
func extractZIPEntry(f *zip.File, destDir string) error {
	// Sanitize against zip slip
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return eris.Errorf("archive: illegal path %q (zip slip attempt)", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return eris.Wrap(err, "archive: create directory")
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return eris.Wrap(err, "archive: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return eris.Wrap(err, "archive: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return eris.Wrap(err, "archive: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return eris.Wrap(err, "archive: write file")
	}

	return nil
}
