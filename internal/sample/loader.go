// Package sample loads row-capped table samples from candidate data files,
// dispatching on format family.
package sample

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/b-j-mills/pcoding-investigating/internal/tabular"
)

// MaxRows caps how many data rows a sample carries.
const MaxRows = 100

// Loader reads candidate files into keyed table samples.
type Loader struct {
	// MaxRows overrides the default row cap. Zero means MaxRows.
	MaxRows int

	// AccumulateGeo merges vector and container samples across candidates.
	// The default preserves the compatible policy of keeping only the most
	// recently read candidate's sample for those families.
	AccumulateGeo bool
}

// NewLoader returns a Loader with the default row cap.
func NewLoader() *Loader {
	return &Loader{MaxRows: MaxRows}
}

func (l *Loader) cap() int {
	if l.MaxRows > 0 {
		return l.MaxRows
	}
	return MaxRows
}

type loaderFunc func(l *Loader, paths []string, ext string) (map[string]tabular.Table, error)

// dispatch is the closed mapping from format family to loader.
var dispatch = map[tabular.Family]loaderFunc{
	tabular.FamilySpreadsheet: (*Loader).loadSpreadsheet,
	tabular.FamilyDelimited:   (*Loader).loadDelimited,
	tabular.FamilyVector:      (*Loader).loadVector,
	tabular.FamilyContainer:   (*Loader).loadContainer,
}

// Load reads every candidate path into a sample keyed by a fresh unique
// identifier. A failed read contributes no sample; the last read failure
// is returned alongside whatever samples loaded.
func (l *Loader) Load(paths []string, ext string) (map[string]tabular.Table, error) {
	fam, ok := tabular.FamilyOf(ext)
	if !ok {
		return nil, eris.Errorf("sample: unsupported extension %q", ext)
	}
	return dispatch[fam](l, paths, ext)
}

// readErr builds the verbatim per-file error surfaced in the report.
func readErr(path string) error {
	return eris.Errorf("Unable to read resource %s", filepath.Base(path))
}

func newKey() string {
	return uuid.NewString()
}
