// Package check orchestrates the location-coding audit: per-dataset
// resource iteration, scratch-directory lifecycle, and verdict
// aggregation.
package check

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/b-j-mills/pcoding-investigating/internal/archive"
	"github.com/b-j-mills/pcoding-investigating/internal/classify"
	"github.com/b-j-mills/pcoding-investigating/internal/pcodes"
	"github.com/b-j-mills/pcoding-investigating/internal/report"
	"github.com/b-j-mills/pcoding-investigating/internal/sample"
	"github.com/b-j-mills/pcoding-investigating/pkg/hdx"
)

// maxResourceBytes is the size ceiling above which a resource is skipped
// without downloading.
const maxResourceBytes = 1 << 30 // 1 GiB

// Fixed status strings surfaced in the report's error column.
const (
	errCantCheckFormats  = "Can't check formats"
	errNotCheckingFormat = "Not checking format"
	errNotCheckingSize   = "Not checking files of this size"
)

// allowedFileTypes is the closed set of checkable declared formats.
var allowedFileTypes = map[string]struct{}{
	"csv":         {},
	"geodatabase": {},
	"geojson":     {},
	"geopackage":  {},
	"json":        {},
	"shp":         {},
	"topojson":    {},
	"xls":         {},
	"xlsx":        {},
}

// latLongFileTypes are the non-geo formats whose text columns are worth a
// coordinate scan; geo formats carry structural coordinates instead.
var latLongFileTypes = map[string]struct{}{
	"csv":  {},
	"json": {},
	"xls":  {},
	"xlsx": {},
}

// extFor maps a declared file type to the suffix searched for after
// extraction.
func extFor(fileType string) string {
	switch fileType {
	case "geodatabase":
		return "gdb"
	case "geopackage":
		return "gpkg"
	}
	return fileType
}

// Result aggregates one dataset's verdicts and terminal error, if any.
type Result struct {
	Pcoded    Verdict
	MisPcoded Verdict
	LatLonged Verdict
	Err       string
}

// Engine runs the audit against a catalog.
type Engine struct {
	catalog     hdx.Catalog
	loader      *sample.Loader
	pcode       *classify.PcodeClassifier
	ref         *pcodes.Reference
	scratchRoot string
}

// NewEngine wires an audit engine. The country list builds the p-code
// value pattern; ref may be nil when no mis-code reference is available.
func NewEngine(catalog hdx.Catalog, loader *sample.Loader, countries []classify.Country, ref *pcodes.Reference, scratchRoot string) *Engine {
	return &Engine{
		catalog:     catalog,
		loader:      loader,
		pcode:       classify.NewPcodeClassifier(countries),
		ref:         ref,
		scratchRoot: scratchRoot,
	}
}

// Run searches the catalog and audits every matching dataset in listing
// order, returning one report row per resource.
func (e *Engine) Run(ctx context.Context, filterQuery string) ([]report.Row, error) {
	log := zap.L().With(zap.String("component", "check.engine"))

	datasets, err := e.catalog.SearchDatasets(ctx, filterQuery)
	if err != nil {
		return nil, eris.Wrap(err, "check: search datasets")
	}
	log.Info("found datasets", zap.Int("count", len(datasets)))

	if err := os.MkdirAll(e.scratchRoot, 0o755); err != nil {
		return nil, eris.Wrap(err, "check: create scratch root")
	}

	var rows []report.Row
	for _, ds := range datasets {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		log.Info("checking dataset", zap.String("dataset", ds.Name))
		res, dsRows := e.CheckDataset(ctx, ds)
		log.Info("dataset checked",
			zap.String("dataset", ds.Name),
			zap.String("pcoded", res.Pcoded.String()),
			zap.String("mis_pcoded", res.MisPcoded.String()),
			zap.String("latlonged", res.LatLonged.String()),
			zap.String("error", res.Err),
		)
		rows = append(rows, dsRows...)
	}

	return rows, nil
}

// CheckDataset classifies one dataset. Resources are examined in listing
// order; the first confirmed p-code match stops the scan, and the first
// download or extraction failure abandons the remaining resources. Every
// resource yields a report row: skipped ones with their reason, the rest
// with the dataset verdicts.
func (e *Engine) CheckDataset(ctx context.Context, ds hdx.Dataset) (Result, []report.Row) {
	log := zap.L().With(
		zap.String("component", "check.engine"),
		zap.String("dataset", ds.Name),
	)

	var res Result
	if !anyAllowed(ds.FileTypes()) {
		res.Err = errCantCheckFormats
		rows := make([]report.Row, 0, len(ds.Resources))
		for _, r := range ds.Resources {
			rows = append(rows, skipRow(ds, r, errNotCheckingFormat))
		}
		return res, rows
	}

	scratch := filepath.Join(e.scratchRoot, uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		res.Err = "Could not create scratch directory"
		return res, nil
	}
	defer os.RemoveAll(scratch) //nolint:errcheck

	var miscodes []string
	if e.ref != nil {
		miscodes = e.ref.MiscodesFor(ds.Locations)
	}

	rows := make([]report.Row, 0, len(ds.Resources))
	var checked []int
	hardFail := false

	for _, r := range ds.Resources {
		ft := r.FileType()
		if _, ok := allowedFileTypes[ft]; !ok {
			rows = append(rows, skipRow(ds, r, errNotCheckingFormat))
			continue
		}
		if r.Size > maxResourceBytes {
			rows = append(rows, skipRow(ds, r, errNotCheckingSize))
			continue
		}

		rows = append(rows, skipRow(ds, r, ""))
		checked = append(checked, len(rows)-1)

		// Past the first hard failure or a confirmed p-code match,
		// remaining resources only contribute their rows.
		if hardFail || res.Pcoded == VerdictTrue {
			continue
		}

		log.Info("checking resource", zap.String("resource", r.Name))

		localPath, err := e.catalog.DownloadResource(ctx, r, scratch)
		if err != nil {
			res.Err = "Could not download file " + r.Name
			hardFail = true
			continue
		}

		ext := extFor(ft)
		paths, err := archive.Resolve(localPath, ext, scratch)
		if err != nil {
			res.Err = "Could not unzip resource " + r.Name
			hardFail = true
			continue
		}

		samples, readErr := e.loader.Load(paths, ext)
		res.Err = ""
		if readErr != nil {
			res.Err = readErr.Error()
		}

		if res.Pcoded != VerdictTrue && e.pcode.HasPcode(samples) {
			res.Pcoded = VerdictTrue
		}
		if res.Pcoded != VerdictTrue && res.MisPcoded != VerdictTrue &&
			classify.HasMiscodes(samples, miscodes) {
			res.MisPcoded = VerdictTrue
		}
		if _, geoless := latLongFileTypes[ft]; geoless &&
			res.Pcoded != VerdictTrue && res.LatLonged != VerdictTrue &&
			classify.HasLatLong(samples) {
			res.LatLonged = VerdictTrue
		}
	}

	// An unconfirmed concern becomes an explicit False only when no error
	// survived the scan; lat/long and mis-code finalization is contingent
	// on pcode having resolved to False.
	if res.Err == "" && res.Pcoded != VerdictTrue {
		res.Pcoded = VerdictFalse
	}
	if res.Err == "" && res.Pcoded == VerdictFalse {
		if res.MisPcoded != VerdictTrue {
			res.MisPcoded = VerdictFalse
		}
		if res.LatLonged != VerdictTrue {
			res.LatLonged = VerdictFalse
		}
	}

	for _, i := range checked {
		rows[i].Pcoded = res.Pcoded.String()
		rows[i].MisPcoded = res.MisPcoded.String()
		rows[i].Error = res.Err
	}

	return res, rows
}

func anyAllowed(fileTypes []string) bool {
	for _, ft := range fileTypes {
		if _, ok := allowedFileTypes[ft]; ok {
			return true
		}
	}
	return false
}

func skipRow(ds hdx.Dataset, r hdx.Resource, reason string) report.Row {
	return report.Row{
		DatasetName:  ds.Name,
		ResourceName: r.Name,
		Format:       r.FileType(),
		Error:        reason,
	}
}
