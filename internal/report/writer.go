// Package report writes the per-resource audit status CSV.
package report

import (
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Row is one resource's audit outcome. Verdict cells are rendered
// "True"/"False", or empty when the check never completed.
type Row struct {
	DatasetName  string `csv:"dataset name"`
	ResourceName string `csv:"resource name"`
	Format       string `csv:"format"`
	Pcoded       string `csv:"pcoded"`
	MisPcoded    string `csv:"mis_pcoded"`
	Error        string `csv:"error"`
}

// Write marshals the rows to path, header included.
func Write(path string, rows []Row) error {
	b, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "report: marshal rows")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return eris.Wrap(err, "report: write file")
	}
	zap.L().Info("wrote status report",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return nil
}
