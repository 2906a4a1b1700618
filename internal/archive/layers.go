package archive

import (
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite" // geopackages are sqlite databases
)

// ListLayers returns the feature and attribute layer names of a geopackage.
func ListLayers(gpkgPath string) ([]string, error) {
	db, err := sql.Open("sqlite", gpkgPath)
	if err != nil {
		return nil, eris.Wrap(err, "archive: open geopackage")
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.Query(`SELECT table_name FROM gpkg_contents ORDER BY table_name`)
	if err != nil {
		return nil, eris.Wrap(err, "archive: list geopackage layers")
	}
	defer rows.Close() //nolint:errcheck

	var layers []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "archive: scan layer name")
		}
		layers = append(layers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "archive: iterate layers")
	}
	return layers, nil
}
