// Package pcodes loads the published global p-code reference: valid and
// known mis-formatted administrative codes grouped by country, plus the
// country ISO code list the p-code pattern is built from.
package pcodes

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/b-j-mills/pcoding-investigating/internal/classify"
	"github.com/b-j-mills/pcoding-investigating/internal/fetcher"
)

// Reference holds per-country code lists keyed by uppercase ISO3.
type Reference struct {
	Valid map[string][]string
	Mis   map[string][]string
}

// MiscodesFor flattens the mis-formatted codes of the given countries.
func (r *Reference) MiscodesFor(isos []string) []string {
	var out []string
	for _, iso := range isos {
		out = append(out, r.Mis[strings.ToUpper(iso)]...)
	}
	return out
}

// CodesFor flattens the valid codes of the given countries.
func (r *Reference) CodesFor(isos []string) []string {
	var out []string
	for _, iso := range isos {
		out = append(out, r.Valid[strings.ToUpper(iso)]...)
	}
	return out
}

type pcodeRow struct {
	Location   string `csv:"Location"`
	AdminLevel string `csv:"Admin Level"`
	PCode      string `csv:"P-Code"`
	Valid      string `csv:"Valid"`
}

// Fetch downloads and parses the global p-code reference CSV. Rows whose
// location is an HXL tag are skipped; rows explicitly flagged invalid go
// to the mis-formatted list.
func Fetch(ctx context.Context, f fetcher.Fetcher, rawURL string) (*Reference, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "pcodes: fetch reference")
	}
	defer body.Close() //nolint:errcheck

	ref, err := Parse(body)
	if err != nil {
		return nil, err
	}

	zap.L().Info("loaded global p-code reference",
		zap.Int("countries", len(ref.Valid)),
	)
	return ref, nil
}

// Parse reads the reference CSV from r.
func Parse(r io.Reader) (*Reference, error) {
	cr := csv.NewReader(r)
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrap(err, "pcodes: read reference header")
	}

	ref := &Reference{
		Valid: make(map[string][]string),
		Mis:   make(map[string][]string),
	}
	for {
		var row pcodeRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "pcodes: decode reference row")
		}
		if strings.HasPrefix(row.Location, "#") || row.PCode == "" {
			continue
		}
		iso := strings.ToUpper(row.Location)
		if isFalse(row.Valid) {
			ref.Mis[iso] = append(ref.Mis[iso], row.PCode)
		} else {
			ref.Valid[iso] = append(ref.Valid[iso], row.PCode)
		}
	}
	return ref, nil
}

func isFalse(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "no", "n", "0":
		return true
	}
	return false
}

type countryRow struct {
	ISO2 string `csv:"ISO2"`
	ISO3 string `csv:"ISO3"`
}

// FetchCountries downloads the country ISO code list used to build the
// p-code value pattern.
func FetchCountries(ctx context.Context, f fetcher.Fetcher, rawURL string) ([]classify.Country, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "pcodes: fetch countries")
	}
	defer body.Close() //nolint:errcheck

	return ParseCountries(body)
}

// ParseCountries reads the country list CSV from r.
func ParseCountries(r io.Reader) ([]classify.Country, error) {
	cr := csv.NewReader(r)
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrap(err, "pcodes: read countries header")
	}

	var countries []classify.Country
	for {
		var row countryRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "pcodes: decode country row")
		}
		if strings.HasPrefix(row.ISO3, "#") || row.ISO3 == "" {
			continue
		}
		countries = append(countries, classify.Country{
			ISO2: strings.ToUpper(row.ISO2),
			ISO3: strings.ToUpper(row.ISO3),
		})
	}
	return countries, nil
}
