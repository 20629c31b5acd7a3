// Package catalog defines the static table of SDO imagery sources.
//
// Each entry maps a logical instrument/wavelength name (e.g. "AIA_171") to
// its Helioviewer data source id and the filename code used by the
// sdo.gsfc.nasa.gov latest-image endpoint.
package catalog

import (
	"sort"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Source describes one remote SDO imagery resource.
type Source struct {
	Name        string
	SourceID    int
	Wavelength  string
	Description string
	LatestCode  string
}

// DefaultSource is fetched when no source flag is given.
const DefaultSource = "AIA_171"

// DefaultPreset is the source set fetched in --multiple mode.
var DefaultPreset = []string{"AIA_171", "AIA_193", "AIA_304", "HMI_Magnetogram"}

var sources = map[string]Source{
	"AIA_94":          {Name: "AIA_94", SourceID: 13, Wavelength: "94Å", Description: "AIA 94 Å - Hot flare plasma", LatestCode: "0094"},
	"AIA_131":         {Name: "AIA_131", SourceID: 14, Wavelength: "131Å", Description: "AIA 131 Å - Flaring regions", LatestCode: "0131"},
	"AIA_171":         {Name: "AIA_171", SourceID: 15, Wavelength: "171Å", Description: "AIA 171 Å - Quiet corona and coronal loops", LatestCode: "0171"},
	"AIA_193":         {Name: "AIA_193", SourceID: 16, Wavelength: "193Å", Description: "AIA 193 Å - Hot plasma in active regions", LatestCode: "0193"},
	"AIA_211":         {Name: "AIA_211", SourceID: 17, Wavelength: "211Å", Description: "AIA 211 Å - Active regions", LatestCode: "0211"},
	"AIA_304":         {Name: "AIA_304", SourceID: 18, Wavelength: "304Å", Description: "AIA 304 Å - Chromosphere and prominence", LatestCode: "0304"},
	"AIA_335":         {Name: "AIA_335", SourceID: 19, Wavelength: "335Å", Description: "AIA 335 Å - Active regions", LatestCode: "0335"},
	"AIA_1600":        {Name: "AIA_1600", SourceID: 20, Wavelength: "1600Å", Description: "AIA 1600 Å - Upper photosphere", LatestCode: "1600"},
	"AIA_1700":        {Name: "AIA_1700", SourceID: 21, Wavelength: "1700Å", Description: "AIA 1700 Å - Temperature minimum", LatestCode: "1700"},
	"HMI_Continuum":   {Name: "HMI_Continuum", SourceID: 22, Wavelength: "Continuum", Description: "HMI Continuum - Solar surface", LatestCode: "HMIIC"},
	"HMI_Magnetogram": {Name: "HMI_Magnetogram", SourceID: 23, Wavelength: "Magnetogram", Description: "HMI Magnetogram - Magnetic field", LatestCode: "HMII"},
}

// Resolve looks up a logical source name in the catalog.
func Resolve(name string) (Source, error) {
	src, ok := sources[name]
	if !ok {
		return Source{}, failure.New(UnknownSource,
			failure.Message("Unknown SDO source"),
			failure.Context{
				"source":    name,
				"available": strings.Join(Names(), ", "),
			},
		)
	}
	return src, nil
}

// Names returns all catalog names in sorted order.
func Names() []string {
	names := lo.Keys(sources)
	sort.Strings(names)
	return names
}

// All returns all catalog entries sorted by name.
func All() []Source {
	return lo.Map(Names(), func(name string, _ int) Source {
		return sources[name]
	})
}
