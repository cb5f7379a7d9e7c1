// internal/geo/provinces.go
package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// The full national dataset ships outside the binary and is pointed at by
// GEO_DATA_PATH. The embedded file is a reduced copy that backs local runs
// and tests.
//
//go:embed data/provinces.json
var embeddedData []byte

type District struct {
	Name         string `json:"name"`
	Code         int    `json:"code"`
	Codename     string `json:"codename"`
	DivisionType string `json:"division_type"`
	ProvinceCode int    `json:"province_code"`
}

type Province struct {
	Name         string     `json:"name"`
	Code         int        `json:"code"`
	Codename     string     `json:"codename"`
	DivisionType string     `json:"division_type"`
	PhoneCode    int        `json:"phone_code"`
	Districts    []District `json:"districts"`
}

// Option is a {code, label} pair as rendered in the checkout selects.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Dataset is the immutable province/district reference data the checkout
// form validates against.
type Dataset struct {
	provinces []Province
	byName    map[string]*Province
}

// Load reads the dataset from path, or from the embedded copy when path is
// empty.
func Load(path string) (*Dataset, error) {
	raw := embeddedData
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read province dataset %s: %w", path, err)
		}
		raw = data
	}

	var provinces []Province
	if err := json.Unmarshal(raw, &provinces); err != nil {
		return nil, fmt.Errorf("failed to parse province dataset: %w", err)
	}

	ds := &Dataset{
		provinces: provinces,
		byName:    make(map[string]*Province, len(provinces)),
	}
	for i := range ds.provinces {
		ds.byName[normalize(ds.provinces[i].Name)] = &ds.provinces[i]
	}
	return ds, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Provinces returns the selectable province options.
func (d *Dataset) Provinces() []Option {
	options := make([]Option, 0, len(d.provinces))
	for _, p := range d.provinces {
		options = append(options, Option{Value: p.Codename, Label: p.Name})
	}
	return options
}

// Districts returns the selectable district options for a province, or nil
// when the province is unknown.
func (d *Dataset) Districts(provinceName string) []Option {
	p, ok := d.byName[normalize(provinceName)]
	if !ok {
		return nil
	}
	options := make([]Option, 0, len(p.Districts))
	for _, dist := range p.Districts {
		options = append(options, Option{Value: dist.Codename, Label: dist.Name})
	}
	return options
}

// HasProvince reports whether the name matches a known province.
func (d *Dataset) HasProvince(provinceName string) bool {
	_, ok := d.byName[normalize(provinceName)]
	return ok
}

// HasDistrict reports whether the district belongs to the named province.
func (d *Dataset) HasDistrict(provinceName, districtName string) bool {
	p, ok := d.byName[normalize(provinceName)]
	if !ok {
		return false
	}
	want := normalize(districtName)
	for _, dist := range p.Districts {
		if normalize(dist.Name) == want {
			return true
		}
	}
	return false
}
