// internal/geo/provinces_test.go
package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)

	provinces := ds.Provinces()
	assert.NotEmpty(t, provinces)
	assert.True(t, ds.HasProvince("Thành phố Hà Nội"))
}

func TestProvinceLookupIsCaseInsensitive(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)

	assert.True(t, ds.HasProvince("thành phố hà nội"))
	assert.True(t, ds.HasProvince("  Thành phố Hà Nội  "))
	assert.False(t, ds.HasProvince("Atlantis"))
}

func TestDistrictMustBelongToProvince(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)

	assert.True(t, ds.HasDistrict("Thành phố Hà Nội", "Quận Ba Đình"))
	assert.False(t, ds.HasDistrict("Thành phố Đà Nẵng", "Quận Ba Đình"))
	assert.False(t, ds.HasDistrict("Atlantis", "Quận Ba Đình"))
}

func TestDistrictsForUnknownProvince(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)

	assert.Nil(t, ds.Districts("Atlantis"))
	assert.NotEmpty(t, ds.Districts("Thành phố Hà Nội"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/provinces.json")
	assert.Error(t, err)
}
