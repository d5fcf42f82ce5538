package webservices

import (
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-gis/ownmap"
	"github.com/paulmach/orb/maptile"
)

// TileFromStrings parses and bounds-checks the z/x/y of a tile URL
func TileFromStrings(xStr, yStr, zStr string) (maptile.Tile, errorsx.Error) {
	ints, err := stringsToInts(xStr, yStr, zStr)
	if err != nil {
		return maptile.Tile{}, errorsx.Wrap(err)
	}

	x, y, z := ints[0], ints[1], ints[2]
	if z < int(ownmap.MinZoomLevel) || z > int(ownmap.MaxZoomLevel) {
		return maptile.Tile{}, errorsx.Errorf("zoom level %d out of range [%d, %d]", z, int(ownmap.MinZoomLevel), int(ownmap.MaxZoomLevel))
	}

	tilesPerSide := 1 << uint(z)
	if x < 0 || x >= tilesPerSide || y < 0 || y >= tilesPerSide {
		return maptile.Tile{}, errorsx.Errorf("tile %d/%d out of range for zoom level %d", x, y, z)
	}

	return maptile.New(uint32(x), uint32(y), maptile.Zoom(z)), nil
}

func stringsToInts(s ...string) ([]int, error) {
	var ints []int
	for _, str := range s {
		i, err := strconv.Atoi(str)
		if err != nil {
			return nil, err
		}
		ints = append(ints, i)
	}

	return ints, nil
}
