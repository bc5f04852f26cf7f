package geo

import (
	"errors"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GEO POINTS
// We will always store as 3857, because SQLite has no spatial awareness and
// we need to be able to interpret geometry data from strings during
// migrations using inherent Scan function.
// Geometry data is stored in the WKB format, which is a binary representation of the geometry data.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ringSegments is the number of edges used to approximate a range ring.
const ringSegments = 128

// webMercatorMaxLat is the latitude bound of the EPSG 3857 projection.
const webMercatorMaxLat = 85.06

// Coords3857From4326 creates a projected point from a longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	if longitude < -180 || longitude > 180 || latitude < -webMercatorMaxLat || latitude > webMercatorMaxLat {
		return geom.Point{}, ErrInvalidCoordinates
	}
	var x, y float64
	// if provided SRID was 4326, convert to 3857
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ = f(longitude, latitude, 0)
	point = geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
	return point, nil
}

// RangeRing is a circle of ground distance radiusM around an origin,
// approximated as an EPSG 3857 polygon.
type RangeRing struct {
	OriginLat float64
	OriginLon float64
	RadiusM   float64
	Ring      geom.Polygon
}

// NewRangeRing builds the ring polygon around the origin. Web Mercator
// stretches distances by 1/cos(lat), so ground meters are scaled before
// being applied in projected coordinates.
func NewRangeRing(originLat, originLon, radiusM float64) (*RangeRing, error) {
	if radiusM <= 0 {
		return nil, errors.New("range ring radius must be positive")
	}
	origin, err := Coords3857From4326(originLon, originLat)
	if err != nil {
		return nil, err
	}
	xy, ok := origin.XY()
	if !ok {
		return nil, ErrInvalidCoordinates
	}

	scale := 1 / math.Cos(originLat*math.Pi/180)
	projRadius := radiusM * scale

	flat := make([]float64, 0, (ringSegments+1)*2)
	for i := 0; i <= ringSegments; i++ {
		angle := 2 * math.Pi * float64(i%ringSegments) / ringSegments
		flat = append(flat,
			xy.X+projRadius*math.Cos(angle),
			xy.Y+projRadius*math.Sin(angle),
		)
	}

	ring := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	poly := geom.NewPolygon([]geom.LineString{ring})
	if err := poly.Validate(); err != nil {
		return nil, err
	}

	return &RangeRing{
		OriginLat: originLat,
		OriginLon: originLon,
		RadiusM:   radiusM,
		Ring:      poly,
	}, nil
}

// WKB returns the binary representation of the ring polygon.
func (r *RangeRing) WKB() []byte {
	return r.Ring.AsBinary()
}
