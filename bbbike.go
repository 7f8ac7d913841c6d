package cityroads

import (
	"fmt"

	"github.com/paulmach/orb"
)

const bbbikeExtractBase = "http://extract.bbbike.org/"

// ExtractURL maps a bounding box onto a BBBike extract URL. The min corner is
// the south-west one, the max corner the north-east one. Pure pass-through
// formatting: coordinate ranges are not validated and the URL is never
// dereferenced here.
func ExtractURL(bound orb.Bound) string {
	return fmt.Sprintf("%s?sw_lng=%s&sw_lat=%s&ne_lng=%s&ne_lat=%s",
		bbbikeExtractBase,
		formatCoord(bound.Left()), formatCoord(bound.Bottom()),
		formatCoord(bound.Right()), formatCoord(bound.Top()),
	)
}
