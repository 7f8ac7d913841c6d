package cityroads

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// osmRoadsFields Schema of a road store built from an OSM extract. The
// "highway" field doubles as the road type field for classification.
var osmRoadsFields = []string{"osm_id", "highway", "name"}

// LoadOSMRoads builds a road geometry store from a *.osm.pbf file. Every way
// carrying a "highway" tag becomes one polyline feature with the schema
// [osm_id, highway, name]. Ways are scanned first, then the file is rewound
// and the referenced node coordinates are resolved in a second pass.
func LoadOSMRoads(path string) (*GeometryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrSourceNotFound, "no OSM file at '%s'", path)
		}
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)
	defer scannerWays.Close()

	ways := []*osm.Way{}
	nodesSeen := make(map[osm.NodeID]struct{})
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		if _, ok := way.TagMap()["highway"]; !ok {
			continue
		}
		ways = append(ways, way)
		for _, wayNode := range way.Nodes {
			nodesSeen[wayNode.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrapf(ErrSourceCorrupt, "scanner error on ways: %v", scannerWays.Err())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	nodeCoords := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			nodeCoords[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrapf(ErrSourceCorrupt, "scanner error on nodes: %v", scannerNodes.Err())
	}

	features, err := assembleRoadFeatures(ways, nodeCoords)
	if err != nil {
		return nil, err
	}
	return &GeometryStore{Schema: NewSchema(osmRoadsFields), Features: features}, nil
}

// assembleRoadFeatures builds polyline features from highway ways and the
// node coordinates collected for them. A way referencing a node the source
// never delivered marks the source corrupt.
func assembleRoadFeatures(ways []*osm.Way, nodeCoords map[osm.NodeID]orb.Point) ([]Feature, error) {
	features := make([]Feature, 0, len(ways))
	for _, way := range ways {
		line := make(orb.LineString, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			pt, ok := nodeCoords[wayNode.ID]
			if !ok {
				return nil, errors.Wrapf(ErrSourceCorrupt, "missing node with id: %d", wayNode.ID)
			}
			line = append(line, pt)
		}
		tagMap := way.TagMap()
		features = append(features, Feature{
			Record: Record{
				strconv.FormatInt(int64(way.ID), 10),
				tagMap["highway"],
				tagMap["name"],
			},
			Geometry: Geometry{Type: SHAPE_POLYLINE, Points: line},
		})
	}
	return features, nil
}
