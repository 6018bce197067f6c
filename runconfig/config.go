// Package runconfig parses the YAML configuration driving the demo CLI:
// the global rendezvous box, rank count, partition imbalance tolerance,
// and which source mesh fixture to decompose.
package runconfig

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/rendezvous/bbox"
)

// Config holds the parameters read from a run's YAML input file.
type Config struct {
	Title string `yaml:"Title"`

	// BoxMin/BoxMax define the global bounding box every rank's
	// Rendezvous is built against.
	BoxMin [3]float64 `yaml:"BoxMin"`
	BoxMax [3]float64 `yaml:"BoxMax"`

	NumRanks        int     `yaml:"NumRanks"`
	ImbalanceFactor float64 `yaml:"ImbalanceFactor"`

	// MeshSource names a sourcemesh fixture: "tet", "hex", "twotet", or
	// "quadgrid".
	MeshSource string `yaml:"MeshSource"`

	Verbose bool `yaml:"Verbose"`

	// QueryPoints are sample points to resolve against the built
	// Rendezvous, printed as diagnostics.
	QueryPoints [][3]float64 `yaml:"QueryPoints"`
}

// Default returns a Config with the same defaults the demo CLI falls back
// on when no input file is supplied.
func Default() *Config {
	return &Config{
		Title:           "rendezvous-demo",
		BoxMin:          [3]float64{0, 0, 0},
		BoxMax:          [3]float64{1, 1, 1},
		NumRanks:        2,
		ImbalanceFactor: 1.05,
		MeshSource:      "hex",
	}
}

// Parse unmarshals YAML-formatted data into c, leaving fields already set
// by Default untouched where the input omits them.
func (c *Config) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Box returns the configured global bounding box.
func (c *Config) Box() bbox.Box {
	return bbox.New(
		c.BoxMin[0], c.BoxMin[1], c.BoxMin[2],
		c.BoxMax[0], c.BoxMax[1], c.BoxMax[2],
	)
}

// Print writes a human-readable summary of the configuration, in the same
// label-then-value style the teacher's InputParameters2D.Print uses.
func (c *Config) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", c.Title)
	fmt.Printf("[%v, %v]\t\t= Box\n", c.BoxMin, c.BoxMax)
	fmt.Printf("%d\t\t\t= NumRanks\n", c.NumRanks)
	fmt.Printf("%8.5f\t\t= ImbalanceFactor\n", c.ImbalanceFactor)
	fmt.Printf("[%s]\t\t= MeshSource\n", c.MeshSource)
	if len(c.QueryPoints) > 0 {
		points := make([]string, len(c.QueryPoints))
		for i, p := range c.QueryPoints {
			points[i] = fmt.Sprintf("%v", p)
		}
		sort.Strings(points)
		for _, p := range points {
			fmt.Printf("QueryPoint %s\n", p)
		}
	}
}
