package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/rendezvous/bbox"
	"github.com/notargets/rendezvous/comm"
	"github.com/notargets/rendezvous/meshtraits"
	"github.com/notargets/rendezvous/rendezvous"
	"github.com/notargets/rendezvous/runconfig"
	"github.com/notargets/rendezvous/sourcemesh"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Partition a fixture mesh and build a Rendezvous over it",
	Long: `build reads a YAML run configuration, partitions a fixture source
mesh across NumRanks shards with METIS, builds a Rendezvous per simulated
rank against the configured global box, and reports which rank and element
each configured query point resolves to.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("input")
		doProfile, _ := cmd.Flags().GetBool("profile")

		cfg := processBuildInput(cfgPath)

		if doProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		runBuild(cfg)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("input", "i", "", "YAML run configuration file (defaults built in if omitted)")
	buildCmd.Flags().Bool("profile", false, "capture a CPU profile of the build")
}

func processBuildInput(path string) *runconfig.Config {
	cfg := runconfig.Default()
	if path == "" {
		return cfg
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err := cfg.Parse(data); err != nil {
		fmt.Printf("error: failed to parse %s: %s\n", path, err.Error())
		os.Exit(1)
	}
	return cfg
}

func fixtureFor(name string) *sourcemesh.Mesh {
	switch name {
	case "tet":
		return sourcemesh.SingleTet()
	case "hex":
		return sourcemesh.SingleHex()
	case "twotet":
		return sourcemesh.TwoTetMesh()
	case "quadgrid":
		return sourcemesh.QuadGrid2x2()
	default:
		fmt.Printf("error: unknown MeshSource %q (want tet, hex, twotet, or quadgrid)\n", name)
		os.Exit(1)
		return nil
	}
}

// boundingBoxContains treats every element as its own axis-aligned
// bounding box for containment purposes; this repo's rendezvous package
// never implements real element geometry (out of scope), so the demo CLI
// supplies the simplest PointInCell that still resolves distinctly-boxed
// fixture elements correctly.
func boundingBoxContains(mesh meshtraits.MeshTraits, id meshtraits.GlobalOrdinal, p [3]float64) bool {
	dim := mesh.NodeDim()
	numNodes := mesh.NumNodes()
	numElements := mesh.NumElements()
	k := mesh.NodesPerElement()
	coords := mesh.Coords()
	conn := mesh.Connectivity()
	nodeIDs := mesh.NodeIDs()

	nodeSlot := make(map[meshtraits.GlobalOrdinal]int, numNodes)
	for i, nid := range nodeIDs {
		nodeSlot[nid] = i
	}

	elemIdx := -1
	for e, eid := range mesh.ElementIDs() {
		if eid == id {
			elemIdx = e
			break
		}
	}
	if elemIdx < 0 {
		return false
	}

	b := bbox.Empty()
	for slot := 0; slot < k; slot++ {
		nid := conn[slot*numElements+elemIdx]
		ns, ok := nodeSlot[nid]
		if !ok {
			continue
		}
		var q [3]float64
		for axis := 0; axis < dim; axis++ {
			q[axis] = coords[axis*numNodes+ns]
		}
		b.ExpandToInclude(q)
	}
	return b.Contains(p)
}

func runBuild(cfg *runconfig.Config) {
	cfg.Print()

	mesh := fixtureFor(cfg.MeshSource)
	nranks := int32(cfg.NumRanks)

	pcfg := sourcemesh.DefaultPartitionConfig(nranks)
	pcfg.ImbalanceFactor = float32(cfg.ImbalanceFactor)
	partitioner := sourcemesh.NewMeshPartitioner(mesh, pcfg)
	if err := partitioner.Partition(); err != nil {
		fmt.Printf("error: partitioning failed: %s\n", err.Error())
		os.Exit(1)
	}

	comms := comm.NewLocal(cfg.NumRanks)
	rends := make([]*rendezvous.Rendezvous, cfg.NumRanks)
	errs := make([]error, cfg.NumRanks)
	box := cfg.Box()

	var wg sync.WaitGroup
	for rank := 0; rank < cfg.NumRanks; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			traits := sourcemesh.NewTraits(mesh, rank)
			r := rendezvous.New(comms[rank], box, boundingBoxContains)
			r.SetVerbose(cfg.Verbose)
			errs[rank] = r.Build(traits)
			rends[rank] = r
		}(rank)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			fmt.Printf("error: rank %d failed to build rendezvous: %s\n", rank, err.Error())
			os.Exit(1)
		}
	}

	for _, p := range cfg.QueryPoints {
		coords := []float64{p[0], p[1], p[2]}
		for rank := 0; rank < cfg.NumRanks; rank++ {
			elems := rends[rank].GetElements(coords)
			procs := rends[rank].GetRendezvousProcs(coords)
			fmt.Printf("query %v on rank %d -> elements %v, owning procs %v\n", p, rank, elems, procs)
		}
	}
}
