// Command novelins-merge reads the pair files novelins-partition
// produced, re-derives the contig components they imply, and merges
// each component's member contigs into one or a small number of
// consensus supercontig sequences.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/ndaniels/novelins"
	"slices"
)

var (
	opts = novelins.DefaultOptions

	flagOutput   = "supercontigs.fa"
	flagSkipLog  = ""
	flagPairs    = ""
	flagWorkerID = 0
	flagQuiet    = false
)

func init() {
	log.SetFlags(0)

	opts.BindFlags(flag.CommandLine)
	flag.StringVar(&flagOutput, "output", flagOutput,
		"Path of the supercontig FASTA file to write.")
	flag.StringVar(&flagSkipLog, "skip-log", flagSkipLog,
		"When set, oversized/overbranched components are logged here.")
	flag.StringVar(&flagPairs, "pairs", flagPairs,
		"Comma-separated list of pair files to read (the union of every batch's output).")
	flag.IntVar(&flagWorkerID, "worker-id", flagWorkerID,
		"This worker's rank, used with -total-batches to shard components across merge workers.")
	flag.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, only errors are echoed to stderr.")

	flag.Usage = usage
	flag.Parse()

	opts.Verbose = opts.Verbose && !flagQuiet
	novelins.SetVerbose(opts.Verbose)
}

func main() {
	if flag.NArg() < 1 || flagPairs == "" {
		flag.Usage()
	}

	runID := novelins.RunID()
	novelins.Vprintf("novelins-merge run %s\n", runID)

	var skip *novelins.SkipLog
	if flagSkipLog != "" {
		var f *os.File
		var err error
		skip, f, err = novelins.OpenSkipLog(flagSkipLog, runID)
		if err != nil {
			fatalf("%s\n", err)
		}
		defer func() {
			skip.Flush()
			f.Close()
		}()
	}

	perSample := make([][]*novelins.Contig, 0, flag.NArg())
	for i, file := range flag.Args() {
		sample := fmt.Sprintf("%04d", i)
		contigs, err := novelins.LoadSampleContigs(file, sample)
		if err != nil {
			fatalf("%s\n", err)
		}
		perSample = append(perSample, contigs)
	}
	space := novelins.NewContigSpace(perSample)
	samplesInBatch := len(perSample)
	novelins.Vprintf("loaded %d contigs from %d samples\n", space.N, samplesInBatch)

	pairFiles := strings.Split(flagPairs, ",")
	assembler := novelins.NewComponentAssembler(space.N)
	components, err := assembler.FromPairFiles(pairFiles)
	if err != nil {
		fatalf("%s\n", err)
	}
	if opts.TotalBatch > 1 {
		components = novelins.Shard(components, flagWorkerID, opts.TotalBatch)
	}
	novelins.Vprintf("assembled %d components\n", len(components))

	out, err := os.Create(flagOutput)
	if err != nil {
		fatalf("%s\n", err)
	}
	defer out.Close()

	merger := novelins.NewSupercontigMerger(space, opts)
	merger.Skip = skip

	keys := sortedKeys(components)

	var merged, singletons, branchingGivenUp, oversized int
	for pos, key := range keys {
		result := merger.MergeComponent(components[key], samplesInBatch)
		if !result.OK {
			switch result.Err.(type) {
			case *novelins.OversizedError:
				oversized++
			case *novelins.OverbranchedError:
				branchingGivenUp++
			}
			continue
		}
		if result.Singleton {
			singletons++
		} else {
			merged++
		}
		if err := novelins.WriteSupercontigs(out, opts.BatchIndex, pos, result.Count, result.Paths); err != nil {
			fatalf("%s\n", err)
		}
	}

	novelins.Vprintf("\n")
	fmt.Printf("%d multi-contig components merged\n", merged)
	fmt.Printf("%d singletons\n", singletons)
	fmt.Printf("%d components abandoned as too branching\n", branchingGivenUp)
	fmt.Printf("%d components skipped as oversized\n", oversized)
}

func sortedKeys(components map[int]*novelins.ContigComponent) []int {
	keys := make([]int, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"\nUsage: %s [flags] -pairs pair-file[,pair-file...] sample-fasta-file [sample-fasta-file ...]\n\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
