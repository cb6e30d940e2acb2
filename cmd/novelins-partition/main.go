// Command novelins-partition discovers which contigs, drawn from many
// samples' independently assembled FASTA files, represent the same
// underlying non-reference insertion, and writes the verified aligned
// pairs to a pair file for novelins-merge to consume.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/ndaniels/novelins"
)

var (
	opts = novelins.DefaultOptions

	flagOutput  = "pairs.txt"
	flagSkipLog = ""
	flagQuiet   = false
)

func init() {
	log.SetFlags(0)

	opts.BindFlags(flag.CommandLine)
	flag.StringVar(&flagOutput, "output", flagOutput,
		"Path of the pair file to write.")
	flag.StringVar(&flagSkipLog, "skip-log", flagSkipLog,
		"When set, contigs dropped by the entropy filter are logged here.")
	flag.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, only errors are echoed to stderr.")

	flag.Usage = usage
	flag.Parse()

	opts.Verbose = opts.Verbose && !flagQuiet
	novelins.SetVerbose(opts.Verbose)
}

func main() {
	if flag.NArg() < 1 {
		flag.Usage()
	}

	runID := novelins.RunID()
	novelins.Vprintf("novelins-partition run %s\n", runID)

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
	novelins.Vprintf("loaded %d contigs from %d samples\n", space.N, len(perSample))

	var surviving []int
	for i := 0; i < space.N; i++ {
		entropy := novelins.AverageEntropy(space.Contigs[i].Seq)
		if entropy < opts.MinEntropy {
			if skip != nil {
				skip.Entropy(i, space.Contigs[i].Seq, entropy)
			}
			continue
		}
		surviving = append(surviving, i)
	}
	if len(surviving) == 0 {
		fatalf("no contigs survived the entropy filter (min-entropy=%.2f)\n", opts.MinEntropy)
	}
	novelins.Vprintf("%d of %d contigs survived the entropy filter\n", len(surviving), space.N)

	batch := novelins.Batch{Offset: opts.Offset, Width: opts.BatchWidth}
	part := novelins.NewPartitioner(space, opts)
	part.Skip = skip

	attachSignalHandler()

	result, err := part.Run(surviving, batch)
	if err != nil {
		fatalf("%s\n", err)
	}

	if err := result.Pairs.WritePairFileTo(flagOutput); err != nil {
		fatalf("%s\n", err)
	}
	novelins.Vprintf("wrote %d aligned pairs to %s\n", result.Pairs.Len(), flagOutput)
}

// attachSignalHandler reports an interrupted run instead of leaving a
// truncated pair file silently behind: the partitioner's single pass
// over a batch has no partial-result checkpoint to flush, unlike a
// resumed batch's append-safe pair file (spec.md section 5), so the
// best this can do is fail loudly rather than write nothing.
func attachSignalHandler() {
	sigChan := make(chan os.Signal, 1)
	go func() {
		<-sigChan
		fatalf("interrupted before the batch finished; no pair file written\n")
	}()
	signal.Notify(sigChan, os.Interrupt)
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"\nUsage: %s [flags] sample-fasta-file [sample-fasta-file ...]\n\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
