package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is separated from application so the app can be exercised in tests
// without touching os.Args or log.Fatal, both of which stay in main/run.
func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application templates the readmap command line utility: index builds a
// persisted aligner index from a FASTA genome, map streams a FASTQ file of
// reads through a previously built index and reports one line per read.
func application() *cli.App {
	return &cli.App{
		Name:  "readmap",
		Usage: "A short-read aligner built on a run-length FM-index.",

		Commands: []*cli.Command{
			{
				Name:  "index",
				Usage: "Build a persisted index from a FASTA genome.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "genome",
						Usage:    "Path to the FASTA genome file.",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Usage:    "Path to write the persisted index to.",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "r",
						Usage: "Rank checkpoint sampling period (one checkpoint every r runs).",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Suffix-array sampling period (one sample every k positions).",
						Value: 32,
					},
				},
				Action: func(c *cli.Context) error {
					return indexCommand(c)
				},
			},
			{
				Name:  "map",
				Usage: "Map every read in a FASTQ file against a persisted index.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "index",
						Usage:    "Path to a persisted index (built with `readmap index`).",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "reads",
						Usage:    "Path to the FASTQ reads file.",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "seed-len",
						Usage:    "Seed length in bases.",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-seeds",
						Usage: "Maximum number of seeds to try per read, starting from the read's 5' end.",
						Value: 1,
					},
				},
				Action: func(c *cli.Context) error {
					return mapCommand(c)
				},
			},
		},
	}
}
