// Command accuracy-report computes map classification accuracy,
// error-adjusted area estimates and their uncertainty from a multi-class
// error matrix sampled under stratified random sampling, after Olofsson
// et al. (2013, 2014).
//
// One-shot mode reads an input document and prints the results:
//
//	accuracy-report -input matrix.json -csv results.csv -units ha
//
// Server mode exposes the same analysis over HTTP:
//
//	accuracy-report -serve -listen :8080 -db assessments.db
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caraga-geoinformatics/accuracy.report/internal/api"
	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
	"github.com/caraga-geoinformatics/accuracy.report/internal/db"
	"github.com/caraga-geoinformatics/accuracy.report/internal/report"
	"github.com/caraga-geoinformatics/accuracy.report/internal/units"
	"github.com/caraga-geoinformatics/accuracy.report/internal/version"
)

var (
	inputPath   = flag.String("input", "", "Path to the input JSON document")
	label       = flag.String("label", "", "Label stored with the assessment")
	csvPath     = flag.String("csv", "", "Write the results table to this CSV file")
	areaUnits   = flag.String("units", units.SQM, "Area units for reported areas ("+units.GetValidUnitsString()+")")
	dbPath      = flag.String("db", "", "Path to the assessment database (empty disables persistence)")
	serve       = flag.Bool("serve", false, "Run the HTTP API instead of a one-shot analysis")
	listen      = flag.String("listen", ":8080", "Listen address for -serve")
	showVersion = flag.Bool("version", false, "Print the version and exit")
)

// inputDoc is the on-disk input format. The pixel footprint may be given
// either directly as an area (pixel_area) or as the pixel edge length in
// metres (pixel_edge), which is squared before the engine runs — the
// engine itself only ever sees an area.
type inputDoc struct {
	Label        string                   `json:"label"`
	ErrorMatrix  assess.ErrorMatrix       `json:"error_matrix"`
	MappedPixels assess.StratumPopulation `json:"mapped_pixels"`
	PixelArea    float64                  `json:"pixel_area"`
	PixelEdge    float64                  `json:"pixel_edge"`
}

// loadInput reads and decodes an input document into the engine's input
// bundle, resolving the pixel_edge convenience field.
func loadInput(path string) (assess.Input, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assess.Input{}, "", fmt.Errorf("failed to read input file: %w", err)
	}
	var doc inputDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return assess.Input{}, "", fmt.Errorf("failed to parse input file: %w", err)
	}
	if doc.PixelArea == 0 && doc.PixelEdge != 0 {
		doc.PixelArea = doc.PixelEdge * doc.PixelEdge
	}
	return assess.Input{
		Matrix:     doc.ErrorMatrix,
		Population: doc.MappedPixels,
		PixelArea:  doc.PixelArea,
	}, doc.Label, nil
}

func runOnce() error {
	if *inputPath == "" {
		return fmt.Errorf("no input file; use -input matrix.json")
	}
	in, docLabel, err := loadInput(*inputPath)
	if err != nil {
		return err
	}
	if *label != "" {
		docLabel = *label
	}

	result, err := assess.Run(in)
	if err != nil {
		return err
	}

	if err := report.WriteText(os.Stdout, result, *areaUnits); err != nil {
		return err
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, result, *areaUnits); err != nil {
			return err
		}
		log.Printf("results written to %s", *csvPath)
	}

	if *dbPath != "" {
		database, err := db.NewDB(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
		id, err := database.CreateAssessment(docLabel, in, result)
		if err != nil {
			return err
		}
		log.Printf("assessment stored as %s", id)
	}
	return nil
}

func runServer() error {
	var database *db.DB
	if *dbPath != "" {
		var err error
		database, err = db.NewDB(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()
	} else {
		log.Print("no -db given; assessments will not be persisted")
	}

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LogRequests(api.NewServer(database, *areaUnits).ServeMux()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", *listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("accuracy-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if !units.IsValid(*areaUnits) {
		log.Fatalf("invalid units %q; valid units are %s", *areaUnits, units.GetValidUnitsString())
	}

	var err error
	if *serve {
		err = runServer()
	} else {
		err = runOnce()
	}
	if err != nil {
		log.Fatal(err)
	}
}
