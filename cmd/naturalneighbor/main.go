package main

import (
	"encoding/binary"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"naturalneighbor/internal/models"
	"naturalneighbor/pkg/config"
	"naturalneighbor/pkg/geometry"
	"naturalneighbor/pkg/interpolation"
	"naturalneighbor/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "CSV file of known samples, one x,y,z,value record per line")
	configFile := flag.String("config", "config.yaml", "YAML configuration file (optional)")
	ni := flag.Int("ni", 0, "Grid extent along i (overrides config when > 0)")
	nj := flag.Int("nj", 0, "Grid extent along j (overrides config when > 0)")
	nk := flag.Int("nk", 0, "Grid extent along k (overrides config when > 0)")
	outputFile := flag.String("output", "", "Output file for the raw float64 volume (overrides config)")
	extractSlices := flag.Bool("extract-slices", false, "Extract and save PNG slices along all axes")
	slicesDir := flag.String("slices-dir", "", "Directory to save extracted slices (overrides config)")
	flag.Parse()

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the configuration file
	if *ni > 0 {
		cfg.Grid.Ni = *ni
	}
	if *nj > 0 {
		cfg.Grid.Nj = *nj
	}
	if *nk > 0 {
		cfg.Grid.Nk = *nk
	}
	if *outputFile != "" {
		cfg.Output.VolumeFile = *outputFile
	}
	if *extractSlices {
		cfg.Output.ExtractSlices = true
	}
	if *slicesDir != "" {
		cfg.Output.SlicesDir = *slicesDir
	}

	fmt.Println("================================")
	fmt.Println("DISCRETE NATURAL NEIGHBOR INTERPOLATION IN 3D")
	fmt.Println("================================")

	points, values, err := readKnownSamples(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read known samples: %v", err)
	}
	fmt.Printf("Loaded %d known samples from %s\n", len(points), *inputFile)
	fmt.Printf("Interpolating onto a (%d x %d x %d) grid...\n", cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk)

	interpolator := interpolation.NewInterpolator(points, values)
	if cfg.Output.Verbose {
		interpolator.SetProgressCallback(func(completed, total int, message string) {
			if total > 0 {
				fmt.Printf("\r%s (%d/%d cells)", message, completed, total)
			} else {
				fmt.Printf("\r%s", message)
			}
			if completed == total {
				fmt.Println()
			}
		})
	}

	startTime := time.Now()
	volume, err := runInterpolation(interpolator, cfg.Grid.Ni, cfg.Grid.Nj, cfg.Grid.Nk)
	if err != nil {
		log.Fatalf("Interpolation failed: %v", err)
	}
	fmt.Printf("Interpolation completed in %.2f seconds\n", time.Since(startTime).Seconds())

	if err := writeVolume(volume.Data, cfg.Output.VolumeFile); err != nil {
		log.Fatalf("Failed to write output volume: %v", err)
	}
	fmt.Printf("Interpolated volume saved to: %s\n", cfg.Output.VolumeFile)

	printSummary(volume.Data)

	// Extract and save slices if requested
	if cfg.Output.ExtractSlices {
		fmt.Println("\nExtracting volume slices along all axes...")
		viewer := visualization.NewViewer(volume)

		for _, axis := range []string{"x", "y", "z"} {
			axisDir := filepath.Join(cfg.Output.SlicesDir, axis)
			fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)

			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}

		fmt.Println("Slice extraction completed!")
	}
}

// runInterpolation allocates the zero-initialized accumulator and counter
// volumes the core contract requires and runs the interpolation in place,
// returning the normalized accumulator.
func runInterpolation(interpolator *interpolation.Interpolator, ni, nj, nk int) (*models.Volume, error) {
	interp, err := models.NewVolume(ni, nj, nk)
	if err != nil {
		return nil, err
	}
	counts, err := models.NewVolume(ni, nj, nk)
	if err != nil {
		return nil, err
	}

	if err := interpolator.Interpolate(interp, counts); err != nil {
		return nil, err
	}
	return interp, nil
}

// readKnownSamples reads known points and values from a CSV file with one
// x,y,z,value record per line. Blank lines and lines starting with # are
// skipped.
func readKnownSamples(path string) ([]geometry.Point, []float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.FieldsPerRecord = 4

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	points := make([]geometry.Point, 0, len(records))
	values := make([]float64, 0, len(records))
	for line, record := range records {
		var fields [4]float64
		for i, raw := range record {
			fields[i], err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s record %d field %d: %w", path, line+1, i+1, err)
			}
		}
		points = append(points, geometry.NewPoint(fields[0], fields[1], fields[2]))
		values = append(values, fields[3])
	}

	return points, values, nil
}

// writeVolume dumps the volume data as raw little-endian float64 values.
func writeVolume(data []float64, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return binary.Write(file, binary.LittleEndian, data)
}

// printSummary prints basic statistics of the interpolated field.
func printSummary(data []float64) {
	fmt.Printf("\nResult summary:\n")
	fmt.Printf("===============\n")
	fmt.Printf("Cells: %d\n", len(data))
	if len(data) == 0 {
		return
	}
	fmt.Printf("Min:    %.6f\n", floats.Min(data))
	fmt.Printf("Max:    %.6f\n", floats.Max(data))
	fmt.Printf("Mean:   %.6f\n", stat.Mean(data, nil))
	fmt.Printf("StdDev: %.6f\n", math.Sqrt(stat.Variance(data, nil)))
}
