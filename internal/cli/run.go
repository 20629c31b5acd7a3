// Package cli implements the sdofetch command line interface.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"

	"sdofetch/internal/catalog"
	"sdofetch/internal/config"
	"sdofetch/internal/fetchers"
	"sdofetch/internal/logger"
	"sdofetch/internal/storage"
)

var (
	// Command line flags
	sourceFlag    string
	outputFlag    string
	scaleFlag     float64
	multipleFlag  bool
	listFlag      bool
	timestampFlag bool

	rootCmd = &cobra.Command{
		Use:           "sdofetch",
		Short:         "Download the latest solar imagery from NASA's Solar Dynamics Observatory",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `sdofetch downloads the latest solar images published by NASA's Solar
Dynamics Observatory, either from the pre-rendered latest-image endpoints
on sdo.gsfc.nasa.gov or through the Helioviewer API, and writes a JSON
metadata sidecar next to every image.

Examples:
  # Download the latest AIA 171 Å image
  sdofetch

  # Download a specific wavelength
  sdofetch --source AIA_304

  # Download the common wavelength preset
  sdofetch --multiple

  # List all available sources
  sdofetch --list

  # Download to a specific directory or GCS bucket
  sdofetch --output my_sdo_images
  sdofetch --output gs://my-bucket/sdo`,
		RunE: runRoot,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sdofetch version %s\n", config.GetVersion())
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&sourceFlag, "source", "s", catalog.DefaultSource, "SDO source to fetch")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory or gs://bucket[/prefix] (default: sdo_data)")
	rootCmd.Flags().Float64Var(&scaleFlag, "scale", 0, "Image scale in arcseconds per pixel for the Helioviewer path (default: 2.4)")
	rootCmd.Flags().BoolVarP(&multipleFlag, "multiple", "m", false, "Download the common wavelength preset")
	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "List all available SDO sources")
	rootCmd.Flags().BoolVarP(&timestampFlag, "timestamp", "t", false, "Print the timestamp of the latest available data and exit")
	rootCmd.AddCommand(versionCmd)
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if listFlag {
		printSources(out)
		return nil
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return failure.Wrap(err)
	}

	logger.SetLevel(cfg.LogLevel)

	// Flags take precedence over environment configuration
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputFlag
	}
	if cmd.Flags().Changed("scale") {
		cfg.ImageScale = scaleFlag
	}

	store, err := storage.NewClient(ctx, cfg.OutputDir)
	if err != nil {
		return failure.Wrap(err)
	}
	defer store.Close()

	fetcher := fetchers.New(cfg, store)

	if timestampFlag {
		ts, err := fetcher.LatestTimestamp(ctx)
		if err != nil {
			logger.Error("Could not determine latest data timestamp", "error", err)
			return nil
		}
		fmt.Fprintf(out, "Latest SDO data available at: %s\n", ts)
		return nil
	}

	if multipleFlag {
		results := fetcher.FetchMany(ctx, catalog.DefaultPreset)
		succeeded := 0
		for _, res := range results {
			if res.Err == nil {
				succeeded++
				fmt.Fprintf(out, "%s: %s\n", res.Source, res.ImagePath)
			}
		}
		fmt.Fprintf(out, "Successfully downloaded %d/%d images\n", succeeded, len(results))
		return nil
	}

	result := fetcher.FetchOne(ctx, sourceFlag)
	if result.Err != nil {
		// An unknown source name is fatal; fetch failures on a valid
		// source are reported but still count as a completed run.
		if failure.Is(result.Err, catalog.UnknownSource) {
			return result.Err
		}
		logger.Error("Fetch failed", "source", sourceFlag, "error", result.Err)
		return nil
	}

	fmt.Fprintf(out, "Image saved to: %s\n", result.ImagePath)
	fmt.Fprintf(out, "Metadata saved to: %s\n", result.MetaPath)
	return nil
}

// printSources writes the source catalog as a table
func printSources(w io.Writer) {
	fmt.Fprintln(w, "Available SDO data sources:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, src := range catalog.All() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", src.Name, src.Wavelength, src.Description)
	}
	tw.Flush()
}
