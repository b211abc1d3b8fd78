package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Simplici0/roicalc/internal/report"
	"github.com/Simplici0/roicalc/internal/roi"
)

// profileFlags binds one float flag per FirmProfile field plus --file.
type profileFlags struct {
	file   string
	values map[roi.Field]*float64
}

func flagName(field roi.Field) string {
	return strings.ReplaceAll(string(field), "_", "-")
}

func addProfileFlags(fs *pflag.FlagSet) *profileFlags {
	pf := &profileFlags{values: make(map[roi.Field]*float64)}
	defaults := roi.DefaultProfile()

	fs.StringVarP(&pf.file, "file", "f", "", "YAML firm profile; flags override its values")
	for _, f := range profileFields {
		v, _ := defaults.Value(f.Field)
		pf.values[f.Field] = fs.Float64(flagName(f.Field), v, f.Label)
	}
	return pf
}

// profile resolves defaults, then the YAML file, then flags set explicitly.
func (pf *profileFlags) profile(fs *pflag.FlagSet) (roi.FirmProfile, error) {
	p := roi.DefaultProfile()
	if pf.file != "" {
		loaded, err := roi.LoadProfile(pf.file)
		if err != nil {
			return roi.FirmProfile{}, err
		}
		p = loaded
	}

	for _, f := range profileFields {
		if pf.file != "" && !fs.Changed(flagName(f.Field)) {
			continue
		}
		p, _ = p.With(f.Field, *pf.values[f.Field])
	}
	return p, nil
}

var (
	computeFlags  *profileFlags
	computeFormat string
	computeTitle  string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the ROI projection for a firm profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := computeFlags.profile(cmd.Flags())
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), computeFormat, computeTitle, p)
	},
}

func writeResult(w io.Writer, format, title string, p roi.FirmProfile) error {
	result := roi.Compute(p)
	switch format {
	case "text":
		_, err := io.WriteString(w, report.Text(title, p, result))
		return err
	case "markdown", "md":
		_, err := io.WriteString(w, report.Markdown(title, p, result))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report.NewDocument(p, result))
	}
	return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
}

func init() {
	computeFlags = addProfileFlags(computeCmd.Flags())
	computeCmd.Flags().StringVar(&computeFormat, "format", "text", "output format: text, markdown or json")
	computeCmd.Flags().StringVar(&computeTitle, "title", "", "report title")
	rootCmd.AddCommand(computeCmd)
}
