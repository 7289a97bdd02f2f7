package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Skufu/GlucoRisk/internal/risk"
)

type profileFlags struct {
	file      string
	immediate string
	extended  string
	values    []float64
}

func (pf *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&pf.file, "file", "f", "", "read the profile from a YAML or JSON file")
	pf.values = make([]float64, len(risk.Fields()))
	for _, f := range risk.Fields() {
		fs.Float64Var(&pf.values[f], f.String(), 0, "value for "+f.String())
	}
	fs.StringVar(&pf.immediate, "immediateFamilyHistory", "no", "parent or sibling with diabetes (yes|no)")
	fs.StringVar(&pf.extended, "extendedFamilyHistory", "no", "grandparent, aunt, uncle or cousin with diabetes (yes|no)")
}

// profile builds the profile from --file, then applies any flags set
// explicitly on the command line.
func (pf *profileFlags) profile(fs *pflag.FlagSet) (risk.HealthProfile, error) {
	var p risk.HealthProfile
	if pf.file != "" {
		data, err := os.ReadFile(pf.file)
		if err != nil {
			return p, fmt.Errorf("read profile: %w", err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parse profile %s: %w", pf.file, err)
		}
	}

	for _, f := range risk.Fields() {
		if pf.file == "" || fs.Changed(f.String()) {
			p = p.With(f, pf.values[f])
		}
	}

	immediate, extended := string(p.ImmediateFamilyHistory), string(p.ExtendedFamilyHistory)
	if pf.file == "" || fs.Changed("immediateFamilyHistory") || immediate == "" {
		immediate = pf.immediate
	}
	if pf.file == "" || fs.Changed("extendedFamilyHistory") || extended == "" {
		extended = pf.extended
	}
	var err error
	if p.ImmediateFamilyHistory, err = risk.ParseFamilyHistory(immediate); err != nil {
		return p, fmt.Errorf("immediateFamilyHistory: %w", err)
	}
	if p.ExtendedFamilyHistory, err = risk.ParseFamilyHistory(extended); err != nil {
		return p, fmt.Errorf("extendedFamilyHistory: %w", err)
	}
	return p, nil
}

func newAssessCmd() *cobra.Command {
	var (
		pf     profileFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Validate a profile and print its risk assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.profile(cmd.Flags())
			if err != nil {
				return err
			}
			result, fe := risk.Assess(p)
			if !fe.Empty() {
				return reportFieldErrors(cmd.ErrOrStderr(), fe)
			}
			return writeResult(cmd.OutOrStdout(), output, result)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml|json)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every field of a profile against its allowed range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.profile(cmd.Flags())
			if err != nil {
				return err
			}
			fe := risk.Validate(p)
			if !fe.Empty() {
				return reportFieldErrors(cmd.ErrOrStderr(), fe)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile is valid")
			return nil
		},
	}
	pf.register(cmd.Flags())
	return cmd
}

func reportFieldErrors(w io.Writer, fe risk.FieldErrors) error {
	list := fe.List()
	for _, e := range list {
		fmt.Fprintf(w, "%s: %s\n", e.Field, e.Error())
	}
	return fmt.Errorf("profile has %d invalid field(s)", len(list))
}

func writeResult(w io.Writer, format string, result risk.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
