package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

const (
	flagOutput       = "output"
	flagFormat       = "format"
	flagAction       = "action"
	flagPreset       = "preset"
	flagOutputFormat = "output-format"
	flagAttempts     = "attempts"
)

// errRejected is returned by validate when the submission fails so the
// process exits non-zero after printing the result.
var errRejected = errors.New("submission failed validation")

func newStoreCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <structure-file>",
		Short: "Seal a form structure into a container",
		Long: `Reads a structure (JSON or YAML, "-" for stdin), applies an optional
preset and writes the container JSON holding the canonical serialization and
its hash.`,
		Example: `formbuilder store order.yaml -o order.container.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			gen, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}
			doc, err := gen.Load(cmd.Context(), orchestrator.Request{Raw: data})
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(doc.Container(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode container: %w", err)
			}
			a.logger.Info("form sealed", "hash", doc.Hash(), "fields", len(doc.Structure()))

			output, _ := cmd.Flags().GetString(flagOutput)
			return writeOutput(cmd, output, append(payload, '\n'))
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringP(flagOutput, "o", "", "output file (stdout if empty)")
	cmd.Flags().String(flagPreset, "", "JSON preset applied to the structure before sealing")
	return cmd
}

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <container-or-structure-file>",
		Short: "Render a form as HTML, XML, JSON or an OpenAPI schema",
		Long: `Renders a stored container (its hash is verified first) or a raw
structure with one of the registered renderers.`,
		Example: `formbuilder render order.container.json --format xml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			gen, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString(flagFormat)
			action, _ := cmd.Flags().GetString(flagAction)
			req := formRequest(data)
			req.Renderer = format
			req.RenderOptions = render.RenderOptions{Action: action}

			out, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.logger.Debug("form rendered", "renderer", format, "content_type", out.ContentType)

			output, _ := cmd.Flags().GetString(flagOutput)
			return writeOutput(cmd, output, out.Body)
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringP(flagFormat, "f", "html", "renderer name (html, xml, json, schema)")
	cmd.Flags().String(flagAction, "", "form action URL for the html renderer")
	cmd.Flags().StringP(flagOutput, "o", "", "output file (stdout if empty)")
	cmd.Flags().String(flagPreset, "", "JSON preset applied to raw structures")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <container-or-structure-file> <submission-file>",
		Short: "Validate a submission against a form",
		Long: `Validates a submission (a JSON object or a url-encoded body) and prints
the result as JSON. The command exits non-zero when validation fails.`,
		Example: `formbuilder validate order.container.json submission.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			submission, err := parseSubmission(raw)
			if err != nil {
				return err
			}
			gen, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}
			doc, err := gen.Load(cmd.Context(), formRequest(data))
			if err != nil {
				return err
			}

			result := doc.Validate(submission)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			if !result.Success {
				return errRejected
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
	return cmd
}

func newFillCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <container-or-structure-file>",
		Short: "Fill a form interactively in the terminal",
		Long: `Prompts for every field, re-asking the ones that fail validation, and
prints the collected submission.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString(flagOutputFormat)
			format, err := tui.ParseOutputFormat(name)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			gen, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}
			doc, err := gen.Load(cmd.Context(), formRequest(data))
			if err != nil {
				return err
			}

			attempts, _ := cmd.Flags().GetInt(flagAttempts)
			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(os.Stdin, os.Stderr)
			}
			renderer := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(format),
				tui.WithMaxAttempts(attempts),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			)

			body, _, err := doc.Render(cmd.Context(), renderer, render.RenderOptions{})
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString(flagOutput)
			return writeOutput(cmd, output, body)
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().String(flagOutputFormat, string(tui.OutputFormatJSON), "submission format (json, form, pretty)")
	cmd.Flags().Int(flagAttempts, 3, "how many times failed fields are asked")
	cmd.Flags().StringP(flagOutput, "o", "", "output file (stdout if empty)")
	return cmd
}

func (a *app) orchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithDocumentOptions(document.WithLogger(a.logger)),
	}
	if flag := cmd.Flags().Lookup(flagPreset); flag != nil && flag.Value.String() != "" {
		data, err := os.ReadFile(flag.Value.String())
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(options...), nil
}
