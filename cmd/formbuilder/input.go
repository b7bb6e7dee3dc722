package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
)

const stdinPath = "-"

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == stdinPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// formRequest turns a file into an orchestrator request. Files holding a
// container (form_structure/form_hash) are verified on load, anything else is
// parsed as a raw structure.
func formRequest(data []byte) orchestrator.Request {
	if container, ok := asContainer(data); ok {
		return orchestrator.Request{Container: &container}
	}
	return orchestrator.Request{Raw: data}
}

func asContainer(data []byte) (document.Container, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return document.Container{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return document.Container{}, false
	}
	if _, ok := probe["form_structure"]; !ok {
		return document.Container{}, false
	}
	var container document.Container
	if err := json.Unmarshal(trimmed, &container); err != nil {
		return document.Container{}, false
	}
	return container, true
}

// parseSubmission accepts either a JSON object of strings or a url-encoded
// body, the two shapes a browser or API client would post.
func parseSubmission(data []byte) (model.Submission, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.Submission{}, nil
	}
	if trimmed[0] == '{' {
		var sub model.Submission
		if err := json.Unmarshal(trimmed, &sub); err != nil {
			return nil, fmt.Errorf("parse submission: %w", err)
		}
		if sub == nil {
			sub = model.Submission{}
		}
		return sub, nil
	}
	values, err := url.ParseQuery(strings.TrimSpace(string(trimmed)))
	if err != nil {
		return nil, fmt.Errorf("parse submission: %w", err)
	}
	sub := model.SubmissionFromValues(values)
	if sub == nil {
		sub = model.Submission{}
	}
	return sub, nil
}
