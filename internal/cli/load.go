// Copyright 2026 The deepdiff Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AaronDMarasco/deepdiff"
)

// loadDocument reads a JSON or YAML document, chosen by file extension. "-" reads JSON from
// stdin.
func loadDocument(path string) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	}
	return doc, nil
}

// printText writes the report grouped by change kind, one path per line.
func printText(w io.Writer, report *deepdiff.Report) error {
	for _, k := range report.Kinds() {
		if _, err := fmt.Fprintf(w, "%s:\n", k); err != nil {
			return err
		}
		changes := report.Changes(k)
		lines := make([]string, 0, len(changes))
		for _, c := range changes {
			lines = append(lines, describeChange(c))
		}
		sort.Strings(lines)
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	if report.DeepDistance > 0 {
		if _, err := fmt.Fprintf(w, "deep distance: %.6f\n", report.DeepDistance); err != nil {
			return err
		}
	}
	return nil
}

func describeChange(c *deepdiff.Change) string {
	path := c.Level.Path()
	switch c.Kind {
	case deepdiff.ValuesChanged, deepdiff.TypeChanged:
		return fmt.Sprintf("%s: %v -> %v", path, c.Level.A, c.Level.B)
	case deepdiff.IterableItemMoved:
		to, _ := c.Level.MovedTo()
		return fmt.Sprintf("%s -> [%d]: %v", path, to, c.Level.B)
	case deepdiff.RepetitionChanged:
		return fmt.Sprintf("%s: %v repeated %d -> %d times", path, c.Level.A, c.OldRepeat, c.NewRepeat)
	case deepdiff.DictItemRemoved, deepdiff.IterableItemRemoved,
		deepdiff.SetItemRemoved, deepdiff.AttributeRemoved:
		return fmt.Sprintf("%s: %v", path, c.Level.A)
	default:
		return fmt.Sprintf("%s: %v", path, c.Level.B)
	}
}
