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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AaronDMarasco/deepdiff"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    any
		wantErr bool
	}{
		{
			name:    "json",
			file:    "doc.json",
			content: `{"a": 1, "b": [true, "x"]}`,
			want:    map[string]any{"a": float64(1), "b": []any{true, "x"}},
		},
		{
			name:    "yaml",
			file:    "doc.yaml",
			content: "a: 1\nb:\n  - true\n  - x\n",
			want:    map[string]any{"a": 1, "b": []any{true, "x"}},
		},
		{
			name:    "yml-extension",
			file:    "doc.yml",
			content: "a: hello\n",
			want:    map[string]any{"a": "hello"},
		},
		{
			name:    "invalid-json",
			file:    "doc.json",
			content: `{"a":`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadDocument(writeFile(t, tt.file, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("loadDocument() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	if _, err := loadDocument(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Errorf("loadDocument(missing) did not fail")
	}
}

func TestPrintText(t *testing.T) {
	report, err := deepdiff.Diff(
		map[string]any{"a": 1, "b": 2},
		map[string]any{"a": 3, "c": 4},
	)
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := printText(&sb, report); err != nil {
		t.Fatal(err)
	}
	want := "values_changed:\n" +
		"  root['a']: 1 -> 3\n" +
		"dictionary_item_added:\n" +
		"  root['c']: 4\n" +
		"dictionary_item_removed:\n" +
		"  root['b']: 2\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("printText() mismatch (-want +got):\n%s", diff)
	}
}
