package passes_test

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"soyc-go/packages/compiler/soyparse"
)

type roundTripCase struct {
	Name      string   `yaml:"name"`
	Template  string   `yaml:"template"`
	Flattened string   `yaml:"flattened,omitempty"`
	Errors    []string `yaml:"errors,omitempty"`
}

type roundTripCorpus struct {
	Cases []roundTripCase `yaml:"cases"`
}

func loadRoundTripCorpus(t *testing.T, path string) []roundTripCase {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading %s: %v", path, err)
	}
	var corpus roundTripCorpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		t.Fatalf("Parsing %s: %v", path, err)
	}
	if len(corpus.Cases) == 0 {
		t.Fatalf("Expected cases in %s, got none", path)
	}
	return corpus.Cases
}

func TestDesugar_Corpus(t *testing.T) {
	for _, tc := range loadRoundTripCorpus(t, "testdata/roundtrip.yaml") {
		tc := tc
		if len(tc.Errors) > 0 {
			t.Run("should report "+tc.Name, func(t *testing.T) {
				nodes, reporter := parseTemplate(t, tc.Template)
				soyparse.Rewrite(nodes, reporter)
				var msgs []string
				for _, err := range reporter.Errors() {
					msgs = append(msgs, err.Msg)
				}
				for _, want := range tc.Errors {
					found := false
					for _, msg := range msgs {
						if strings.Contains(msg, want) {
							found = true
							break
						}
					}
					if !found {
						t.Errorf("Expected an error containing %q, got:\n%s", want, strings.Join(msgs, "\n"))
					}
				}
			})
			continue
		}
		t.Run("should flatten "+tc.Name, func(t *testing.T) {
			got := flattenSource(t, tc.Template)
			if diff := cmp.Diff(tc.Flattened, got); diff != "" {
				t.Errorf("Flattened source mismatch (-want +got):\n%s", diff)
			}
			if again := flattenSource(t, got); again != got {
				t.Errorf("Expected a fixed point, got %q then %q", got, again)
			}
		})
	}
}
