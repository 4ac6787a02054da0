package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// recorder captures Seeder calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) Insert(phrase string) int {
	r.calls = append(r.calls, "insert:"+phrase)
	return 1
}

func (r *recorder) SetScore(phrase string, score int) {
	r.calls = append(r.calls, "set:"+phrase)
}

func TestDefaults(t *testing.T) {
	seeds := Defaults()
	if len(seeds) != 12 {
		t.Fatalf("reference corpus has %d seeds, want 12", len(seeds))
	}
	seen := map[string]bool{}
	for _, s := range seeds {
		if seen[s.Phrase] {
			t.Errorf("duplicate seed %q", s.Phrase)
		}
		seen[s.Phrase] = true
		if s.Accumulate {
			t.Errorf("reference seed %q should carry an exact score", s.Phrase)
		}
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# popular searches",
		"how to make pizza\t50",
		"",
		"holiday packages\t 25 ",
		"how to tie a tie",
		"   ",
		"negative\t-4",
	}, "\n")

	seeds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Seed{
		{Phrase: "how to make pizza", Score: 50},
		{Phrase: "holiday packages", Score: 25},
		{Phrase: "how to tie a tie", Accumulate: true},
		{Phrase: "negative", Score: -4},
	}
	if !reflect.DeepEqual(seeds, want) {
		t.Errorf("got %+v\nwant %+v", seeds, want)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("ok\t1\nbroken\tlots\n"))
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestApply(t *testing.T) {
	r := &recorder{}
	n := Apply(r, []Seed{
		{Phrase: "a", Score: 3},
		{Phrase: "b", Accumulate: true},
		{Phrase: "a", Score: 1},
	})
	if n != 3 {
		t.Errorf("Apply returned %d, want 3", n)
	}
	want := []string{"set:a", "insert:b", "set:a"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "seeds.toml")
	tomlBody := `
[[seed]]
phrase = "how to make coffee"
score = 22

[[seed]]
phrase = "how to make tea"
accumulate = true
`
	if err := os.WriteFile(tomlPath, []byte(tomlBody), 0o644); err != nil {
		t.Fatal(err)
	}

	tsvPath := filepath.Join(dir, "seeds.tsv")
	if err := os.WriteFile(tsvPath, []byte("home remedies for cold\t40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	seeds, err := LoadFiles([]string{tomlPath, tsvPath})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	want := []Seed{
		{Phrase: "how to make coffee", Score: 22},
		{Phrase: "how to make tea", Accumulate: true},
		{Phrase: "home remedies for cold", Score: 40},
	}
	if !reflect.DeepEqual(seeds, want) {
		t.Errorf("got %+v\nwant %+v", seeds, want)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "seeds.bin")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("x\ty\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); !errors.Is(err, ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine, got %v", err)
	}
}
