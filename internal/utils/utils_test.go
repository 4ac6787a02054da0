package utils

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v", got)
	}
	if got := CreateRankList(3); !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("CreateRankList(3) = %v", got)
	}
	big := CreateRankList(70000)
	if big[69999] != 65535 {
		t.Errorf("ranks should saturate, got %d", big[69999])
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		7:        "7",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45000:   "-45,000",
		55:       "55",
		10000000: "10,000,000",
	}
	for n, want := range testCases {
		if got := FormatWithCommas(n); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatWithCommasExtremes(t *testing.T) {
	for _, n := range []int{math.MinInt, math.MaxInt, math.MinInt + 1} {
		got := FormatWithCommas(n)
		if strings.ReplaceAll(got, ",", "") != strconv.Itoa(n) {
			t.Errorf("FormatWithCommas(%d) = %q", n, got)
		}
	}
	if strconv.IntSize == 64 {
		if got := FormatWithCommas(math.MinInt); got != "-9,223,372,036,854,775,808" {
			t.Errorf("FormatWithCommas(MinInt) = %q", got)
		}
	}
}

func TestTOMLRoundTripAndRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "cfg.toml")

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}
	type section struct {
		Limit int      `toml:"limit"`
		Files []string `toml:"files"`
	}
	type doc struct {
		Main section `toml:"main"`
	}
	if err := SaveTOMLFile(doc{Main: section{Limit: 9, Files: []string{"a.txt"}}}, path); err != nil {
		t.Fatalf("SaveTOMLFile: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("saved file missing")
	}

	raw, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery: %v", err)
	}
	sec, ok := ExtractSection(raw, "main")
	if !ok {
		t.Fatal("section main missing")
	}
	if limit, ok := ExtractInt64(sec, "limit"); !ok || limit != 9 {
		t.Errorf("limit = %d, %v", limit, ok)
	}
	if files, ok := ExtractStrings(sec, "files"); !ok || !reflect.DeepEqual(files, []string{"a.txt"}) {
		t.Errorf("files = %v, %v", files, ok)
	}
	if _, ok := ExtractBool(sec, "limit"); ok {
		t.Error("int key should not extract as bool")
	}
	if _, ok := ExtractString(sec, "missing"); ok {
		t.Error("missing key extracted")
	}
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	result := CheckDirStatus(dir)
	if !result.Exists || !result.Writable || result.Error != nil {
		t.Errorf("CheckDirStatus = %+v", result)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("write probe left files behind: %v", entries)
	}
	if GetAbsolutePath("") != "unknown" {
		t.Error("empty path should be unknown")
	}
}
