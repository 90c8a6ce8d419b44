package batch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/internal/batch"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func TestLoadGoldenDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brf_268882.json", `{"balance_sheet": {"total_assets": 301339818}}`)
	writeFile(t, dir, "brf_57125.json", `{"governance": {"chairman": "A. Svensson"}}`)
	writeFile(t, dir, "notes.txt", "not a golden")

	goldens, err := batch.LoadGoldenDir(dir)
	if err != nil {
		t.Fatalf("LoadGoldenDir() error = %v", err)
	}

	if goldens.Len() != 2 {
		t.Errorf("Len() = %d, want 2", goldens.Len())
	}

	golden, ok := goldens.Golden("brf_268882")
	if !ok {
		t.Fatal("Golden(brf_268882) not found")
	}
	balance, _ := golden.Field("balance_sheet")
	assets, _ := balance.Field("total_assets")
	if assets.Number() != 301339818 {
		t.Errorf("total_assets = %v, want 301339818", assets.Number())
	}

	if _, ok := goldens.Golden("brf_81563"); ok {
		t.Error("Golden(brf_81563) = true, want false")
	}
	if _, ok := goldens.Golden("notes"); ok {
		t.Error("non-JSON file loaded as golden")
	}
}

func TestLoadGoldenDirInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{not valid`)

	if _, err := batch.LoadGoldenDir(dir); err == nil {
		t.Error("LoadGoldenDir() error = nil, want decode error")
	}
}

func TestLoadGoldenDirMissing(t *testing.T) {
	if _, err := batch.LoadGoldenDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("LoadGoldenDir() error = nil, want error for missing directory")
	}
}

func TestGoldensInMemory(t *testing.T) {
	goldens := batch.Goldens(map[string]payload.Value{
		"brf_268882": payload.Object(map[string]payload.Value{"fees": payload.Null()}),
	})

	if goldens.Len() != 1 {
		t.Errorf("Len() = %d, want 1", goldens.Len())
	}
	if _, ok := goldens.Golden("brf_268882"); !ok {
		t.Error("Golden(brf_268882) not found")
	}
}
