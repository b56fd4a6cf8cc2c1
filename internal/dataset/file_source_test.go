package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDatasetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Load(t *testing.T) {
	path := writeDatasetFile(t, `{
		"codes": [
			{"mcc": "5411", "iso_description": "Grocery Stores, Supermarkets", "stripe_code": "grocery_stores_supermarkets"},
			{"mcc": "7995", "iso_description": "Betting", "irs_reportable": true}
		],
		"ranges": [
			{"start": "3000", "end": "3299", "name": "Airlines"}
		],
		"categories": {
			"gambling": {"name": "Gambling", "codes": ["7800", "7801", "7802", "7995", "9406"]}
		}
	}`)

	source := NewFileSource(path)
	assert.Equal(t, "file:"+path, source.Name())

	records, err := source.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records.Codes, 2)
	assert.Equal(t, "5411", records.Codes[0].MCC)
	assert.Equal(t, "grocery_stores_supermarkets", records.Codes[0].StripeCode)
	require.NotNil(t, records.Codes[1].IRSReportable)
	assert.True(t, *records.Codes[1].IRSReportable)

	require.Len(t, records.Ranges, 1)
	assert.Equal(t, "Airlines", records.Ranges[0].Name)

	require.Contains(t, records.Categories, "gambling")
	assert.Equal(t, []string{"7800", "7801", "7802", "7995", "9406"}, records.Categories["gambling"].Codes)
}

func TestFileSource_LoadMissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))

	_, err := source.Load(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_LoadMalformedJSON(t *testing.T) {
	path := writeDatasetFile(t, `{"codes": [`)
	source := NewFileSource(path)

	_, err := source.Load(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestFileSource_LoadCancelledContext(t *testing.T) {
	path := writeDatasetFile(t, `{"codes": []}`)
	source := NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
