package dataset

import (
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
)

// EmbeddedSource names the dataset compiled into the binary.
const EmbeddedSource = "embedded"

//go:embed data/indian_dishes.json
var embeddedDishes []byte

var (
	ErrNoSources     = errors.New("no dataset sources provided")
	ErrEmptyDataset  = errors.New("dataset contains no dishes")
	ErrInvalidRecord = errors.New("invalid dish record")
)

// Format is the encoding of a dataset document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadAll loads every source concurrently and concatenates the dishes
// in the order the sources were given. The first failure cancels the rest.
func LoadAll(ctx context.Context, sources []string) ([]models.Dish, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	results := make([][]models.Dish, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			dishes, err := Load(gctx, src)
			if err != nil {
				return fmt.Errorf("failed to load source %d (%s): %w", i+1, describe(src), err)
			}
			results[i] = dishes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, dishes := range results {
		total += len(dishes)
	}
	all := make([]models.Dish, 0, total)
	for _, dishes := range results {
		all = append(all, dishes...)
	}

	return all, nil
}

// Load reads one dataset source: the embedded dataset, a local file or an
// http(s) URL. Files ending in .gz are decompressed; .yaml and .yml are
// parsed as YAML, anything else as JSON.
func Load(ctx context.Context, source string) ([]models.Dish, error) {
	source = strings.TrimSpace(source)
	if source == "" || source == EmbeddedSource {
		return Parse(bytes.NewReader(embeddedDishes), FormatJSON)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		rc, err = openURL(ctx, source)
	} else {
		rc, err = os.Open(source)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	name := source
	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
		name = name[:len(name)-len(".gz")]
	}

	return Parse(r, formatFor(name))
}

// openURL downloads a dataset document.
func openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// Parse decodes a dataset document and validates every record.
func Parse(r io.Reader, format Format) ([]models.Dish, error) {
	var dishes []models.Dish

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&dishes); err != nil {
			return nil, fmt.Errorf("failed to decode yaml dataset: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&dishes); err != nil {
			return nil, fmt.Errorf("failed to decode json dataset: %w", err)
		}
	}

	if len(dishes) == 0 {
		return nil, ErrEmptyDataset
	}

	for i := range dishes {
		if err := validate.Struct(dishes[i]); err != nil {
			return nil, fmt.Errorf("%w at index %d (id %q): %v", ErrInvalidRecord, i, dishes[i].ID, err)
		}
	}

	return dishes, nil
}

func formatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func describe(source string) string {
	if strings.TrimSpace(source) == "" {
		return EmbeddedSource
	}
	return source
}
