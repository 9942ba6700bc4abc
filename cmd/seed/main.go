// Command seed loads reference characters and planets into the store.
//
//	seed -file data/seed.json [-config config.yaml]
//
// The file holds two arrays using the same field names the API returns:
//
//	{
//	  "characters": [{"name": "Luke Skywalker", "gender": "male", "height": 172, ...}],
//	  "planets":    [{"name": "Tatooine", "terrain": "desert", "population": 200000, ...}]
//	}
//
// Every record is validated before anything is written; one bad record
// aborts the whole load.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/service"
)

// seedFile is the on-disk shape of a seed file.
type seedFile struct {
	Characters []model.CharacterJSON `json:"characters" validate:"dive"`
	Planets    []model.PlanetJSON    `json:"planets" validate:"dive"`
}

func main() {
	file := flag.String("file", "data/seed.json", "seed file to load")
	configPath := flag.String("config", "", "optional config file (yaml, toml or json)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(context.Background(), *file, *configPath, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, file, configPath string, logger *slog.Logger) error {
	dbCfg, err := config.LoadDatabase(configPath)
	if err != nil {
		return err
	}

	seed, err := readSeedFile(file)
	if err != nil {
		return err
	}

	if sqlstore.DetectDialect(dbCfg.URL) == sqlstore.DialectSQLite && dbCfg.URL != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbCfg.URL), 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlstore.Open(ctx, dbCfg.URL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := service.NewCatalogService(db, db, logger)
	chars, planets, err := load(ctx, catalog, seed)
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		slog.String("file", file),
		slog.Int("characters", chars),
		slog.Int("planets", planets),
	)
	return nil
}

// readSeedFile decodes and validates path. Unknown fields are rejected so a
// typo in a field name does not silently zero a column.
func readSeedFile(path string) (*seedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var seed seedFile
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&seed); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid record at %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return &seed, nil
}

// catalogWriter is the write side of service.CatalogService.
type catalogWriter interface {
	AddCharacter(ctx context.Context, c *model.Character) error
	AddPlanet(ctx context.Context, p *model.Planet) error
}

func load(ctx context.Context, catalog catalogWriter, seed *seedFile) (int, int, error) {
	for i, c := range seed.Characters {
		rec := c.Record()
		if err := catalog.AddCharacter(ctx, &rec); err != nil {
			return i, 0, err
		}
	}
	for i, p := range seed.Planets {
		rec := p.Record()
		if err := catalog.AddPlanet(ctx, &rec); err != nil {
			return len(seed.Characters), i, err
		}
	}
	return len(seed.Characters), len(seed.Planets), nil
}
