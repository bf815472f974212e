package main

import (
	"fmt"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/config"
	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/levels"
	"github.com/vovakirdan/matchgrid/internal/presentation"
	"github.com/vovakirdan/matchgrid/internal/rng"
	"github.com/vovakirdan/matchgrid/internal/storage"
)

// engine bundles what every command needs to build a grid.
type engine struct {
	cfg      config.EngineConfig
	catalog  *catalog.Catalog
	streams  *rng.Streams
	recorder *presentation.Recorder
	tutorial *presentation.Tutorial
}

func loadEngine() (*engine, error) {
	cfg, err := config.LoadEngine(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		default:
			return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyEnginePreset(&cfg, preset)
	}

	cat := catalog.Default()
	if flagCatalog != "" {
		if cat, err = catalog.Load(flagCatalog); err != nil {
			return nil, err
		}
	}

	rec := presentation.NewRecorder()
	sink := presentation.Fanout{rec, presentation.LogSink{Logger: logger}}
	e := &engine{
		cfg:      cfg,
		catalog:  cat,
		streams:  rng.NewStreams(flagSeed),
		recorder: rec,
		tutorial: presentation.NewTutorial(sink),
	}
	logger.Debug("engine ready", "seed", flagSeed, "pieces", cat.Len())
	return e, nil
}

func (e *engine) options(progress int) grid.Options {
	return grid.Options{
		Rules:     e.cfg.RulesAt(progress),
		Catalog:   e.catalog,
		Random:    e.streams,
		Presenter: presentation.Emitter{Sink: presentation.Fanout{e.recorder, presentation.LogSink{Logger: logger}}},
		Tutorial:  e.tutorial,
		Logger:    logger.WithPrefix("grid"),
	}
}

// empty returns a grid without topology, ready for Load.
func (e *engine) empty() *grid.Grid {
	return grid.New(e.options(0))
}

// build creates a filled grid from a level file or a layout name. An empty
// layout falls back to the configured one; dim 0 to the configured dimension.
func (e *engine) build(levelID, layoutName string, dim int, walls bool, progress int) (*grid.Grid, error) {
	if levelID != "" {
		lvl, err := levels.NewLoader(flagLevels).LoadByID(levelID)
		if err != nil {
			return nil, err
		}
		return lvl.Build(e.catalog, e.options(progress))
	}

	layout, err := e.cfg.Layout()
	if err != nil {
		return nil, err
	}
	if layoutName != "" {
		if layout, err = grid.ParseLayout(layoutName); err != nil {
			return nil, err
		}
	}
	if dim == 0 {
		dim = e.cfg.Grid.Dimension
	}

	g := grid.New(e.options(progress))
	g.SetLayout(dim, layout, grid.Alignment{}, walls)
	g.Create()
	return g, nil
}

// restoreTutorial loads saved tutorial progress; the grid only hints powers
// the player has not seen.
func (e *engine) restoreTutorial(store *storage.Store) {
	ids, err := store.TutorialShown()
	if err != nil {
		logger.Warn("could not read tutorial progress", "error", err)
		return
	}
	e.tutorial.MarkShown(ids...)
}

func (e *engine) saveTutorial(store *storage.Store) {
	if err := store.MarkTutorial(e.tutorial.ShownIDs()); err != nil {
		logger.Warn("could not save tutorial progress", "error", err)
	}
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening saves database: %w", err)
	}
	return store, nil
}
