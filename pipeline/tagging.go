package pipeline

import (
	"postagger.com/hpt/corpus"
	"postagger.com/hpt/hmm"
	"postagger.com/hpt/logger"
	"postagger.com/hpt/types"
	"encoding/json"
	"sync"
)

// Pipeline runs the configured tagging evaluations for one request and
// delivers the JSON report on the returned channel.
type Pipeline func(request Request) <-chan string

type TaggerParams struct {
	TreebankDir    string                `json:"treebank_dir"`
	Configurations []types.Configuration `json:"configurations"`
	SmoothingBins  float64               `json:"smoothing_bins"`
	DecodeWorkers  int                   `json:"decode_workers"`
}

func GetDefaultTaggerParams(treebankDir string, cfgs []types.Configuration) TaggerParams {
	return TaggerParams{
		TreebankDir:    treebankDir,
		Configurations: cfgs,
		SmoothingBins:  hmm.DefaultBins,
		DecodeWorkers:  4,
	}
}

// taggerRun is one configuration's fitted model plus its gold test
// corpus. The model is never mutated after fitting, so concurrent
// requests share it freely. Finished reports are cached by the merged
// request params' hash.
type taggerRun struct {
	cfg     types.Configuration
	model   *hmm.Model
	gold    []types.Sentence
	workers int

	mu      sync.Mutex
	reports map[uint64]*Report
}

// Tagger fits one HMM per configuration up front, then serves requests
// against the immutable models.
func Tagger(params TaggerParams) (Pipeline, error) {
	hptLogger := logger.NewLogger("Tagger pipeline")
	errLogger := hptLogger.With().Caller().Logger()
	hptLogger.Info().
		Interface("params", params).
		Msg("Starting tagger pipeline (see parameters in 'params' field)")

	runs := make([]*taggerRun, 0, len(params.Configurations))
	for _, cfg := range params.Configurations {
		dir := cfg.Params.HPT.TreebankDir
		if dir == "" {
			dir = params.TreebankDir
		}
		bins := cfg.Params.HPT.SmoothingBins
		if bins <= 0 {
			bins = params.SmoothingBins
		}
		workers := cfg.Params.HPT.DecodeWorkers
		if workers <= 0 {
			workers = params.DecodeWorkers
		}

		tb := corpus.Treebank{Dir: dir, Lang: cfg.Lang}
		train, test, err := tb.Load()
		if err != nil {
			errLogger.Err(err).
				Str("config", cfg.Name).
				Str("treebank_dir", dir).
				Msg("Failed to load treebank")
			return nil, err
		}

		trainSents := corpus.Preprocess(train)
		if len(trainSents) == 0 {
			hptLogger.Warn().
				Str("config", cfg.Name).
				Msg("Training corpus is empty, model degenerates to the smoothing fallback")
		}
		model := hmm.NewModel(trainSents, hmm.Params{Bins: bins})

		runs = append(runs, &taggerRun{
			cfg:     cfg,
			model:   model,
			gold:    corpus.Preprocess(test),
			workers: workers,
			reports: make(map[uint64]*Report),
		})
		hptLogger.Info().
			Str("config", cfg.Name).
			Str("lang", cfg.Lang).
			Int("train_sentences", len(trainSents)).
			Int("test_sentences", len(test)).
			Msg("Fitted HMM")
	}

	return func(request Request) <-chan string {
		responseChan := make(chan string)
		pplnLog := hptLogger.With().Str("tid", request.Tid).Logger()
		pplnLog.Info().Msg("Started tagger pipeline")

		go func() {
			response := make(map[string]*Report)

			for _, run := range runs {
				if request.Lang != "" && run.cfg.Lang != request.Lang {
					continue
				}
				report, err := run.tag(request)
				if err != nil {
					pplnLog.Err(err).
						Str("config_name", run.cfg.Name).
						Msg("Tagging run failed")
					report = &Report{Lang: run.cfg.Lang, Error: err.Error()}
				}
				pplnLog.Info().
					Str("config_name", run.cfg.Name).
					Msg("Finished pipeline for configuration")
				response[run.cfg.Name] = report
			}

			buf, err := json.Marshal(response)
			if err != nil {
				pplnLog.Err(err).Msg("Failed to marshall response")
			}
			pplnLog.Info().Msg("Finished tagger pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}, nil
}
