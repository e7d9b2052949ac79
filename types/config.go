package types

import (
	"postagger.com/hpt/logger"
	"postagger.com/hpt/utils"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"
)

const (
	AlgorithmEager           = "eager"
	AlgorithmViterbi         = "viterbi"
	AlgorithmForwardBackward = "forward-backward"
)

// ParseAlgorithm accepts an algorithm name or its legacy numeric selector
// (1=eager, 2=viterbi, 3=forward-backward).
func ParseAlgorithm(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", AlgorithmEager:
		return AlgorithmEager, nil
	case "2", AlgorithmViterbi:
		return AlgorithmViterbi, nil
	case "3", AlgorithmForwardBackward, "forward_backward", "fb":
		return AlgorithmForwardBackward, nil
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

type RequestParams struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`
}

func (rParams RequestParams) IsEmpty() bool {
	return len(rParams.Algorithm) == 0
}

func (rParams RequestParams) GetHashCode() uint64 {
	algo := rParams.Algorithm
	if algo == "" {
		algo = AlgorithmViterbi
	}
	return utils.HashString(strings.ToLower(algo))
}

type TaggerConfig struct {
	TreebankDir   string  `yaml:"treebank_dir" json:"treebank_dir"`
	SmoothingBins float64 `yaml:"smoothing_bins" json:"smoothing_bins"`
	DecodeWorkers int     `yaml:"decode_workers" json:"decode_workers"`
}

type ParamsConfig struct {
	HPT TaggerConfig `yaml:"HPT" json:"hpt"`
}

// Configuration describes a single tagging run: which treebank language to
// train and evaluate on, and with which decoding algorithm.
type Configuration struct {
	Name          string        `json:"name"`
	FilePath      string        `json:"file_path"`
	Lang          string        `yaml:"lang" json:"lang"`
	RequestParams RequestParams `yaml:"request_params" json:"request_params"`
	Params        ParamsConfig  `yaml:"params" json:"params"`
}

func LoadConfigurations(dirPath string) ([]Configuration, error) {
	hptLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				hptLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				hptLogger.Err(err)
				return
			}

			if cfg.Lang == "" {
				hptLogger.Error().
					Str("config", cfg.Name).
					Msg("Configuration has no language, skipping")
				return
			}
			if cfg.RequestParams.Algorithm != "" {
				algo, err := ParseAlgorithm(cfg.RequestParams.Algorithm)
				if err != nil {
					hptLogger.Err(err).
						Str("config", cfg.Name).
						Msg("Configuration has bad algorithm, skipping")
					return
				}
				cfg.RequestParams.Algorithm = algo
			}
			configChan <- cfg
		}(f)
	}
	wg.Wait()
	close(configChan)

	configurations := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configurations = append(configurations, cfg)
	}

	if len(configurations) == 0 {
		return nil, errors.New("no valid configurations found in " + dirPath)
	}
	return configurations, nil
}
