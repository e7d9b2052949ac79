package main

import (
	"postagger.com/hpt/api"
	"postagger.com/hpt/corpus"
	"postagger.com/hpt/logger"
	"postagger.com/hpt/pipeline"
	"postagger.com/hpt/s3client"
	"postagger.com/hpt/types"
	"postagger.com/hpt/worker"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

type Config struct {
	ConfigPath       string `envconfig:"HPT_CONFIG_PATH" required:"true"`
	TreebankDir      string `envconfig:"HPT_TREEBANK_DIR" required:"true"`
	TreebankS3Prefix string `envconfig:"HPT_TREEBANK_S3_PREFIX" default:""`
	RestAPIActive    bool   `envconfig:"HPT_REST_API_ACTIVE" default:"false"`
	RestAPIPort      string `envconfig:"HPT_REST_API_PORT" default:"10000"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	hptLogger := logger.NewLogger("Main")
	fatalErrLogger := hptLogger.Fatal().Caller()
	fetchOnly := flag.Bool("fetch-treebanks", false, "a bool")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	// fetch treebanks from storage and exit
	if *fetchOnly {
		cfgs, err := types.LoadConfigurations(config.ConfigPath)
		if err != nil {
			hptLogger.Err(err).Msg("Failed to load configurations")
			return
		}
		if err = fetchTreebanks(config, cfgs, &hptLogger); err != nil {
			fatalErrLogger.Err(err).Msg("Failed to fetch treebanks")
			os.Exit(1)
		}
		hptLogger.Info().Msg("Treebanks fetched. Exit...")
		return
	}

	//Load Pipeline
	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				hptLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			hptLogger.Info().Msgf("Loaded %d configurations", len(cfgs))

			if config.TreebankS3Prefix != "" {
				if err = fetchTreebanks(config, cfgs, &hptLogger); err != nil {
					hptLogger.Err(err).Msg("Failed to fetch treebanks. Retrying in 5 sec")
					time.Sleep(5 * time.Second)
					continue
				}
			}

			hptLogger.Info().Msg("Starting tagger loading")
			pipelineParams := pipeline.GetDefaultTaggerParams(config.TreebankDir, cfgs)
			ppln, err := pipeline.Tagger(pipelineParams)
			if err != nil {
				hptLogger.Err(err).Msg("Failed to start tagger pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			hptLogger.Info().Msg("Tagger models fitted")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	if config.RestAPIActive {
		go func() {
			hptLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			hptLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	hptLogger.Info().Msg("Start HPT Worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			hptLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			hptLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// fetchTreebanks downloads each configured language's train and test
// splits into the local treebank dir, skipping files already present.
func fetchTreebanks(config Config, cfgs []types.Configuration, hptLogger *zerolog.Logger) error {
	client, err := s3client.New()
	if err != nil {
		return err
	}
	defer client.Close()

	if err = os.MkdirAll(config.TreebankDir, 0o755); err != nil {
		return err
	}
	for _, cfg := range cfgs {
		tb := corpus.Treebank{Dir: config.TreebankDir, Lang: cfg.Lang}
		for _, localPath := range []string{tb.TrainPath(), tb.TestPath()} {
			if _, err := os.Stat(localPath); err == nil {
				continue
			}
			key := path.Join(config.TreebankS3Prefix, filepath.Base(localPath))
			hptLogger.Info().Msgf("Downloading %s", key)
			data, err := client.Download(key)
			if err != nil {
				return err
			}
			if err = os.WriteFile(localPath, data, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
