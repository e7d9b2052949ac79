package pipeline

import (
	"postagger.com/hpt/eval"
	"postagger.com/hpt/hmm"
	"postagger.com/hpt/types"
	"sync"
	"time"
)

type Report struct {
	Lang        string   `json:"lang"`
	Algorithm   string   `json:"algorithm,omitempty"`
	Accuracy    float64  `json:"accuracy"`
	Sentences   int      `json:"sentences"`
	Tokens      int      `json:"tokens"`
	MeanLogProb *float64 `json:"mean_sentence_logprob,omitempty"`
	ElapsedMs   int64    `json:"elapsed_ms"`
	Error       string   `json:"error,omitempty"`
}

func (run *taggerRun) tag(request Request) (*Report, error) {
	params, err := applyOverrides(run.cfg.RequestParams, request.Overrides)
	if err != nil {
		return nil, err
	}

	// model and test corpus are fixed per run, so the merged params
	// fully determine the report; identical requests share one result
	key := params.GetHashCode()
	run.mu.Lock()
	if report, ok := run.reports[key]; ok {
		run.mu.Unlock()
		return report, nil
	}
	run.mu.Unlock()

	algo := params.Algorithm
	if algo == "" {
		algo = types.AlgorithmViterbi
	}

	dec, err := hmm.NewDecoder(algo, run.model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	predicted := decodeAll(dec, run.gold, run.workers)
	accuracy, err := eval.Accuracy(predicted, run.gold)
	if err != nil {
		return nil, err
	}

	tokens := 0
	for _, sent := range run.gold {
		tokens += len(sent)
	}

	report := &Report{
		Lang:      run.cfg.Lang,
		Algorithm: algo,
		Accuracy:  accuracy,
		Sentences: len(run.gold),
		Tokens:    tokens,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if algo == types.AlgorithmForwardBackward {
		mean := meanSequenceLogProb(run.model, run.gold)
		report.MeanLogProb = &mean
	}

	run.mu.Lock()
	run.reports[key] = report
	run.mu.Unlock()
	return report, nil
}

// decodeAll tags every test sentence. Sentences decode independently and
// the model is read-only, so the loop fans out over a bounded worker
// pool with no synchronization beyond the job channel.
func decodeAll(dec hmm.Decoder, sents []types.Sentence, workers int) []types.Sentence {
	out := make([]types.Sentence, len(sents))

	if workers <= 1 || len(sents) < 2 {
		for i, sent := range sents {
			out[i] = dec.Tag(sent)
		}
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = dec.Tag(sents[i])
			}
		}()
	}
	for i := range sents {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// meanSequenceLogProb averages the total sequence log-probability over
// the sentences that carry observations; boundary-only sentences have no
// defined sequence probability and are skipped.
func meanSequenceLogProb(model *hmm.Model, sents []types.Sentence) float64 {
	fb := hmm.NewForwardBackward(model)
	total := 0.0
	scored := 0
	for _, sent := range sents {
		if len(sent.Interior()) == 0 {
			continue
		}
		logProb, _ := fb.SequenceLogProb(sent)
		total += logProb
		scored++
	}
	if scored == 0 {
		return 0
	}
	return total / float64(scored)
}
