package api

import (
	"postagger.com/hpt/pipeline"
	"encoding/json"
	"io/ioutil"
	"net/http"
)

type Request struct {
	Pipeline pipeline.Pipeline
}

// ProcessData accepts a JSON tagging request ({"lang": ...,
// "request_params": {"algorithm": ...}}) and responds with the
// evaluation report for the matching configurations.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != "POST" {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{Tid: "test_api"}
	if len(msg) > 0 {
		if err := json.Unmarshal(msg, &request); err != nil {
			logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not parse request body")
			http.Error(w, "", http.StatusBadRequest)
			return
		}
		request.Tid = "test_api"
	}

	logger.Info().Str("tid", request.Tid).Str("lang", request.Lang).Msg("Starting pipeline for request from API")
	resp := <-req.Pipeline(request)
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}
