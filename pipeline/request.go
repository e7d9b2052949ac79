package pipeline

import (
	"postagger.com/hpt/types"
	"encoding/json"
	jsonpatch "github.com/evanphx/json-patch"
)

type Request struct {
	Tid       string          `json:"tid"`
	Lang      string          `json:"lang,omitempty"`
	Overrides json.RawMessage `json:"request_params,omitempty"`
}

// applyOverrides merge-patches request-level parameters over the
// configuration's defaults, so a request can switch algorithm without a
// new configuration file.
func applyOverrides(base types.RequestParams, patch json.RawMessage) (types.RequestParams, error) {
	if len(patch) == 0 {
		return base, nil
	}

	buf, err := json.Marshal(base)
	if err != nil {
		return base, err
	}
	merged, err := jsonpatch.MergePatch(buf, patch)
	if err != nil {
		return base, err
	}

	var params types.RequestParams
	if err := json.Unmarshal(merged, &params); err != nil {
		return base, err
	}
	if params.Algorithm != "" {
		algo, err := types.ParseAlgorithm(params.Algorithm)
		if err != nil {
			return base, err
		}
		params.Algorithm = algo
	}
	return params, nil
}
