package externalapis

import (
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReadRequestResponse: quick utility for decoding an api response to a struct
func ReadRequestResponse(resp *http.Response, out interface{}) error {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad resp from upstream: %d - %s", resp.StatusCode, b)
	}

	if err = json.Unmarshal(b, out); err != nil {
		return err
	}

	return nil
}
