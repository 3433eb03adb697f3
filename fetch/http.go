package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var httpClient = &http.Client{
	Timeout: 60 * time.Minute,
}

// get performs a GET request. Every status other than 200 is an error, in which case the body is already closed.
func get(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to create request for %s", url)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to request %s", url)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, errors.Errorf("Request to %s failed with status %s", url, response.Status)
	}

	return response, nil
}
