package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// DownloadFile downloads the resource behind the URL into the destination file.
// It is used to fetch the binary cascade file when it is missing from disk.
func DownloadFile(uri, dest string) error {
	res, err := http.Get(uri)
	if err != nil {
		return fmt.Errorf("unable to download the file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to download the file from URI: %s, status %v", uri, res.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, res.Body); err != nil {
		return fmt.Errorf("unable to copy the response body into the destination file: %w", err)
	}
	return nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
