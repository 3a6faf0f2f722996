package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMalformedPayload = errors.New("malformed doctor payload")
)

// maxPayloadBytes bounds how much of the remote body is read.
const maxPayloadBytes = 8 << 20

type httpDoctorSource struct {
	url    string
	client *http.Client
}

// NewHTTPDoctorSource reads the doctor list with a single GET to url.
func NewHTTPDoctorSource(url string, timeout time.Duration) domainRepo.DoctorSource {
	return &httpDoctorSource{
		url:    url,
		client: newHTTPClient(timeout),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

func (s *httpDoctorSource) FetchDoctors(ctx context.Context) ([]entity.Doctor, error) {
	payload, err := s.fetchPayload(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDoctors(payload)
}

// fetchPayload returns the raw response body so the cache decorator can store it as-is.
func (s *httpDoctorSource) fetchPayload(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doctor directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return payload, nil
}

func decodeDoctors(payload []byte) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	if err := json.Unmarshal(payload, &doctors); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if doctors == nil {
		// A literal null body is not a doctor array.
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)
	}
	return doctors, nil
}
