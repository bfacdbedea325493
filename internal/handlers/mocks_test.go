package handlers_test

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/shortlink-go/internal/shortener"
)

var errMock = errors.New("mock error")

const (
	testURL     = "https://www.example.com/very/long/url"
	testBaseURL = "http://localhost:8080"
)

// failingRepo fails every operation, standing in for an unreachable store.
type failingRepo struct{}

func (failingRepo) NextID(_ context.Context) (int64, error) { return 0, errMock }

func (failingRepo) CreateOrGet(_ context.Context, _ *shortener.ShortURL) (*shortener.ShortURL, bool, error) {
	return nil, false, errMock
}

func (failingRepo) GetByCode(_ context.Context, _ shortener.Code) (*shortener.ShortURL, error) {
	return nil, errMock
}

func (failingRepo) RegisterClick(_ context.Context, _ shortener.Code, _ time.Time) error {
	return errMock
}

func (failingRepo) Deactivate(_ context.Context, _ shortener.Code) (bool, error) {
	return false, errMock
}

func (failingRepo) List(_ context.Context, _, _ int) ([]*shortener.ShortURL, int64, error) {
	return nil, 0, errMock
}

func (failingRepo) Analytics(_ context.Context) (*shortener.Analytics, error) {
	return nil, errMock
}

var _ shortener.Repository = failingRepo{}
