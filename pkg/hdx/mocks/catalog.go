// Package mocks provides test doubles for the hdx catalog client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	hdx "github.com/b-j-mills/pcoding-investigating/pkg/hdx"
)

// MockCatalog is a mock type for the Catalog interface.
type MockCatalog struct {
	mock.Mock
}

// SearchDatasets provides a mock function with given fields: ctx, filterQuery
func (_m *MockCatalog) SearchDatasets(ctx context.Context, filterQuery string) ([]hdx.Dataset, error) {
	ret := _m.Called(ctx, filterQuery)

	if len(ret) == 0 {
		panic("no return value specified for SearchDatasets")
	}

	var r0 []hdx.Dataset
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]hdx.Dataset, error)); ok {
		return rf(ctx, filterQuery)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []hdx.Dataset); ok {
		r0 = rf(ctx, filterQuery)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]hdx.Dataset)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, filterQuery)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DownloadResource provides a mock function with given fields: ctx, res, destDir
func (_m *MockCatalog) DownloadResource(ctx context.Context, res hdx.Resource, destDir string) (string, error) {
	ret := _m.Called(ctx, res, destDir)

	if len(ret) == 0 {
		panic("no return value specified for DownloadResource")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, hdx.Resource, string) (string, error)); ok {
		return rf(ctx, res, destDir)
	}
	if rf, ok := ret.Get(0).(func(context.Context, hdx.Resource, string) string); ok {
		r0 = rf(ctx, res, destDir)
	} else {
		r0 = ret.String(0)
	}

	if rf, ok := ret.Get(1).(func(context.Context, hdx.Resource, string) error); ok {
		r1 = rf(ctx, res, destDir)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockCatalog creates a new instance of MockCatalog.
func NewMockCatalog(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalog {
	m := &MockCatalog{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
