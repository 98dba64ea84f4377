// Copyright (c) 2026 Dentora. All rights reserved.
// Author: dev@dentora.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dentora/dentora/pkg/pagination"
)

/*
TestFromRequest covers query parsing and the clamping of invalid values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero_page_clamped", "page=0", 1, 10},
		{"negative_limit_clamped", "limit=-5", 1, 10},
		{"excessive_limit_clamped", "limit=500", 1, 10},
		{"max_limit_allowed", "limit=100", 1, 100},
		{"non_numeric_falls_back", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 3, Limit: 25}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

/*
TestNewMeta verifies the total-pages rounding.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		limit, total   int
		wantTotalPages int
	}{
		{"exact_division", 10, 100, 10},
		{"rounds_up", 10, 101, 11},
		{"partial_page", 10, 5, 1},
		{"empty", 10, 0, 0},
		{"zero_limit", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
