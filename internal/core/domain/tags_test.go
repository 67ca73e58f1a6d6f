package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/ledgerline/internal/core/domain"
)

func TestIsKnownTag(t *testing.T) {
	assert.True(t, domain.IsKnownTag(domain.TagAsset))
	assert.True(t, domain.IsKnownTag(domain.TagBalanceSheetEquity))
	assert.True(t, domain.IsKnownTag(domain.TagCashFlowOperating))
	assert.False(t, domain.IsKnownTag("asset"))
	assert.False(t, domain.IsKnownTag("Made Up"))
	assert.False(t, domain.IsKnownTag(""))
}

func TestBalanceSheetClassification(t *testing.T) {
	classification, category, ok := domain.BalanceSheetClassification(domain.TagBalanceSheetCurrentAsset)
	assert.True(t, ok)
	assert.Equal(t, "Assets", classification)
	assert.Equal(t, "Current Assets", category)

	classification, category, ok = domain.BalanceSheetClassification(domain.TagBalanceSheetNonCurrentLiability)
	assert.True(t, ok)
	assert.Equal(t, "Liabilities", classification)
	assert.Equal(t, "Non-Current Liabilities", category)

	// Type tags are not balance sheet placements.
	_, _, ok = domain.BalanceSheetClassification(domain.TagAsset)
	assert.False(t, ok)
}
