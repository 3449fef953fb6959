package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "DeFi", "defi"},
		{"spaces", "Layer 2 Scaling", "layer-2-scaling"},
		{"punctuation runs", "  NFTs & Digital -- Art! ", "nfts-digital-art"},
		{"non ascii dropped", "Café Web3", "caf-web3"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestParseChainIDs(t *testing.T) {
	assert.Equal(t, []string{"1", "8453", "56"}, ParseChainIDs(" 1,8453,,1, 56 "))
	assert.Nil(t, ParseChainIDs(""))
}

func TestLookupChainAndExplorerURL(t *testing.T) {
	chain, ok := LookupChain("10")
	require.True(t, ok)
	assert.Equal(t, "Optimism", chain.Name)
	assert.Equal(t, "https://optimistic.etherscan.io/tx/0xabc", BuildExplorerURL(chain, "0xabc"))

	_, ok = LookupChain("999")
	assert.False(t, ok)
	assert.Empty(t, BuildExplorerURL(Chain{}, "0xabc"))
	assert.Len(t, SupportedChains(), 6)
}

func samplePost() models.BlogPost {
	return models.BlogPost{
		ID:        "post-1",
		Title:     "Rollups explained",
		Content:   "Optimistic and zero knowledge rollups",
		Author:    "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6",
		ChainID:   "1",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionHashIsDeterministic(t *testing.T) {
	post := samplePost()

	first := TransactionHash("1", post)
	assert.Equal(t, first, TransactionHash("1", post))
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, first)
	assert.NotEqual(t, first, TransactionHash("8453", post))

	post.Title = "Rollups explained again"
	assert.NotEqual(t, first, TransactionHash("1", post))
}

func TestPublishEverywhere(t *testing.T) {
	post := samplePost()

	publications, err := PublishEverywhere(context.Background(), post, []string{"1", "8453", "1"})
	require.NoError(t, err)
	require.Len(t, publications, 2)
	assert.Equal(t, "Ethereum", publications[0].ChainName)
	assert.Equal(t, "Base", publications[1].ChainName)
	assert.Equal(t, TransactionHash("8453", post), publications[1].TransactionHash)
	assert.Contains(t, publications[1].ExplorerURL, "https://basescan.org/tx/0x")
}

func TestPublishEverywhereReportsUnsupportedChains(t *testing.T) {
	publications, err := PublishEverywhere(context.Background(), samplePost(), []string{"137", "31337"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPartialFailure)
	assert.Contains(t, err.Error(), "publishing failed for: 31337: unsupported chain")

	require.Len(t, publications, 2)
	assert.True(t, publications[0].Succeeded())
	assert.False(t, publications[1].Succeeded())
	assert.Equal(t, "unsupported chain", publications[1].Error)
}
