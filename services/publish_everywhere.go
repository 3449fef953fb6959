package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/metrics"
	"github.com/rpupo63/chainblog-backend/models"
)

// Publication is the outcome of publishing a post to one chain
type Publication struct {
	ChainID         string `json:"chainId"`
	ChainName       string `json:"chainName,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`
	ExplorerURL     string `json:"explorerUrl,omitempty"`
	Error           string `json:"error,omitempty"`
}

func (p Publication) Succeeded() bool {
	return p.Error == ""
}

// TransactionHash derives the deterministic Keccak-256 hash that stands in for
// the on-chain transaction of post on chainID
func TransactionHash(chainID string, post models.BlogPost) string {
	h := sha3.NewLegacyKeccak256()
	for _, part := range []string{
		chainID,
		post.Author,
		post.Title,
		post.Content,
		post.CreatedAt.UTC().Format(time.RFC3339Nano),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// PublishEverywhere simulates publishing post to every chain in chainIDs.
// Repeated ids are published once. Each chain is attempted even when others fail;
// the publications are returned in request order together with a combined error
// naming the failed chains.
func PublishEverywhere(ctx context.Context, post models.BlogPost, chainIDs []string) ([]Publication, error) {
	chainIDs = ParseChainIDs(strings.Join(chainIDs, ","))
	publications := make([]Publication, len(chainIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range chainIDs {
		g.Go(func() error {
			publications[i] = publishToChain(gctx, post, id)
			return nil
		})
	}
	_ = g.Wait()

	var failures []string
	var successes []string
	for _, p := range publications {
		if p.Succeeded() {
			successes = append(successes, p.ChainName)
			metrics.ChainPublications.WithLabelValues(p.ChainID, "ok").Inc()
			continue
		}
		failures = append(failures, fmt.Sprintf("%s: %s", p.ChainID, p.Error))
		metrics.ChainPublications.WithLabelValues(p.ChainID, "error").Inc()
	}

	if len(successes) > 0 {
		log.Info().Str("postId", post.ID).Strs("chains", successes).Msg("Published post to chains")
	}
	if len(failures) > 0 {
		err := errs.NewPartialFailureError("publishing", failures)
		log.Error().Err(err).Str("postId", post.ID).Msg("Chain publishing incomplete")
		return publications, err
	}
	return publications, nil
}

func publishToChain(ctx context.Context, post models.BlogPost, chainID string) Publication {
	chain, ok := LookupChain(chainID)
	if !ok {
		return Publication{ChainID: chainID, Error: "unsupported chain"}
	}
	if err := ctx.Err(); err != nil {
		return Publication{ChainID: chain.ID, ChainName: chain.Name, Error: err.Error()}
	}
	hash := TransactionHash(chain.ID, post)
	return Publication{
		ChainID:         chain.ID,
		ChainName:       chain.Name,
		TransactionHash: hash,
		ExplorerURL:     BuildExplorerURL(chain, hash),
	}
}
