package services

import (
	"fmt"
	"strings"
)

// Chain is an EVM network a post can be published to
type Chain struct {
	ID       string `json:"chainId"`
	Name     string `json:"name"`
	Explorer string `json:"explorer"`
}

var supportedChains = []Chain{
	{ID: "1", Name: "Ethereum", Explorer: "https://etherscan.io"},
	{ID: "8453", Name: "Base", Explorer: "https://basescan.org"},
	{ID: "56", Name: "BNB Smart Chain", Explorer: "https://bscscan.com"},
	{ID: "137", Name: "Polygon", Explorer: "https://polygonscan.com"},
	{ID: "42161", Name: "Arbitrum One", Explorer: "https://arbiscan.io"},
	{ID: "10", Name: "Optimism", Explorer: "https://optimistic.etherscan.io"},
}

// SupportedChains lists the networks publishing is simulated for
func SupportedChains() []Chain {
	out := make([]Chain, len(supportedChains))
	copy(out, supportedChains)
	return out
}

func LookupChain(id string) (Chain, bool) {
	id = strings.TrimSpace(id)
	for _, c := range supportedChains {
		if c.ID == id {
			return c, true
		}
	}
	return Chain{}, false
}

// ParseChainIDs splits a comma separated list of chain ids, dropping blanks and repeats
func ParseChainIDs(csv string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// BuildExplorerURL links a transaction hash on the chain's block explorer
func BuildExplorerURL(chain Chain, txHash string) string {
	if chain.Explorer == "" || txHash == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimSuffix(chain.Explorer, "/"), txHash)
}

// Slugify turns a display name into a lowercase hyphenated slug.
// Letters and digits are kept; every other run of characters becomes one hyphen.
func Slugify(name string) string {
	var result strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && result.Len() > 0 {
				result.WriteByte('-')
			}
			pendingHyphen = false
			result.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return result.String()
}
