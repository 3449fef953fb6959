package api

import (
	"context"
)

type keyType string

const walletAddressKey keyType = "walletAddress"

// ctxWithWalletAddress adds the connected wallet to the context
func ctxWithWalletAddress(ctx context.Context, wallet string) context.Context {
	return context.WithValue(ctx, walletAddressKey, wallet)
}

// ctxGetWalletAddress returns the connected wallet, empty when none was sent
func ctxGetWalletAddress(ctx context.Context) string {
	wallet, _ := ctx.Value(walletAddressKey).(string)
	return wallet
}
