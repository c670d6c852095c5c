// pledged serves the StellarPledge wallet and campaign API over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"

	"spw/internal/api"
	"spw/internal/campaign"
	"spw/internal/client"
	"spw/internal/config"
	"spw/internal/contract"
	"spw/internal/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	logger := log.NewLogger(os.Stderr)

	store, err := wallet.NewFileStore(config.GetWalletFilePath())
	if err != nil {
		return err
	}

	sorobanClient := client.NewSorobanClient(config.GetRPCURL())
	horizonClient := client.NewHorizonClient(config.GetHorizonURL(), config.GetFriendbotURL())

	walletService := wallet.NewService(store, horizonClient, config.GetNetworkPassphrase(), logger)

	// Resume a previously stored wallet in the locked state.
	if info, err := walletService.LoadStored(); err == nil {
		logger.Info("stored wallet loaded", "publicKey", info.PublicKey, "needsUnlock", info.IsLocked)
	} else if !errors.Is(err, wallet.ErrNoWallet) {
		return err
	}

	orchestrator := contract.NewOrchestrator(sorobanClient, walletService, contract.Options{
		ContractAddress: config.GetContractAddress(),
		TxValidity:      time.Duration(config.GetTxTimeoutSeconds()) * time.Second,
		PollInterval:    time.Duration(config.GetPollIntervalMs()) * time.Millisecond,
	}, logger)

	campaignService, err := campaign.NewService(orchestrator, config.GetMinorUnitScale(), config.GetNativeAssetContract(), logger)
	if err != nil {
		return err
	}

	// The RPC node may still be starting; transient faults here are
	// exactly what the backoff helper is for.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := contract.Retry(ctx, contract.DefaultBackoff(), sorobanClient.GetHealth); err != nil {
		return fmt.Errorf("soroban rpc is not healthy: %w", err)
	}

	router := api.SetupRouter(walletService, campaignService)

	addr := ":" + config.GetPort()
	logger.Info("server listening", "addr", addr, "contract", config.GetContractAddress())
	return http.ListenAndServe(addr, router)
}
