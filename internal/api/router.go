package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"spw/internal/campaign"
	"spw/internal/handler"
	"spw/internal/wallet"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletService *wallet.Service, campaignService *campaign.Service) http.Handler {
	walletHandler := handler.NewWalletHandler(walletService)
	campaignHandler := handler.NewCampaignHandler(campaignService, walletService)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/connect-readonly", walletHandler.ConnectReadOnly)
	mux.HandleFunc("/wallet/unlock", walletHandler.Unlock)
	mux.HandleFunc("/wallet/lock", walletHandler.Lock)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/info", walletHandler.Info)
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/fund", walletHandler.Fund)

	// Campaign endpoints
	mux.HandleFunc("/campaign", campaignHandler.Get)
	mux.HandleFunc("/campaign/list", campaignHandler.List)
	mux.HandleFunc("/campaign/create", campaignHandler.Create)
	mux.HandleFunc("/campaign/pledge", campaignHandler.Pledge)
	mux.HandleFunc("/campaign/claim", campaignHandler.Claim)
	mux.HandleFunc("/campaign/refund", campaignHandler.Refund)

	return mux
}
