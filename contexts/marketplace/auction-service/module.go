package auctionservice

import (
	"log/slog"

	httpadapter "stockyard/contexts/marketplace/auction-service/adapters/http"
	"stockyard/contexts/marketplace/auction-service/adapters/memory"
	"stockyard/contexts/marketplace/auction-service/application/commands"
	"stockyard/contexts/marketplace/auction-service/application/queries"
	"stockyard/contexts/marketplace/auction-service/domain/services"
	"stockyard/contexts/marketplace/auction-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Auctions ports.AuctionRepository
	Bids     ports.BidRepository
	Listings ports.ListingReader
	Outbox   ports.OutboxRepository
	Cache    ports.PriceCache
	Policy   services.BidPolicy
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createAuction := commands.CreateAuctionUseCase{
		Auctions: deps.Auctions,
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	updateAuction := commands.UpdateAuctionUseCase{
		Auctions: deps.Auctions,
		Listings: deps.Listings,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	openAuction := commands.OpenAuctionUseCase{
		Auctions: deps.Auctions,
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	closeAuction := commands.CloseAuctionUseCase{
		Auctions: deps.Auctions,
		Bids:     deps.Bids,
		Outbox:   deps.Outbox,
		Cache:    deps.Cache,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	placeBid := commands.PlaceBidUseCase{
		Auctions: deps.Auctions,
		Bids:     deps.Bids,
		Listings: deps.Listings,
		Outbox:   deps.Outbox,
		Cache:    deps.Cache,
		Policy:   deps.Policy,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	currentPrice := queries.CurrentPriceUseCase{
		Auctions: deps.Auctions,
		Bids:     deps.Bids,
		Cache:    deps.Cache,
		Logger:   deps.Logger,
	}
	listBids := queries.ListBidsUseCase{
		Auctions: deps.Auctions,
		Bids:     deps.Bids,
		Listings: deps.Listings,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateAuction: createAuction,
			UpdateAuction: updateAuction,
			OpenAuction:   openAuction,
			CloseAuction:  closeAuction,
			PlaceBid:      placeBid,
			CurrentPrice:  currentPrice,
			ListBids:      listBids,
			Logger:        deps.Logger,
		},
	}
}

func NewInMemoryModule(listings []ports.ListingView, policy services.BidPolicy, logger *slog.Logger) Module {
	store := memory.NewStore(listings)
	module := NewModule(Dependencies{
		Auctions: store,
		Bids:     store,
		Listings: store,
		Outbox:   store,
		Cache:    store,
		Policy:   policy,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
