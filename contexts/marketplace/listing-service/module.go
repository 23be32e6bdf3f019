package listingservice

import (
	"log/slog"

	httpadapter "stockyard/contexts/marketplace/listing-service/adapters/http"
	"stockyard/contexts/marketplace/listing-service/adapters/memory"
	"stockyard/contexts/marketplace/listing-service/application/commands"
	"stockyard/contexts/marketplace/listing-service/application/queries"
	"stockyard/contexts/marketplace/listing-service/domain/entities"
	"stockyard/contexts/marketplace/listing-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Documents  ports.DocumentRepository
	Outbox     ports.OutboxRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createListing := commands.CreateListingUseCase{
		Repository: deps.Repository,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	updateListing := commands.UpdateListingUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	submitForReview := commands.SubmitForReviewUseCase{
		Repository: deps.Repository,
		Documents:  deps.Documents,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	reviewListing := commands.ReviewListingUseCase{
		Repository: deps.Repository,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	recordDocument := commands.RecordDocumentUseCase{
		Repository: deps.Repository,
		Documents:  deps.Documents,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateListing:   createListing,
			UpdateListing:   updateListing,
			SubmitForReview: submitForReview,
			ReviewListing:   reviewListing,
			RecordDocument:  recordDocument,
			Queries:         queryUseCase,
			Logger:          deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Listing, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Documents:  store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
