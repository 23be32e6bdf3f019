package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	auctionservice "stockyard/contexts/marketplace/auction-service"
	auctionqueries "stockyard/contexts/marketplace/auction-service/application/queries"
	auctionhttp "stockyard/contexts/marketplace/auction-service/transport/http"
	listingservice "stockyard/contexts/marketplace/listing-service"
	listingqueries "stockyard/contexts/marketplace/listing-service/application/queries"
	listinghttp "stockyard/contexts/marketplace/listing-service/transport/http"
	"stockyard/internal/shared/tenancy"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "stockyard/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	auth     *Authenticator
	listings listingservice.Module
	auctions auctionservice.Module
}

func New(
	listings listingservice.Module,
	auctions auctionservice.Module,
	auth *Authenticator,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		auth:     auth,
		listings: listings,
		auctions: auctions,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/listings", s.handleCreateListing)
	s.mux.HandleFunc("GET /v1/listings", s.handleBrowseListings)
	s.mux.HandleFunc("GET /v1/listings/{listing_id}", s.handleGetListing)
	s.mux.HandleFunc("PUT /v1/listings/{listing_id}", s.handleUpdateListing)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/deactivate", s.handleDeactivateListing)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/submit-for-review", s.handleSubmitForReview)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/documents", s.handleRecordDocument)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/approve", s.handleApproveListing)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/reject", s.handleRejectListing)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/suspend", s.handleSuspendListing)
	s.mux.HandleFunc("GET /v1/sellers/{seller_id}/listings", s.handleMyListings)
	s.mux.HandleFunc("GET /v1/tenant/listings", s.handleTenantListings)
	s.mux.HandleFunc("GET /v1/admin/listings", s.handleAllListings)

	s.mux.HandleFunc("POST /v1/auctions", s.handleCreateAuction)
	s.mux.HandleFunc("PUT /v1/auctions/{auction_id}", s.handleUpdateAuction)
	s.mux.HandleFunc("POST /v1/auctions/{auction_id}/open", s.handleOpenAuction)
	s.mux.HandleFunc("POST /v1/auctions/{auction_id}/close", s.handleCloseAuction)
	s.mux.HandleFunc("POST /v1/listings/{listing_id}/bids", s.handlePlaceBid)
	s.mux.HandleFunc("POST /v1/auctions/{auction_id}/bids", s.handlePlaceBidByAuction)
	s.mux.HandleFunc("GET /v1/auctions/{auction_id}/price", s.handleCurrentPrice)
	s.mux.HandleFunc("GET /v1/auctions/{auction_id}/bids", s.handleListBids)
}

func (s *Server) actor(r *http.Request) (tenancy.Actor, bool) {
	identity := s.auth.Identify(r)
	return tenancy.Resolve(identity, s.logger), identity.Authenticated
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req listinghttp.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.listings.Handler.CreateListingHandler(r.Context(), actor, req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleBrowseListings(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	query, err := parseListingsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	resp, err := s.listings.Handler.BrowseListingsHandler(r.Context(), actor, query)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	resp, err := s.listings.Handler.GetListingHandler(r.Context(), actor, r.PathValue("listing_id"))
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req listinghttp.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.listings.Handler.UpdateListingHandler(r.Context(), actor, r.PathValue("listing_id"), req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeactivateListing(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	if err := s.listings.Handler.DeactivateListingHandler(r.Context(), actor, r.PathValue("listing_id")); err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitForReview(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	resp, err := s.listings.Handler.SubmitForReviewHandler(r.Context(), actor, r.PathValue("listing_id"))
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordDocument(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req listinghttp.RecordDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.listings.Handler.RecordDocumentHandler(r.Context(), actor, r.PathValue("listing_id"), req); err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApproveListing(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, s.listings.Handler.ApproveListingHandler)
}

func (s *Server) handleRejectListing(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, s.listings.Handler.RejectListingHandler)
}

func (s *Server) handleSuspendListing(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, s.listings.Handler.SuspendListingHandler)
}

func (s *Server) handleReview(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, actor tenancy.Actor, listingID string, req listinghttp.ReviewListingRequest) error,
) {
	actor, authenticated := s.actor(r)
	var req listinghttp.ReviewListingRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := decide(r.Context(), actor, r.PathValue("listing_id"), req); err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyListings(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	query, err := parseListingsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	resp, err := s.listings.Handler.MyListingsHandler(r.Context(), actor, r.PathValue("seller_id"), query)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTenantListings(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	query, err := parseListingsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	resp, err := s.listings.Handler.TenantListingsHandler(r.Context(), actor, query)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAllListings(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	query, err := parseListingsQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	resp, err := s.listings.Handler.AllListingsHandler(r.Context(), actor, query)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req auctionhttp.CreateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auctions.Handler.CreateAuctionHandler(r.Context(), actor, req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateAuction(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req auctionhttp.UpdateAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auctions.Handler.UpdateAuctionHandler(r.Context(), actor, r.PathValue("auction_id"), req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenAuction(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	resp, err := s.auctions.Handler.OpenAuctionHandler(r.Context(), actor, r.PathValue("auction_id"))
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseAuction(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	resp, err := s.auctions.Handler.CloseAuctionHandler(r.Context(), actor, r.PathValue("auction_id"))
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req auctionhttp.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auctions.Handler.PlaceBidHandler(r.Context(), actor, r.PathValue("listing_id"), req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePlaceBidByAuction(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	var req auctionhttp.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auctions.Handler.PlaceBidByAuctionHandler(r.Context(), actor, r.PathValue("auction_id"), req)
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	resp, err := s.auctions.Handler.CurrentPriceHandler(r.Context(), actor, r.PathValue("auction_id"))
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBids(w http.ResponseWriter, r *http.Request) {
	actor, authenticated := s.actor(r)
	skip, take, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	resp, err := s.auctions.Handler.ListBidsHandler(r.Context(), actor, auctionqueries.ListBidsQuery{
		AuctionID: r.PathValue("auction_id"),
		Skip:      skip,
		Take:      take,
	})
	if err != nil {
		writeDomainError(w, authenticated, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseListingsQuery(r *http.Request) (listingqueries.ListingsQuery, error) {
	skip, take, err := parsePage(r)
	if err != nil {
		return listingqueries.ListingsQuery{}, err
	}
	values := r.URL.Query()
	return listingqueries.ListingsQuery{
		AnimalClass: values.Get("animal_class"),
		SpeciesID:   values.Get("species_id"),
		Status:      values.Get("status"),
		ActiveOnly:  values.Get("active_only") == "true",
		Skip:        skip,
		Take:        take,
	}, nil
}

func parsePage(r *http.Request) (int, int, error) {
	values := r.URL.Query()
	skip, err := parseIntParam(values.Get("skip"))
	if err != nil {
		return 0, 0, err
	}
	take, err := parseIntParam(values.Get("take"))
	if err != nil {
		return 0, 0, err
	}
	return skip, take, nil
}

func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
