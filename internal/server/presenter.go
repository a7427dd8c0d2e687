package server

import (
	"strings"

	"motorlot/internal/models"
	"motorlot/internal/repository"
)

// topMakeResponse is the wire shape for a ranked make with its sample
// listings.
type topMakeResponse struct {
	Make         models.Make          `json:"make"`
	ListingCount int64                `json:"listing_count"`
	Listings     []models.CarsListing `json:"listings"`
}

// absoluteMediaURL builds the public URL for a media-root-relative path.
func (s *Server) absoluteMediaURL(relPath string) string {
	origin := strings.TrimSuffix(s.config.PublicOrigin, "/")
	prefix := "/" + strings.Trim(s.config.MediaURL, "/")
	return origin + prefix + "/" + strings.TrimPrefix(relPath, "/")
}

// presentListing rewrites stored image paths into absolute URLs. Rows come
// fresh from the database per request, so mutation is safe.
func (s *Server) presentListing(listing *models.CarsListing) *models.CarsListing {
	for i := range listing.Images {
		listing.Images[i].Path = s.absoluteMediaURL(listing.Images[i].Path)
	}
	return listing
}

func (s *Server) presentListings(listings []models.CarsListing) []models.CarsListing {
	for i := range listings {
		s.presentListing(&listings[i])
	}
	return listings
}

func (s *Server) presentImage(image *models.ListingImage) *models.ListingImage {
	image.Path = s.absoluteMediaURL(image.Path)
	return image
}

func (s *Server) presentTopMakes(tops []repository.TopMake) []topMakeResponse {
	out := make([]topMakeResponse, 0, len(tops))
	for _, t := range tops {
		out = append(out, topMakeResponse{
			Make:         t.Make,
			ListingCount: t.Count,
			Listings:     s.presentListings(t.Listings),
		})
	}
	return out
}
