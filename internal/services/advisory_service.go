package services

import (
	"context"
	"math"
	"strconv"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/pkg/advisor"
	log "github.com/sirupsen/logrus"
)

// DefaultLocation is used when the client cannot share its position
var DefaultLocation = models.Coordinate{Lat: 5.6037, Lng: -0.1870}

// Advisor generates tips and finds stations
type Advisor interface {
	FuelTips(ctx context.Context, transactions []models.Transaction) ([]models.FuelSavingTip, error)
	NearbyStations(ctx context.Context, coord models.Coordinate) ([]models.GasStation, error)
}

// AdvisoryService serves fuel-saving tips and nearby stations. Advisor
// failures never reach the caller: tips fall back to a fixed set and
// stations to an empty list.
type AdvisoryService struct {
	advisor  Advisor
	accounts *Accounts
}

// NewAdvisoryService creates a new AdvisoryService
func NewAdvisoryService(advisor Advisor, accounts *Accounts) *AdvisoryService {
	return &AdvisoryService{advisor: advisor, accounts: accounts}
}

// Tips returns three fuel-saving tips for the account's recent purchases
func (s *AdvisoryService) Tips(ctx context.Context, msisdn string) ([]models.FuelSavingTip, error) {
	transactions, err := s.accounts.repo.GetTransactions(ctx, msisdn)
	if err != nil {
		return nil, err
	}

	tips, err := s.advisor.FuelTips(ctx, transactions)
	if err != nil {
		log.WithField("msisdn", msisdn).WithError(err).Warn("fuel tips unavailable, serving fallback")
		return advisor.FallbackTips(), nil
	}
	if len(tips) == 0 {
		return advisor.FallbackTips(), nil
	}
	return tips, nil
}

// Stations returns stations near coord
func (s *AdvisoryService) Stations(ctx context.Context, coord models.Coordinate) []models.GasStation {
	stations, err := s.advisor.NearbyStations(ctx, coord)
	if err != nil {
		log.WithFields(log.Fields{"lat": coord.Lat, "lng": coord.Lng}).WithError(err).Warn("nearby stations unavailable")
		return []models.GasStation{}
	}
	if stations == nil {
		return []models.GasStation{}
	}
	return stations
}

// ResolveLocation parses a client-supplied position. Missing or invalid
// values, as when location permission was denied, yield DefaultLocation.
func ResolveLocation(lat, lng string) models.Coordinate {
	la, errLat := strconv.ParseFloat(lat, 64)
	ln, errLng := strconv.ParseFloat(lng, 64)
	if errLat != nil || errLng != nil || math.IsNaN(la) || math.IsNaN(ln) ||
		math.Abs(la) > 90 || math.Abs(ln) > 180 {
		return DefaultLocation
	}
	return models.Coordinate{Lat: la, Lng: ln}
}
