package advisor

import (
	"fmt"

	"github.com/ArowuTest/gaspay-backend/internal/models"
)

// FallbackTips are served whenever tips cannot be generated
func FallbackTips() []models.FuelSavingTip {
	return []models.FuelSavingTip{
		{Tip: "Check Tire Pressure", Explanation: "Properly inflated tires can improve gas mileage by up to 3%. Check them monthly."},
		{Tip: "Avoid Aggressive Driving", Explanation: "Rapid acceleration and braking can lower gas mileage by 15-30% at highway speeds."},
		{Tip: "Reduce Idle Time", Explanation: "An idling car gets 0 miles per gallon. Turn off your engine if you're waiting for more than a minute."},
	}
}

// knownStations are the Accra stations served in mock mode
var knownStations = []struct {
	name string
	at   models.Coordinate
}{
	{"Goil Osu", models.Coordinate{Lat: 5.556, Lng: -0.183}},
	{"Shell Airport", models.Coordinate{Lat: 5.603, Lng: -0.180}},
	{"Total East Legon", models.Coordinate{Lat: 5.637, Lng: -0.166}},
	{"Allied Oil Madina", models.Coordinate{Lat: 5.679, Lng: -0.169}},
}

// StationNames lists the mock station names
func StationNames() []string {
	names := make([]string, len(knownStations))
	for i, s := range knownStations {
		names[i] = s.name
	}
	return names
}

func mockTips() []models.FuelSavingTip {
	return FallbackTips()
}

func mockStations() []models.GasStation {
	stations := make([]models.GasStation, len(knownStations))
	for i, s := range knownStations {
		stations[i] = models.GasStation{
			Name:    s.name,
			MapLink: fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%.3f,%.3f", s.at.Lat, s.at.Lng),
		}
	}
	return stations
}
