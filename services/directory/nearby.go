package directory

import (
	"math"
	"sort"
	"sync"

	"lexmap/models"
)

const (
	maxLocationPoints = 45.0
	maxRatingPoints   = 15.0
	onlineBonus       = 20.0
	maxNearbyResults  = 20
)

// NearbyProviders ranks providers around a center point by proximity, rating
// and current availability. Providers beyond maxDistanceKm are excluded.
// An empty result is a valid answer, not an error.
func (c *Catalog) NearbyProviders(center models.GeoPoint, maxDistanceKm float64) []models.ProviderDTO {
	if !center.Valid() {
		return []models.ProviderDTO{}
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = 5
	}

	providers := c.Providers()
	if len(providers) == 0 {
		return []models.ProviderDTO{}
	}

	type scoreData struct {
		Provider   models.Provider
		TotalScore float64
		DistanceKm float64
	}

	computeLocationScore := func(distanceKm float64) float64 {
		if distanceKm >= maxDistanceKm {
			return 0
		}
		return maxLocationPoints * (1 - distanceKm/maxDistanceKm)
	}
	computeRatingScore := func(rating float64) float64 {
		if rating > 5 {
			rating = 5
		}
		return (rating / 5) * maxRatingPoints
	}

	resultsCh := make(chan scoreData, len(providers))
	var wg sync.WaitGroup

	for _, p := range providers {
		wg.Add(1)
		go func(p models.Provider) {
			defer wg.Done()
			distanceKm := haversine(center.Lat(), center.Lng(), p.LocationGeo.Lat(), p.LocationGeo.Lng())
			if distanceKm > maxDistanceKm {
				return
			}
			total := computeLocationScore(distanceKm) + computeRatingScore(p.Rating)
			if p.Status == models.ProviderOnline {
				total += onlineBonus
			}
			resultsCh <- scoreData{Provider: p, TotalScore: total, DistanceKm: distanceKm}
		}(p)
	}

	wg.Wait()
	close(resultsCh)

	var scores []scoreData
	for s := range resultsCh {
		scores = append(scores, s)
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].Provider.ID < scores[j].Provider.ID
	})

	dtos := make([]models.ProviderDTO, 0, len(scores))
	for i, sd := range scores {
		dto := sd.Provider.DTO()
		// Convert km to metres.
		dto.Proximity = sd.DistanceKm * 1000
		dto.Preferred = i == 0
		dtos = append(dtos, dto)
	}
	if len(dtos) > maxNearbyResults {
		dtos = dtos[:maxNearbyResults]
	}
	return dtos
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
