package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GeoHint is a coarse, IP-derived location used only for logging and
// regional diagnostics. It is never a substitute for a device-reported
// location; a user who denied the location prompt stays location-less.
type GeoHint struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Country     string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

// geoCache caches geolocation results keyed by IP address.
var geoCache = make(map[string]*GeoHint)
var cacheMutex sync.RWMutex

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	if parsedIP.IsLoopback() {
		return true
	}
	privateIPBlocks := []*net.IPNet{
		{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
		{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
		{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// getGeoHint retrieves geolocation data from ipapi.co and caches the result.
// If the IP is private or the API call fails, it returns a hint with an
// "Unknown" country rather than an error.
func getGeoHint(ip string, logger *zap.Logger) *GeoHint {
	cacheMutex.RLock()
	if geo, exists := geoCache[ip]; exists {
		cacheMutex.RUnlock()
		return geo
	}
	cacheMutex.RUnlock()

	if isPrivateIP(ip) {
		defaultGeo := &GeoHint{IP: ip, Country: "Unknown"}
		cacheMutex.Lock()
		geoCache[ip] = defaultGeo
		cacheMutex.Unlock()
		return defaultGeo
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		logger.Warn("Failed to query external geolocation API", zap.String("ip", ip), zap.Error(err))
		return &GeoHint{IP: ip, Country: "Unknown"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("External geolocation API returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return &GeoHint{IP: ip, Country: "Unknown"}
	}

	var geo GeoHint
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		logger.Warn("Failed to decode geolocation response", zap.String("ip", ip), zap.Error(err))
		return &GeoHint{IP: ip, Country: "Unknown"}
	}
	if geo.Country == "" {
		geo.Country = "Unknown"
	}

	cacheMutex.Lock()
	geoCache[ip] = &geo
	cacheMutex.Unlock()

	return &geo
}

// GeoHintMiddleware resolves a coarse geolocation for the client IP and sets
// it in the request context under "geoHint".
func GeoHintMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		clientIP := getClientIP(c)
		if clientIP == "" {
			c.Set("geoHint", &GeoHint{Country: "Unknown"})
			c.Next()
			return
		}

		geo := getGeoHint(clientIP, logger)
		c.Set("geoHint", geo)
		logger.Debug("request geolocation hint",
			zap.String("ip", clientIP),
			zap.String("country", geo.Country),
			zap.String("city", geo.City),
		)
		c.Next()
	}
}
