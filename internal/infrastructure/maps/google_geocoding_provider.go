package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"CareFinder-App/internal/domain/model"
	"CareFinder-App/internal/domain/repository"
)

const (
	geocodeBaseURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	directionsBaseURL = "https://maps.googleapis.com/maps/api/directions/json"
)

// GoogleGeocodingProvider Google Maps APIを使用したジオコーディングと走行時間取得の実装
type GoogleGeocodingProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleGeocodingProvider は新しいプロバイダを生成する
func NewGoogleGeocodingProvider(apiKey string) repository.GeocodingProvider {
	return &GoogleGeocodingProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GeocodeAddress Google Geocoding APIでフリーテキスト住所を座標に解決する
// ゼロ件・非成功ステータス・通信失敗はすべて nil, nil（解決不能という正常な結果）
func (g *GoogleGeocodingProvider) GeocodeAddress(ctx context.Context, address string) (*model.LatLng, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s?%s", geocodeBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// コンテキストキャンセルはそのまま伝播させる
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("⚠️ ジオコーディングのAPIリクエストに失敗 (address=%q): %v", address, err)
		return nil, nil
	}
	defer resp.Body.Close()

	var apiResp googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		log.Printf("⚠️ ジオコーディングレスポンスのパースに失敗 (address=%q): %v", address, err)
		return nil, nil
	}

	if apiResp.Status != model.StatusOK || len(apiResp.Results) == 0 {
		// 生のステータスを診断用に記録する
		log.Printf("⚠️ ジオコーディング失敗 (address=%q, status=%s)", address, apiResp.Status)
		return nil, nil
	}

	location := apiResp.Results[0].Geometry.Location
	return &model.LatLng{Lat: location.Lat, Lng: location.Lng}, nil
}

// GetTravelTimes Google Directions APIで各目的地への運転時間を取得する
// Directions APIは1リクエストにつき1目的地のため、全目的地へ並行でリクエストし
// インデックスで結果を突き合わせる。個別の失敗はセンチネル要素として返す
func (g *GoogleGeocodingProvider) GetTravelTimes(ctx context.Context, origin model.LatLng, destinations []model.LatLng) []model.TravelTime {
	results := make([]model.TravelTime, len(destinations))
	if len(destinations) == 0 {
		return results
	}

	type travelTimeResult struct {
		index int
		value model.TravelTime
	}

	resultChan := make(chan travelTimeResult, len(destinations))
	var wg sync.WaitGroup

	for i, dest := range destinations {
		wg.Add(1)
		go func(idx int, d model.LatLng) {
			defer wg.Done()
			resultChan <- travelTimeResult{
				index: idx,
				value: g.fetchTravelTime(ctx, origin, d),
			}
		}(i, dest)
	}

	// 別のgoroutineでwaitしてチャンネルを閉じる
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		results[result.index] = result.value
	}

	return results
}

// fetchTravelTime 1つの目的地への運転時間を取得する
// 失敗した場合はバッチを中断せず失敗ステータスのセンチネルを返す
func (g *GoogleGeocodingProvider) fetchTravelTime(ctx context.Context, origin, destination model.LatLng) model.TravelTime {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("mode", "driving")
	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s?%s", directionsBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return sentinelTravelTime(model.StatusError)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ Directions APIリクエストに失敗 (destination=%f,%f): %v", destination.Lat, destination.Lng, err)
		return sentinelTravelTime(model.StatusError)
	}
	defer resp.Body.Close()

	var apiResp googleDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		log.Printf("⚠️ Directions APIレスポンスのパースに失敗: %v", err)
		return sentinelTravelTime(model.StatusError)
	}

	if apiResp.Status != model.StatusOK {
		log.Printf("⚠️ Directions API失敗 (destination=%f,%f, status=%s)", destination.Lat, destination.Lng, apiResp.Status)
		return sentinelTravelTime(apiResp.Status)
	}

	// 最初のルート（最速ルート）の最初のlegを使用する
	if len(apiResp.Routes) == 0 || len(apiResp.Routes[0].Legs) == 0 {
		return sentinelTravelTime(model.StatusZeroResults)
	}

	leg := apiResp.Routes[0].Legs[0]
	return model.TravelTime{
		Distance: model.TravelDistance{Text: leg.Distance.Text, Meters: leg.Distance.Value},
		Duration: model.TravelDuration{Text: leg.Duration.Text, Seconds: leg.Duration.Value},
		Status:   model.StatusOK,
	}
}

// sentinelTravelTime 取得失敗時のセンチネル値を生成する
func sentinelTravelTime(status string) model.TravelTime {
	return model.TravelTime{
		Distance: model.TravelDistance{Text: "N/A", Meters: 0},
		Duration: model.TravelDuration{Text: "N/A", Seconds: 0},
		Status:   status,
	}
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleGeocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type googleDirectionsResponse struct {
	Routes []struct {
		Legs []struct {
			Distance textValue `json:"distance"`
			Duration textValue `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
